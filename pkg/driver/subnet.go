// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"

	"github.com/opensdn-io/neutron-driver/pkg/apierrors"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

const (
	OpCreateSubnet    = "create_subnet"
	OpGetSubnet       = "get_subnet"
	OpUpdateSubnet    = "update_subnet"
	OpDeleteSubnet    = "delete_subnet"
	OpGetSubnets      = "get_subnets"
	OpGetSubnetsCount = "get_subnets_count"
)

// Default gateways assigned when a subnet is created without one.
const (
	defaultGatewayV4 = "0.0.0.0"
	defaultGatewayV6 = "::"
)

func (d *Driver) registerSubnetHandlers() {
	d.capabilities[OpCreateSubnet] = d.createSubnet
	d.capabilities[OpGetSubnet] = func(ctx context.Context, inv Invocation) (any, error) {
		subnet, err := d.GetResource(ctx, resource.KindSubnet, inv.ID, inv.Fields)
		if err != nil {
			return nil, err
		}
		return d.makeSubnetDict(subnet), nil
	}
	d.capabilities[OpUpdateSubnet] = func(ctx context.Context, inv Invocation) (any, error) {
		subnet, err := d.UpdateResource(ctx, resource.KindSubnet, inv.ID, inv.Payload)
		if err != nil {
			return nil, err
		}
		return d.makeSubnetDict(subnet), nil
	}
	d.capabilities[OpDeleteSubnet] = func(ctx context.Context, inv Invocation) (any, error) {
		return nil, d.DeleteResource(ctx, resource.KindSubnet, inv.ID)
	}
	d.capabilities[OpGetSubnets] = func(ctx context.Context, inv Invocation) (any, error) {
		subnets, err := d.ListResource(ctx, resource.KindSubnet, inv.Filters, inv.Fields)
		if err != nil {
			return nil, err
		}
		out := make([]resource.Record, 0, len(subnets))
		for _, s := range subnets {
			out = append(out, d.makeSubnetDict(s))
		}
		return out, nil
	}
	d.capabilities[OpGetSubnetsCount] = func(ctx context.Context, inv Invocation) (any, error) {
		count, err := d.CountResource(ctx, resource.KindSubnet, inv.Filters)
		if err != nil {
			return 0, err
		}
		return count.Count, nil
	}
}

// createSubnet applies the local validation rules before dispatching:
// gateway defaulting by IP version, and the host-route quota, which must
// fail before the backend is ever called.
func (d *Driver) createSubnet(ctx context.Context, inv Invocation) (any, error) {
	subnet := inv.Payload.Clone()
	if subnet == nil {
		subnet = resource.Record{}
	}

	if gw, ok := subnet["gateway_ip"]; !ok || gw == nil {
		gateway := defaultGatewayV4
		if version, ok := subnet.Int("ip_version"); ok && version == 6 {
			gateway = defaultGatewayV6
		}
		subnet["gateway_ip"] = gateway
	}

	if routes, ok := subnet["host_routes"]; ok && routes != nil {
		if hostRouteCount(routes) > d.cfg.MaxSubnetHostRoutes {
			subnetID := subnet.String("id")
			if subnetID == "" {
				subnetID = "new subnet"
			}
			return nil, apierrors.NewHostRoutesExhausted(subnetID, d.cfg.MaxSubnetHostRoutes)
		}
	}

	created, err := d.CreateResource(ctx, resource.KindSubnet, subnet)
	if err != nil {
		return nil, err
	}
	return d.makeSubnetDict(created), nil
}

// makeSubnetDict projects a backend subnet record for the caller. Identity
// unless a projector was configured.
func (d *Driver) makeSubnetDict(subnet resource.Record) resource.Record {
	if d.subnetProjector == nil || subnet == nil {
		return subnet
	}
	return d.subnetProjector(subnet)
}

func hostRouteCount(routes any) int {
	switch v := routes.(type) {
	case []any:
		return len(v)
	case []resource.Record:
		return len(v)
	case []map[string]any:
		return len(v)
	}
	return 0
}

// CreateSubnet creates a new subnet and assigns it a symbolic name.
func (d *Driver) CreateSubnet(ctx context.Context, subnet resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpCreateSubnet, Invocation{Payload: subnet})
}

// GetSubnet returns the attributes of a particular subnet.
func (d *Driver) GetSubnet(ctx context.Context, subnetID string, fields []string) (resource.Record, error) {
	return d.invokeRecord(ctx, OpGetSubnet, Invocation{ID: subnetID, Fields: fields})
}

// UpdateSubnet updates the attributes of a particular subnet.
func (d *Driver) UpdateSubnet(ctx context.Context, subnetID string, subnet resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpUpdateSubnet, Invocation{ID: subnetID, Payload: subnet})
}

// DeleteSubnet deletes the subnet with the given identifier.
func (d *Driver) DeleteSubnet(ctx context.Context, subnetID string) error {
	return d.invokeNone(ctx, OpDeleteSubnet, Invocation{ID: subnetID})
}

// GetSubnets returns the list of subnets matching the filters.
func (d *Driver) GetSubnets(ctx context.Context, filters resource.Filters, fields []string) ([]resource.Record, error) {
	return d.invokeRecords(ctx, OpGetSubnets, Invocation{Filters: filters, Fields: fields})
}

// GetSubnetsCount returns the count of subnets.
func (d *Driver) GetSubnetsCount(ctx context.Context, filters resource.Filters) (int, error) {
	return d.invokeCount(ctx, OpGetSubnetsCount, Invocation{Filters: filters})
}
