// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"

	"github.com/opensdn-io/neutron-driver/pkg/apierrors"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

const (
	OpCreatePort    = "create_port"
	OpGetPort       = "get_port"
	OpUpdatePort    = "update_port"
	OpDeletePort    = "delete_port"
	OpGetPorts      = "get_ports"
	OpGetPortsCount = "get_ports_count"
)

func (d *Driver) registerPortHandlers() {
	d.capabilities[OpCreatePort] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.CreateResource(ctx, resource.KindPort, inv.Payload)
	}
	d.capabilities[OpGetPort] = func(ctx context.Context, inv Invocation) (any, error) {
		port, err := d.GetResource(ctx, resource.KindPort, inv.ID, inv.Fields)
		if err != nil {
			return nil, err
		}
		return d.projectPortFields(port, inv.Fields), nil
	}
	d.capabilities[OpUpdatePort] = d.updatePort
	d.capabilities[OpDeletePort] = func(ctx context.Context, inv Invocation) (any, error) {
		return nil, d.DeleteResource(ctx, resource.KindPort, inv.ID)
	}
	d.capabilities[OpGetPorts] = func(ctx context.Context, inv Invocation) (any, error) {
		ports, err := d.ListResource(ctx, resource.KindPort, inv.Filters, inv.Fields)
		if err != nil {
			return nil, err
		}
		out := make([]resource.Record, 0, len(ports))
		for _, p := range ports {
			out = append(out, d.projectPortFields(p, inv.Fields))
		}
		return out, nil
	}
	d.capabilities[OpGetPortsCount] = func(ctx context.Context, inv Invocation) (any, error) {
		count, err := d.CountResource(ctx, resource.KindPort, inv.Filters)
		if err != nil {
			return 0, err
		}
		return count.Count, nil
	}
}

// updatePort rewrites a fixed_ips update as retained-then-added before
// dispatching. Retained IPs keep the backend's original records and their
// original order.
func (d *Driver) updatePort(ctx context.Context, inv Invocation) (any, error) {
	original, err := d.GetResource(ctx, resource.KindPort, inv.ID, nil)
	if err != nil {
		return nil, err
	}

	payload := inv.Payload.Clone()
	if payload == nil {
		payload = resource.Record{}
	}

	if _, ok := payload["fixed_ips"]; ok {
		added, retained, err := d.updateIPsForPort(original.Records("fixed_ips"), payload.Records("fixed_ips"))
		if err != nil {
			return nil, err
		}
		merged := make([]resource.Record, 0, len(retained)+len(added))
		merged = append(merged, retained...)
		merged = append(merged, added...)
		payload["fixed_ips"] = merged
	}

	return d.UpdateResource(ctx, resource.KindPort, inv.ID, payload)
}

// updateIPsForPort classifies the requested fixed IPs against the port's
// current ones by exact ip_address equality: IPs present on both sides are
// retained (keeping the original record and ordering), the rest of the
// request is genuinely added. Fails before any backend call when the
// request exceeds the per-port cap.
func (d *Driver) updateIPsForPort(originalIPs, newIPs []resource.Record) (added, retained []resource.Record, err error) {
	if len(newIPs) > d.cfg.MaxFixedIPsPerPort {
		return nil, nil, apierrors.NewInvalidInput("Exceeded maximum amount of fixed ips per port")
	}

	remaining := make([]resource.Record, len(newIPs))
	copy(remaining, newIPs)

	for _, originalIP := range originalIPs {
		address, ok := originalIP["ip_address"].(string)
		if !ok {
			continue
		}
		for i, newIP := range remaining {
			newAddress, ok := newIP["ip_address"].(string)
			if ok && newAddress == address {
				remaining = append(remaining[:i], remaining[i+1:]...)
				retained = append(retained, originalIP)
				break
			}
		}
	}

	return remaining, retained, nil
}

// CreatePort creates a port on the specified virtual network.
func (d *Driver) CreatePort(ctx context.Context, port resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpCreatePort, Invocation{Payload: port})
}

// GetPort returns the attributes of a particular port.
func (d *Driver) GetPort(ctx context.Context, portID string, fields []string) (resource.Record, error) {
	return d.invokeRecord(ctx, OpGetPort, Invocation{ID: portID, Fields: fields})
}

// UpdatePort updates the attributes of a port on the specified virtual
// network.
func (d *Driver) UpdatePort(ctx context.Context, portID string, port resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpUpdatePort, Invocation{ID: portID, Payload: port})
}

// DeletePort deletes a port on a specified virtual network.
func (d *Driver) DeletePort(ctx context.Context, portID string) error {
	return d.invokeNone(ctx, OpDeletePort, Invocation{ID: portID})
}

// GetPorts retrieves all ports matching the filters.
func (d *Driver) GetPorts(ctx context.Context, filters resource.Filters, fields []string) ([]resource.Record, error) {
	return d.invokeRecords(ctx, OpGetPorts, Invocation{Filters: filters, Fields: fields})
}

// GetPortsCount returns the count of ports.
func (d *Driver) GetPortsCount(ctx context.Context, filters resource.Filters) (int, error) {
	return d.invokeCount(ctx, OpGetPortsCount, Invocation{Filters: filters})
}
