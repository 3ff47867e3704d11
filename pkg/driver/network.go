// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"

	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

const (
	OpCreateNetwork    = "create_network"
	OpGetNetwork       = "get_network"
	OpUpdateNetwork    = "update_network"
	OpDeleteNetwork    = "delete_network"
	OpGetNetworks      = "get_networks"
	OpGetNetworksCount = "get_networks_count"
)

func (d *Driver) registerNetworkHandlers() {
	d.capabilities[OpCreateNetwork] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.CreateResource(ctx, resource.KindNetwork, inv.Payload)
	}
	d.capabilities[OpGetNetwork] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.GetResource(ctx, resource.KindNetwork, inv.ID, inv.Fields)
	}
	d.capabilities[OpUpdateNetwork] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.UpdateResource(ctx, resource.KindNetwork, inv.ID, inv.Payload)
	}
	d.capabilities[OpDeleteNetwork] = func(ctx context.Context, inv Invocation) (any, error) {
		return nil, d.DeleteResource(ctx, resource.KindNetwork, inv.ID)
	}
	d.capabilities[OpGetNetworks] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.ListResource(ctx, resource.KindNetwork, inv.Filters, inv.Fields)
	}
	d.capabilities[OpGetNetworksCount] = func(ctx context.Context, inv Invocation) (any, error) {
		count, err := d.CountResource(ctx, resource.KindNetwork, inv.Filters)
		if err != nil {
			return 0, err
		}
		return count.Count, nil
	}
}

// CreateNetwork creates a new virtual network.
func (d *Driver) CreateNetwork(ctx context.Context, network resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpCreateNetwork, Invocation{Payload: network})
}

// GetNetwork returns the attributes of a particular virtual network.
func (d *Driver) GetNetwork(ctx context.Context, networkID string, fields []string) (resource.Record, error) {
	return d.invokeRecord(ctx, OpGetNetwork, Invocation{ID: networkID, Fields: fields})
}

// UpdateNetwork updates the attributes of a particular virtual network.
func (d *Driver) UpdateNetwork(ctx context.Context, networkID string, network resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpUpdateNetwork, Invocation{ID: networkID, Payload: network})
}

// DeleteNetwork deletes the network with the given identifier.
func (d *Driver) DeleteNetwork(ctx context.Context, networkID string) error {
	return d.invokeNone(ctx, OpDeleteNetwork, Invocation{ID: networkID})
}

// GetNetworks returns the list of virtual networks matching the filters.
func (d *Driver) GetNetworks(ctx context.Context, filters resource.Filters, fields []string) ([]resource.Record, error) {
	return d.invokeRecords(ctx, OpGetNetworks, Invocation{Filters: filters, Fields: fields})
}

// GetNetworksCount returns the count of virtual networks.
func (d *Driver) GetNetworksCount(ctx context.Context, filters resource.Filters) (int, error) {
	return d.invokeCount(ctx, OpGetNetworksCount, Invocation{Filters: filters})
}
