// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"

	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

const (
	OpCreateRouter    = "create_router"
	OpGetRouter       = "get_router"
	OpUpdateRouter    = "update_router"
	OpDeleteRouter    = "delete_router"
	OpGetRouters      = "get_routers"
	OpGetRoutersCount = "get_routers_count"

	// Extension points. The loader's prefix filter keeps these out of
	// reach of loaded extensions; override via WithHandler.
	OpAddRouterInterface    = "add_router_interface"
	OpRemoveRouterInterface = "remove_router_interface"
)

func (d *Driver) registerRouterHandlers() {
	d.capabilities[OpCreateRouter] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.CreateResource(ctx, resource.KindRouter, inv.Payload)
	}
	d.capabilities[OpGetRouter] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.GetResource(ctx, resource.KindRouter, inv.ID, inv.Fields)
	}
	d.capabilities[OpUpdateRouter] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.UpdateResource(ctx, resource.KindRouter, inv.ID, inv.Payload)
	}
	d.capabilities[OpDeleteRouter] = func(ctx context.Context, inv Invocation) (any, error) {
		return nil, d.DeleteResource(ctx, resource.KindRouter, inv.ID)
	}
	d.capabilities[OpGetRouters] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.ListResource(ctx, resource.KindRouter, inv.Filters, inv.Fields)
	}
	d.capabilities[OpGetRoutersCount] = func(ctx context.Context, inv Invocation) (any, error) {
		count, err := d.CountResource(ctx, resource.KindRouter, inv.Filters)
		if err != nil {
			return 0, err
		}
		return count.Count, nil
	}

	noop := func(ctx context.Context, inv Invocation) (any, error) { return nil, nil }
	d.capabilities[OpAddRouterInterface] = noop
	d.capabilities[OpRemoveRouterInterface] = noop
}

// CreateRouter creates a new logical router and assigns it a symbolic name.
func (d *Driver) CreateRouter(ctx context.Context, router resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpCreateRouter, Invocation{Payload: router})
}

// GetRouter returns the attributes of a router.
func (d *Driver) GetRouter(ctx context.Context, routerID string, fields []string) (resource.Record, error) {
	return d.invokeRecord(ctx, OpGetRouter, Invocation{ID: routerID, Fields: fields})
}

// UpdateRouter updates the attributes of a router.
func (d *Driver) UpdateRouter(ctx context.Context, routerID string, router resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpUpdateRouter, Invocation{ID: routerID, Payload: router})
}

// DeleteRouter deletes a router.
func (d *Driver) DeleteRouter(ctx context.Context, routerID string) error {
	return d.invokeNone(ctx, OpDeleteRouter, Invocation{ID: routerID})
}

// GetRouters retrieves all router identifiers matching the filters.
func (d *Driver) GetRouters(ctx context.Context, filters resource.Filters, fields []string) ([]resource.Record, error) {
	return d.invokeRecords(ctx, OpGetRouters, Invocation{Filters: filters, Fields: fields})
}

// GetRoutersCount returns the count of routers.
func (d *Driver) GetRoutersCount(ctx context.Context, filters resource.Filters) (int, error) {
	return d.invokeCount(ctx, OpGetRoutersCount, Invocation{Filters: filters})
}

// AddRouterInterface attaches a subnet or port to a router. No default
// behavior; does nothing unless a handler override is installed.
func (d *Driver) AddRouterInterface(ctx context.Context, routerID string, interfaceInfo resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpAddRouterInterface, Invocation{ID: routerID, Payload: interfaceInfo})
}

// RemoveRouterInterface detaches a subnet or port from a router. No default
// behavior; does nothing unless a handler override is installed.
func (d *Driver) RemoveRouterInterface(ctx context.Context, routerID string, interfaceInfo resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpRemoveRouterInterface, Invocation{ID: routerID, Payload: interfaceInfo})
}
