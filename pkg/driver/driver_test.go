// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensdn-io/neutron-driver/pkg/apierrors"
	"github.com/opensdn-io/neutron-driver/pkg/config"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

// ============================================================================
// Test Doubles
// ============================================================================

// fakeBackend records every call and answers with canned results.
type fakeBackend struct {
	calls []string

	record  resource.Record
	records []resource.Record
	count   resource.CountResult
	err     error

	lastKind    resource.Kind
	lastID      string
	lastData    resource.Record
	lastFilters resource.Filters
	lastFields  []string
}

func (b *fakeBackend) CreateResource(_ context.Context, kind resource.Kind, data resource.Record) (resource.Record, error) {
	b.calls = append(b.calls, "create:"+string(kind))
	b.lastKind, b.lastData = kind, data
	return b.record, b.err
}

func (b *fakeBackend) GetResource(_ context.Context, kind resource.Kind, id string, fields []string) (resource.Record, error) {
	b.calls = append(b.calls, "get:"+string(kind))
	b.lastKind, b.lastID, b.lastFields = kind, id, fields
	return b.record, b.err
}

func (b *fakeBackend) UpdateResource(_ context.Context, kind resource.Kind, id string, data resource.Record) (resource.Record, error) {
	b.calls = append(b.calls, "update:"+string(kind))
	b.lastKind, b.lastID, b.lastData = kind, id, data
	return b.record, b.err
}

func (b *fakeBackend) DeleteResource(_ context.Context, kind resource.Kind, id string) error {
	b.calls = append(b.calls, "delete:"+string(kind))
	b.lastKind, b.lastID = kind, id
	return b.err
}

func (b *fakeBackend) ListResource(_ context.Context, kind resource.Kind, filters resource.Filters, fields []string) ([]resource.Record, error) {
	b.calls = append(b.calls, "list:"+string(kind))
	b.lastKind, b.lastFilters, b.lastFields = kind, filters, fields
	return b.records, b.err
}

func (b *fakeBackend) CountResource(_ context.Context, kind resource.Kind, filters resource.Filters) (resource.CountResult, error) {
	b.calls = append(b.calls, "count:"+string(kind))
	b.lastKind, b.lastFilters = kind, filters
	return b.count, b.err
}

// descriptorErr is a backend failure carrying a controller payload.
type descriptorErr struct {
	desc resource.Descriptor
}

func (e *descriptorErr) Error() string { return "backend failure" }

func (e *descriptorErr) Descriptor() resource.Descriptor { return e.desc }

// stubResolver resolves classes from a fixed map.
type stubResolver struct {
	factories map[string]func() (Extension, error)
}

func (r *stubResolver) Resolve(class string) (func() (Extension, error), error) {
	factory, ok := r.factories[class]
	if !ok {
		return nil, fmt.Errorf("class %q not found", class)
	}
	return factory, nil
}

// fakeExtension exposes a fixed capability map and remembers its core.
type fakeExtension struct {
	core *Driver
	caps map[string]Handler
}

func (e *fakeExtension) SetCore(d *Driver) { e.core = d }

func (e *fakeExtension) Capabilities() map[string]Handler { return e.caps }

func testConfig(extensions ...config.ExtensionDescriptor) *config.Config {
	return &config.Config{
		Endpoint:            "http://sdn.example:8082",
		Extensions:          extensions,
		MaxSubnetHostRoutes: config.DefaultMaxSubnetHostRoutes,
		MaxFixedIPsPerPort:  config.DefaultMaxFixedIPsPerPort,
	}
}

func newTestDriver(t *testing.T, backend *fakeBackend, opts ...Option) *Driver {
	t.Helper()
	d, err := New(testConfig(), backend, opts...)
	require.NoError(t, err)
	return d
}

// ============================================================================
// Construction
// ============================================================================

func TestNew_RequiresConfigAndBackend(t *testing.T) {
	_, err := New(nil, &fakeBackend{})
	assert.Error(t, err)

	_, err = New(testConfig(), nil)
	assert.Error(t, err)
}

func TestNew_RegistersDefaultOperations(t *testing.T) {
	d := newTestDriver(t, &fakeBackend{})

	for _, op := range []string{
		OpCreateNetwork, OpGetNetwork, OpUpdateNetwork, OpDeleteNetwork, OpGetNetworks, OpGetNetworksCount,
		OpCreateSubnet, OpGetSubnet, OpUpdateSubnet, OpDeleteSubnet, OpGetSubnets, OpGetSubnetsCount,
		OpCreatePort, OpGetPort, OpUpdatePort, OpDeletePort, OpGetPorts, OpGetPortsCount,
		OpCreateRouter, OpGetRouter, OpUpdateRouter, OpDeleteRouter, OpGetRouters, OpGetRoutersCount,
		OpAddRouterInterface, OpRemoveRouterInterface,
		OpCreateSecurityGroup, OpGetSecurityGroup, OpUpdateSecurityGroup, OpDeleteSecurityGroup,
		OpGetSecurityGroups, OpGetSecurityGroupsCount,
		OpCreateSecurityGroupRule, OpGetSecurityGroupRule, OpDeleteSecurityGroupRule,
		OpGetSecurityGroupRules, OpGetSecurityGroupRulesCount,
	} {
		assert.True(t, d.HasOperation(op), "missing default operation %s", op)
	}
}

func TestInvoke_UnknownOperation(t *testing.T) {
	d := newTestDriver(t, &fakeBackend{})

	_, err := d.Invoke(context.Background(), "migrate_network", Invocation{})
	assert.ErrorContains(t, err, "unknown operation")
}

// ============================================================================
// Dispatch
// ============================================================================

func TestNetworkOperations_DelegateToBackend(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		record:  resource.Record{"id": "net-1"},
		records: []resource.Record{{"id": "net-1"}, {"id": "net-2"}},
		count:   resource.CountResult{Count: 2},
	}
	d := newTestDriver(t, backend)

	created, err := d.CreateNetwork(ctx, resource.Record{"name": "blue"})
	require.NoError(t, err)
	assert.Equal(t, "net-1", created.String("id"))
	assert.Equal(t, resource.KindNetwork, backend.lastKind)
	assert.Equal(t, "blue", backend.lastData.String("name"))

	got, err := d.GetNetwork(ctx, "net-1", []string{"name"})
	require.NoError(t, err)
	assert.Equal(t, "net-1", got.String("id"))
	assert.Equal(t, []string{"name"}, backend.lastFields)

	_, err = d.UpdateNetwork(ctx, "net-1", resource.Record{"name": "green"})
	require.NoError(t, err)
	assert.Equal(t, "green", backend.lastData.String("name"))

	require.NoError(t, d.DeleteNetwork(ctx, "net-1"))
	assert.Equal(t, "net-1", backend.lastID)

	listed, err := d.GetNetworks(ctx, resource.Filters{"shared": {"true"}}, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, resource.Filters{"shared": {"true"}}, backend.lastFilters)

	n, err := d.GetNetworksCount(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{
		"create:network", "get:network", "update:network",
		"delete:network", "list:network", "count:network",
	}, backend.calls)
}

func TestDispatch_TranslatesDescriptorErrors(t *testing.T) {
	backend := &fakeBackend{
		err: &descriptorErr{desc: resource.Descriptor{
			"exception": "NetworkNotFound",
			"net_id":    "net-9",
		}},
	}
	d := newTestDriver(t, backend)

	_, err := d.GetNetwork(context.Background(), "net-9", nil)
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, "NetworkNotFound"))
	assert.ErrorContains(t, err, "net-9")
}

func TestDispatch_PassesPlainErrorsThrough(t *testing.T) {
	backendErr := fmt.Errorf("connection refused")
	d := newTestDriver(t, &fakeBackend{err: backendErr})

	_, err := d.GetNetwork(context.Background(), "net-1", nil)
	assert.ErrorIs(t, err, backendErr)
}

func TestWithHandler_OverridesRouterInterfaceOps(t *testing.T) {
	backend := &fakeBackend{}
	d := newTestDriver(t, backend, WithHandler(OpAddRouterInterface,
		func(_ context.Context, inv Invocation) (any, error) {
			return resource.Record{"router_id": inv.ID}, nil
		}))

	info, err := d.AddRouterInterface(context.Background(), "router-1", resource.Record{"subnet_id": "sub-1"})
	require.NoError(t, err)
	assert.Equal(t, "router-1", info.String("router_id"))
	assert.Empty(t, backend.calls)

	// The other extension point keeps its no-op default.
	removed, err := d.RemoveRouterInterface(context.Background(), "router-1", nil)
	require.NoError(t, err)
	assert.Nil(t, removed)
}

// ============================================================================
// Extension Loading
// ============================================================================

func TestExtensions_NameOnlyRegistersAlias(t *testing.T) {
	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "port-security"},
		config.ExtensionDescriptor{Name: "quotas", Class: config.ExtensionClassNone},
	), &fakeBackend{})
	require.NoError(t, err)

	assert.Equal(t, []string{"port-security", "quotas"}, d.SupportedExtensionAliases())
}

func TestExtensions_OverrideExistingOperation(t *testing.T) {
	backend := &fakeBackend{}
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"vpc.NetworkExtension": func() (Extension, error) {
			return &fakeExtension{caps: map[string]Handler{
				OpCreateNetwork: func(_ context.Context, inv Invocation) (any, error) {
					out := inv.Payload.Clone()
					out["provider"] = "extension"
					return out, nil
				},
			}}, nil
		},
	}}

	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "vpc", Class: "vpc.NetworkExtension"},
	), backend, WithResolver(resolver))
	require.NoError(t, err)

	created, err := d.CreateNetwork(context.Background(), resource.Record{"name": "blue"})
	require.NoError(t, err)
	assert.Equal(t, "extension", created.String("provider"))
	assert.Empty(t, backend.calls, "overridden operation must not reach the backend")
}

func TestExtensions_AddNewOperation(t *testing.T) {
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"fip.Extension": func() (Extension, error) {
			return &fakeExtension{caps: map[string]Handler{
				"create_floatingip": func(_ context.Context, inv Invocation) (any, error) {
					return resource.Record{"id": "fip-1"}, nil
				},
			}}, nil
		},
	}}

	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "floatingips", Class: "fip.Extension"},
	), &fakeBackend{}, WithResolver(resolver))
	require.NoError(t, err)

	out, err := d.Invoke(context.Background(), "create_floatingip", Invocation{})
	require.NoError(t, err)
	assert.Equal(t, resource.Record{"id": "fip-1"}, out)
}

func TestExtensions_SkipNonCRUDCapabilities(t *testing.T) {
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"sync.Extension": func() (Extension, error) {
			return &fakeExtension{caps: map[string]Handler{
				"sync_state": func(_ context.Context, inv Invocation) (any, error) { return nil, nil },
				"get_sync":   func(_ context.Context, inv Invocation) (any, error) { return 1, nil },
			}}, nil
		},
	}}

	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "sync", Class: "sync.Extension"},
	), &fakeBackend{}, WithResolver(resolver))
	require.NoError(t, err)

	assert.False(t, d.HasOperation("sync_state"))
	assert.True(t, d.HasOperation("get_sync"))
}

func TestExtensions_ReceiveCoreReference(t *testing.T) {
	ext := &fakeExtension{caps: map[string]Handler{}}
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"ref.Extension": func() (Extension, error) { return ext, nil },
	}}

	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "ref", Class: "ref.Extension"},
	), &fakeBackend{}, WithResolver(resolver))
	require.NoError(t, err)
	assert.Same(t, d, ext.core)
}

func TestExtensions_ResolutionFailureIsFatal(t *testing.T) {
	_, err := New(testConfig(
		config.ExtensionDescriptor{Name: "broken", Class: "missing.Extension"},
	), &fakeBackend{}, WithResolver(&stubResolver{}))

	var extErr *apierrors.ExtensionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "broken", extErr.Name)
	assert.Equal(t, "missing.Extension", extErr.Class)
}

func TestExtensions_FactoryFailureIsFatal(t *testing.T) {
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"crash.Extension": func() (Extension, error) { return nil, fmt.Errorf("boom") },
	}}

	_, err := New(testConfig(
		config.ExtensionDescriptor{Name: "crash", Class: "crash.Extension"},
	), &fakeBackend{}, WithResolver(resolver))

	var extErr *apierrors.ExtensionError
	require.ErrorAs(t, err, &extErr)
	assert.ErrorContains(t, extErr.Err, "boom")
}

func TestExtensions_NoResolverConfigured(t *testing.T) {
	_, err := New(testConfig(
		config.ExtensionDescriptor{Name: "any", Class: "any.Extension"},
	), &fakeBackend{})

	var extErr *apierrors.ExtensionError
	require.ErrorAs(t, err, &extErr)
}

func TestExtensions_LaterClassWinsSharedOperation(t *testing.T) {
	mkExt := func(tag string) func() (Extension, error) {
		return func() (Extension, error) {
			return &fakeExtension{caps: map[string]Handler{
				OpGetNetwork: func(_ context.Context, inv Invocation) (any, error) {
					return resource.Record{"source": tag}, nil
				},
			}}, nil
		}
	}
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"a.Extension": mkExt("a"),
		"b.Extension": mkExt("b"),
	}}

	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "first", Class: "a.Extension"},
		config.ExtensionDescriptor{Name: "second", Class: "b.Extension"},
	), &fakeBackend{}, WithResolver(resolver))
	require.NoError(t, err)

	got, err := d.GetNetwork(context.Background(), "net-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "b", got.String("source"))
}

func TestExtensions_DuplicateNamesAdvertisedOnce(t *testing.T) {
	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "quotas"},
		config.ExtensionDescriptor{Name: "quotas"},
	), &fakeBackend{})
	require.NoError(t, err)
	assert.Equal(t, []string{"quotas"}, d.SupportedExtensionAliases())
}

func TestSupportedExtensionAliases_ReturnsCopy(t *testing.T) {
	d, err := New(testConfig(
		config.ExtensionDescriptor{Name: "quotas"},
	), &fakeBackend{})
	require.NoError(t, err)

	aliases := d.SupportedExtensionAliases()
	aliases[0] = "mutated"
	assert.Equal(t, []string{"quotas"}, d.SupportedExtensionAliases())
}

func TestAuthBuilder_RunsAfterExtensionLoading(t *testing.T) {
	order := []string{}
	resolver := &stubResolver{factories: map[string]func() (Extension, error){
		"order.Extension": func() (Extension, error) {
			order = append(order, "extension")
			return &fakeExtension{caps: map[string]Handler{}}, nil
		},
	}}

	_, err := New(testConfig(
		config.ExtensionDescriptor{Name: "order", Class: "order.Extension"},
	), &fakeBackend{},
		WithResolver(resolver),
		WithAuthBuilder(func(cfg *config.Config) error {
			order = append(order, "auth")
			require.NotNil(t, cfg)
			return nil
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{"extension", "auth"}, order)
}

func TestAuthBuilder_FailureAbortsConstruction(t *testing.T) {
	_, err := New(testConfig(), &fakeBackend{},
		WithAuthBuilder(func(*config.Config) error { return fmt.Errorf("keystone down") }))
	assert.ErrorContains(t, err, "failed to build auth details")
}
