// SPDX-License-Identifier: Apache-2.0

// Package driver implements the core plugin driver: a uniform CRUD surface
// over the six resource kinds, dispatched through a capability table that
// runtime-loaded extensions may override, with backend failures translated
// into the typed error taxonomy.
package driver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/opensdn-io/neutron-driver/pkg/apierrors"
	"github.com/opensdn-io/neutron-driver/pkg/config"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

// Backend is the controller-side collaborator: the six abstract hooks every
// dispatcher operation ultimately calls. Failures should carry an error
// descriptor (see DescriptorError) so they can be translated.
type Backend interface {
	CreateResource(ctx context.Context, kind resource.Kind, data resource.Record) (resource.Record, error)
	GetResource(ctx context.Context, kind resource.Kind, id string, fields []string) (resource.Record, error)
	UpdateResource(ctx context.Context, kind resource.Kind, id string, data resource.Record) (resource.Record, error)
	DeleteResource(ctx context.Context, kind resource.Kind, id string) error
	ListResource(ctx context.Context, kind resource.Kind, filters resource.Filters, fields []string) ([]resource.Record, error)
	CountResource(ctx context.Context, kind resource.Kind, filters resource.Filters) (resource.CountResult, error)
}

// DescriptorError is implemented by backend errors that carry the
// controller's error payload. Such errors pass through the translator;
// anything else propagates unchanged.
type DescriptorError interface {
	error
	Descriptor() resource.Descriptor
}

// Invocation carries the arguments of one capability-table dispatch. Which
// fields are meaningful depends on the operation: creates use Payload, gets
// and deletes use ID, lists and counts use Filters/Fields, updates use ID
// and Payload.
type Invocation struct {
	ID      string
	Payload resource.Record
	Filters resource.Filters
	Fields  []string
}

// Handler implements one named operation.
type Handler func(ctx context.Context, inv Invocation) (any, error)

// Extension is a pluggable unit of behavior. SetCore hands it the driver
// back-reference before its capabilities are spliced into the table.
type Extension interface {
	SetCore(d *Driver)
	Capabilities() map[string]Handler
}

// Resolver maps a configured implementation reference to an extension
// factory. The factory may fail, which aborts driver construction.
type Resolver interface {
	Resolve(class string) (func() (Extension, error), error)
}

// Driver routes resource operations to the backend, augmented by loaded
// extensions. The capability table is populated once, during New, and only
// read afterwards; a fully constructed Driver is safe for concurrent use as
// long as its backend is.
type Driver struct {
	cfg     *config.Config
	backend Backend
	log     *zap.Logger

	resolver     Resolver
	capabilities map[string]Handler
	supported    []string

	baseBinding     resource.Record
	subnetProjector func(resource.Record) resource.Record
	vhostUpdater    func(resource.Record)
	authBuilder     func(*config.Config) error
	overrides       map[string]Handler
}

// Option configures a Driver during construction.
type Option func(*Driver)

// WithLogger sets the driver logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Driver) { d.log = log }
}

// WithResolver wires the extension resolver consulted for every configured
// extension that names an implementation class.
func WithResolver(r Resolver) Option {
	return func(d *Driver) { d.resolver = r }
}

// WithBaseBinding replaces the base binding dictionary merged into ports by
// the fields projector.
func WithBaseBinding(binding resource.Record) Option {
	return func(d *Driver) { d.baseBinding = binding }
}

// WithSubnetProjector replaces the identity projection applied to every
// subnet read and write result.
func WithSubnetProjector(project func(resource.Record) resource.Record) Option {
	return func(d *Driver) { d.subnetProjector = project }
}

// WithVhostUpdater wires the collaborator that rewrites binding
// configuration on vhost-user ports.
func WithVhostUpdater(update func(resource.Record)) Option {
	return func(d *Driver) { d.vhostUpdater = update }
}

// WithAuthBuilder wires the auth-details hook invoked after extension
// loading. No-op when unset.
func WithAuthBuilder(build func(*config.Config) error) Option {
	return func(d *Driver) { d.authBuilder = build }
}

// WithHandler installs a programmatic handler override, applied after the
// defaults and before extension loading. This is how the router-interface
// extension points are customized, since the loader only splices
// CRUD-prefixed capabilities.
func WithHandler(op string, h Handler) Option {
	return func(d *Driver) {
		if d.overrides == nil {
			d.overrides = make(map[string]Handler)
		}
		d.overrides[op] = h
	}
}

// New constructs a driver: default capability table, then extension loading
// (which may override table entries), then the auth-details hook. Any
// extension failure aborts construction.
func New(cfg *config.Config, backend Backend, opts ...Option) (*Driver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if backend == nil {
		return nil, fmt.Errorf("backend is nil")
	}

	d := &Driver{
		cfg:          cfg,
		backend:      backend,
		log:          zap.NewNop(),
		capabilities: make(map[string]Handler),
		baseBinding:  DefaultBaseBinding(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.registerNetworkHandlers()
	d.registerSubnetHandlers()
	d.registerPortHandlers()
	d.registerRouterHandlers()
	d.registerSecurityGroupHandlers()

	for op, h := range d.overrides {
		d.capabilities[op] = h
	}

	if err := d.loadExtensions(); err != nil {
		return nil, err
	}
	return d, nil
}

// Config returns the driver configuration, for extensions holding a core
// back-reference.
func (d *Driver) Config() *config.Config { return d.cfg }

// Logger returns the driver logger.
func (d *Driver) Logger() *zap.Logger { return d.log }

// SupportedExtensionAliases lists the names of all successfully loaded
// extensions, in configuration order.
func (d *Driver) SupportedExtensionAliases() []string {
	out := make([]string, len(d.supported))
	copy(out, d.supported)
	return out
}

// Invoke dispatches a named operation through the capability table. This is
// the entry point for operations added by extensions that have no typed
// wrapper on the driver.
func (d *Driver) Invoke(ctx context.Context, op string, inv Invocation) (any, error) {
	h, ok := d.capabilities[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	return h(ctx, inv)
}

// HasOperation reports whether the capability table holds op.
func (d *Driver) HasOperation(op string) bool {
	_, ok := d.capabilities[op]
	return ok
}

// Generic hooks. Every kind-specific default handler delegates here; backend
// failures pass through the error translator exactly once.

// CreateResource creates a record of the given kind.
func (d *Driver) CreateResource(ctx context.Context, kind resource.Kind, data resource.Record) (resource.Record, error) {
	rec, err := d.backend.CreateResource(ctx, kind, data)
	if err != nil {
		return nil, d.translateError(kind, err)
	}
	return rec, nil
}

// GetResource fetches one record by id.
func (d *Driver) GetResource(ctx context.Context, kind resource.Kind, id string, fields []string) (resource.Record, error) {
	rec, err := d.backend.GetResource(ctx, kind, id, fields)
	if err != nil {
		return nil, d.translateError(kind, err)
	}
	return rec, nil
}

// UpdateResource updates one record by id.
func (d *Driver) UpdateResource(ctx context.Context, kind resource.Kind, id string, data resource.Record) (resource.Record, error) {
	rec, err := d.backend.UpdateResource(ctx, kind, id, data)
	if err != nil {
		return nil, d.translateError(kind, err)
	}
	return rec, nil
}

// DeleteResource deletes one record by id.
func (d *Driver) DeleteResource(ctx context.Context, kind resource.Kind, id string) error {
	if err := d.backend.DeleteResource(ctx, kind, id); err != nil {
		return d.translateError(kind, err)
	}
	return nil
}

// ListResource lists records matching filters.
func (d *Driver) ListResource(ctx context.Context, kind resource.Kind, filters resource.Filters, fields []string) ([]resource.Record, error) {
	recs, err := d.backend.ListResource(ctx, kind, filters, fields)
	if err != nil {
		return nil, d.translateError(kind, err)
	}
	return recs, nil
}

// CountResource counts records matching filters.
func (d *Driver) CountResource(ctx context.Context, kind resource.Kind, filters resource.Filters) (resource.CountResult, error) {
	count, err := d.backend.CountResource(ctx, kind, filters)
	if err != nil {
		return resource.CountResult{}, d.translateError(kind, err)
	}
	return count, nil
}

func (d *Driver) translateError(kind resource.Kind, err error) error {
	var de DescriptorError
	if errors.As(err, &de) {
		return apierrors.Translate(kind, de.Descriptor())
	}
	return err
}

// Typed coercion helpers for the capability table's untyped returns.

func (d *Driver) invokeRecord(ctx context.Context, op string, inv Invocation) (resource.Record, error) {
	v, err := d.Invoke(ctx, op, inv)
	if err != nil || v == nil {
		return nil, err
	}
	switch rec := v.(type) {
	case resource.Record:
		return rec, nil
	case map[string]any:
		return resource.Record(rec), nil
	}
	return nil, fmt.Errorf("operation %q returned %T, want record", op, v)
}

func (d *Driver) invokeRecords(ctx context.Context, op string, inv Invocation) ([]resource.Record, error) {
	v, err := d.Invoke(ctx, op, inv)
	if err != nil || v == nil {
		return nil, err
	}
	switch recs := v.(type) {
	case []resource.Record:
		return recs, nil
	case []map[string]any:
		out := make([]resource.Record, 0, len(recs))
		for _, r := range recs {
			out = append(out, resource.Record(r))
		}
		return out, nil
	}
	return nil, fmt.Errorf("operation %q returned %T, want record list", op, v)
}

func (d *Driver) invokeCount(ctx context.Context, op string, inv Invocation) (int, error) {
	v, err := d.Invoke(ctx, op, inv)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("operation %q returned %T, want count", op, v)
}

func (d *Driver) invokeNone(ctx context.Context, op string, inv Invocation) error {
	_, err := d.Invoke(ctx, op, inv)
	return err
}
