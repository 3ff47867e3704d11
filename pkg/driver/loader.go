// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/opensdn-io/neutron-driver/pkg/apierrors"
	"github.com/opensdn-io/neutron-driver/pkg/config"
)

// crudPrefixes are the only operation prefixes an extension may inject into
// the capability table.
var crudPrefixes = []string{"get_", "create_", "update_", "delete_"}

func hasCRUDPrefix(op string) bool {
	for _, prefix := range crudPrefixes {
		if strings.HasPrefix(op, prefix) {
			return true
		}
	}
	return false
}

// loadExtensions processes the configured extension list in order, then
// invokes the auth-details hook. Any extension failure is fatal: it is
// logged, wrapped in an ExtensionError, and the failed extension's name is
// not registered.
func (d *Driver) loadExtensions() error {
	for _, desc := range d.cfg.Extensions {
		if desc.Class == "" || desc.Class == config.ExtensionClassNone {
			// Name-only extension: advertised, no code behind it.
			d.registerAlias(desc.Name)
			continue
		}
		if err := d.loadExtension(desc); err != nil {
			d.log.Error("failed to load extension",
				zap.String("extension", desc.Name),
				zap.String("class", desc.Class),
				zap.Error(err))
			return &apierrors.ExtensionError{Name: desc.Name, Class: desc.Class, Err: err}
		}
	}

	if d.authBuilder != nil {
		if err := d.authBuilder(d.cfg); err != nil {
			return fmt.Errorf("failed to build auth details: %w", err)
		}
	}
	return nil
}

func (d *Driver) loadExtension(desc config.ExtensionDescriptor) error {
	if d.resolver == nil {
		return fmt.Errorf("no extension resolver configured")
	}

	factory, err := d.resolver.Resolve(desc.Class)
	if err != nil {
		return fmt.Errorf("failed to resolve class: %w", err)
	}
	inst, err := factory()
	if err != nil {
		return fmt.Errorf("failed to instantiate: %w", err)
	}
	inst.SetCore(d)

	for op, h := range inst.Capabilities() {
		if !hasCRUDPrefix(op) {
			d.log.Debug("skipping non-CRUD capability",
				zap.String("extension", desc.Name),
				zap.String("operation", op))
			continue
		}
		if h == nil {
			return fmt.Errorf("capability %q has nil handler", op)
		}
		d.capabilities[op] = h
	}

	d.registerAlias(desc.Name)
	return nil
}

// registerAlias records a supported extension name once, preserving
// configuration order. Duplicate names keep splicing (last class wins) but
// are advertised a single time.
func (d *Driver) registerAlias(name string) {
	for _, existing := range d.supported {
		if existing == name {
			return
		}
	}
	d.supported = append(d.supported, name)
}
