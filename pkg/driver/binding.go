// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

// Port binding attribute names and VIF types.
const (
	PortBindingVIFType    = "binding:vif_type"
	PortBindingVIFDetails = "binding:vif_details"
	PortBindingHostID     = "binding:host_id"

	VIFTypeVRouter   = "vrouter"
	VIFTypeVhostUser = "vhostuser"
)

// NICNameLen is the maximum length of a network interface name, eg the tap
// device backing a port.
const NICNameLen = 14

// DefaultBaseBinding is the binding dictionary merged into ports when no
// override is configured.
func DefaultBaseBinding() resource.Record {
	return resource.Record{
		PortBindingVIFType: VIFTypeVRouter,
		PortBindingVIFDetails: map[string]any{
			"port_filter": true,
		},
	}
}

// projectPortFields decides which binding attributes to expose on a port.
// With no field list the full base binding dictionary is merged in,
// overwriting existing values; with a field list only the requested binding
// keys are overwritten. Vhost-user ports additionally go through the
// configured vhost binding updater. The input record is not modified.
func (d *Driver) projectPortFields(port resource.Record, fields []string) resource.Record {
	if port == nil {
		return nil
	}
	out := port.Clone()

	vhostUser := out.String(PortBindingVIFType) == VIFTypeVhostUser

	if len(fields) == 0 {
		for key, value := range d.baseBinding {
			out[key] = value
		}
	} else {
		requested := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			requested[f] = struct{}{}
		}
		for key, value := range d.baseBinding {
			if _, ok := requested[key]; ok {
				out[key] = value
			}
		}
	}

	if vhostUser && d.vhostUpdater != nil {
		d.vhostUpdater(out)
	}

	return out
}

// PortInterfaceName derives the host-side interface name for a port,
// truncated to the kernel's interface-name limit.
func PortInterfaceName(port resource.Record) string {
	name := "tap" + port.String("id")
	if len(name) > NICNameLen {
		name = name[:NICNameLen]
	}
	return name
}
