// SPDX-License-Identifier: Apache-2.0

package apierrors

import (
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

// Translate maps a backend error descriptor into the caller-visible
// taxonomy. It always produces a non-nil error:
//
//   - no exception name: generic BackendError with the full descriptor
//   - BadRequest without a resource field: the operated-on kind is injected
//   - VirtualRouterNotFound: HTTPResponseError with the raw descriptor
//   - a name known to one of the ordered namespaces (first match wins):
//     the mapped domain Error, provided its required fields are present
//   - anything else: generic BackendError
//
// The input descriptor is never mutated.
func Translate(kind resource.Kind, desc resource.Descriptor) error {
	name := desc.Exception()
	if name == "" {
		return &BackendError{Descriptor: desc}
	}

	if name == "BadRequest" {
		if _, ok := desc["resource"]; !ok {
			desc = cloneDescriptor(desc)
			desc["resource"] = kind.String()
		}
	}

	if name == "VirtualRouterNotFound" {
		return &HTTPResponseError{Response: desc}
	}

	fields := desc.Fields()
	for _, ns := range namespaces {
		sp, ok := ns.lookup(name)
		if !ok {
			continue
		}
		if !hasRequiredFields(sp, fields) {
			break
		}
		return &Error{
			Namespace: ns.name,
			Kind:      name,
			Fields:    fields,
			format:    sp.format,
		}
	}

	return &BackendError{Descriptor: desc}
}

func hasRequiredFields(sp errorSpec, fields map[string]any) bool {
	for _, key := range sp.required {
		if _, ok := fields[key]; !ok {
			return false
		}
	}
	return true
}

func cloneDescriptor(desc resource.Descriptor) resource.Descriptor {
	out := make(resource.Descriptor, len(desc)+1)
	for k, v := range desc {
		out[k] = v
	}
	return out
}
