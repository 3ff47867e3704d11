// SPDX-License-Identifier: Apache-2.0

// Package resource holds the types shared by the driver, the transport and
// the error taxonomy: the closed set of resource kinds and the opaque record
// shapes exchanged with the backend.
package resource

// Kind identifies which backend collection an operation targets.
type Kind string

const (
	KindNetwork           Kind = "network"
	KindSubnet            Kind = "subnet"
	KindPort              Kind = "port"
	KindRouter            Kind = "router"
	KindSecurityGroup     Kind = "security_group"
	KindSecurityGroupRule Kind = "security_group_rule"
)

// Kinds is the full, closed set of resource kinds. There are no dynamic
// kinds; extensions add operations, never collections.
var Kinds = []Kind{
	KindNetwork,
	KindSubnet,
	KindPort,
	KindRouter,
	KindSecurityGroup,
	KindSecurityGroupRule,
}

// Valid reports whether k is one of the six known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNetwork, KindSubnet, KindPort, KindRouter, KindSecurityGroup, KindSecurityGroupRule:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Record is one instance of a resource kind: an attribute map whose shape is
// owned by the backend. The driver only inspects the handful of fields its
// validation rules name.
type Record map[string]any

// Clone returns a copy of r. Top-level keys are copied; nested values are
// shared, so callers replacing a nested value must set a fresh one rather
// than mutate in place.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value under key if it is a string, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the value under key as an int. JSON decoding produces float64
// for numbers, so both are accepted.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Records coerces a decoded JSON list under key into a []Record. Entries
// that are not objects are dropped.
func (r Record) Records(key string) []Record {
	raw, ok := r[key].([]any)
	if !ok {
		if typed, ok := r[key].([]Record); ok {
			return typed
		}
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		} else if rec, ok := item.(Record); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Filters narrows list and count operations: attribute name to accepted
// values. Passed through to the backend unmodified.
type Filters map[string][]string

// CountResult is the backend's reply to a count operation.
type CountResult struct {
	Count int `json:"count"`
}

// Descriptor is a backend error payload. It is consumed exactly once, by the
// error translator, and carries at minimum an "exception" name plus
// arbitrary fields used as the constructed error's data.
type Descriptor map[string]any

// DescriptorException is the descriptor key naming the backend exception.
const DescriptorException = "exception"

// Exception returns the backend exception name, or "" when the descriptor
// has none.
func (d Descriptor) Exception() string {
	s, _ := d[DescriptorException].(string)
	return s
}

// Fields returns the descriptor without the exception name: the named
// arguments for the translated error.
func (d Descriptor) Fields() map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		if k == DescriptorException {
			continue
		}
		out[k] = v
	}
	return out
}
