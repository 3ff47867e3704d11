// SPDX-License-Identifier: Apache-2.0

// Package apierrors defines the caller-visible error taxonomy and the
// translation of backend error descriptors into it.
package apierrors

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

// Error is a backend exception mapped into a known namespace: a tagged
// variant carrying the descriptor fields as its data.
type Error struct {
	// Namespace that recognized the exception name, e.g. "core" or "l3".
	Namespace string
	// Kind is the exception name, e.g. "NetworkNotFound".
	Kind string
	// Fields holds the descriptor fields used as the error's named arguments.
	Fields map[string]any

	format string
}

func (e *Error) Error() string {
	msg := renderMessage(e.format, e.Fields)
	if msg == "" {
		msg = e.Kind
	}
	return msg
}

// BackendError is a backend failure whose exception name no namespace
// recognized (or that carried no name at all). The full descriptor is
// retained as context.
type BackendError struct {
	Descriptor resource.Descriptor
}

func (e *BackendError) Error() string {
	if name := e.Descriptor.Exception(); name != "" {
		return fmt.Sprintf("backend exception %s: %s", name, formatFields(e.Descriptor.Fields()))
	}
	if len(e.Descriptor) == 0 {
		return "unknown backend error"
	}
	return fmt.Sprintf("backend error: %s", formatFields(e.Descriptor))
}

// HTTPResponseError is the deliberately unmapped VirtualRouterNotFound
// condition. It bypasses the domain namespaces so callers needing HTTP
// status semantics can detect it structurally.
type HTTPResponseError struct {
	Response resource.Descriptor
}

func (e *HTTPResponseError) Error() string {
	return fmt.Sprintf("http response error: %s", formatFields(e.Response))
}

// ExtensionError reports an extension that failed to resolve, instantiate or
// bind. It is fatal to driver construction.
type ExtensionError struct {
	Name  string
	Class string
	Err   error
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("invalid extension %s (%s): %v", e.Name, e.Class, e.Err)
}

func (e *ExtensionError) Unwrap() error { return e.Err }

// IsKind reports whether err is a mapped domain error of the given kind.
func IsKind(err error, kind string) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// NewInvalidInput builds the core InvalidInput variant raised by local
// validation, before any backend call.
func NewInvalidInput(message string) *Error {
	return newDomainError("core", "InvalidInput", map[string]any{
		"error_message": message,
	})
}

// NewHostRoutesExhausted builds the core HostRoutesExhausted variant raised
// when a subnet create exceeds the host-route quota.
func NewHostRoutesExhausted(subnetID string, quota int) *Error {
	return newDomainError("core", "HostRoutesExhausted", map[string]any{
		"subnet_id": subnetID,
		"quota":     quota,
	})
}

func newDomainError(nsName, kind string, fields map[string]any) *Error {
	for _, ns := range namespaces {
		if ns.name != nsName {
			continue
		}
		if sp, ok := ns.kinds[kind]; ok {
			return &Error{Namespace: nsName, Kind: kind, Fields: fields, format: sp.format}
		}
	}
	// Unknown locally-raised kinds indicate a programming error; keep the
	// variant shape anyway so the caller still sees a typed error.
	return &Error{Namespace: nsName, Kind: kind, Fields: fields}
}

var placeholderPattern = regexp.MustCompile(`%\(([A-Za-z0-9_]+)\)s`)

// renderMessage substitutes neutron-style %(field)s placeholders with the
// descriptor fields. Placeholders with no matching field stay as-is.
func renderMessage(format string, fields map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(format, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		if v, ok := fields[key]; ok {
			return fmt.Sprintf("%v", v)
		}
		return m
	})
}

func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
