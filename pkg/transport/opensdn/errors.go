// SPDX-License-Identifier: Apache-2.0

package opensdn

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"

	"github.com/opensdn-io/neutron-driver/pkg/driver"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

var _ driver.DescriptorError = (*Error)(nil)

// Error is a transport-level failure carrying the controller's error
// payload. The driver's translation path consumes the descriptor.
type Error struct {
	Status     int
	Desc       resource.Descriptor
	Underlying error
}

func (e *Error) Error() string {
	if name := e.Desc.Exception(); name != "" {
		return fmt.Sprintf("backend returned %d (%s)", e.Status, name)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// Descriptor returns the controller error payload.
func (e *Error) Descriptor() resource.Descriptor { return e.Desc }

func (e *Error) Unwrap() error { return e.Underlying }

// classifyError converts gophercloud HTTP errors into descriptor-carrying
// transport errors. Non-HTTP failures (dial errors, context cancellation)
// pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var respErr gophercloud.ErrUnexpectedResponseCode
	if errors.As(err, &respErr) {
		desc := resource.Descriptor{}
		if len(respErr.Body) > 0 {
			var parsed map[string]any
			if json.Unmarshal(respErr.Body, &parsed) == nil {
				desc = resource.Descriptor(parsed)
			} else {
				// Not a structured error payload; keep the raw body so
				// the generic backend error retains context.
				desc = resource.Descriptor{"message": string(respErr.Body)}
			}
		}
		return &Error{
			Status:     respErr.Actual,
			Desc:       desc,
			Underlying: err,
		}
	}

	return err
}
