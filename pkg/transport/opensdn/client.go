// SPDX-License-Identifier: Apache-2.0

package opensdn

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gophercloud/gophercloud/v2"
	"go.uber.org/zap"

	"github.com/opensdn-io/neutron-driver/pkg/config"
	"github.com/opensdn-io/neutron-driver/pkg/driver"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

var _ driver.Backend = (*Client)(nil)

// Wire operations understood by the controller's neutron plumbing.
const (
	opCreate    = "CREATE"
	opRead      = "READ"
	opUpdate    = "UPDATE"
	opDelete    = "DELETE"
	opReadAll   = "READALL"
	opReadCount = "READCOUNT"
)

// Client talks to the SDN controller's neutron endpoint. Every hook is a
// single POST to /neutron/<resource> with an operation envelope.
type Client struct {
	sc       *gophercloud.ServiceClient
	tenantID string
	log      *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient authenticates against keystone using the configured credentials
// and returns a client bound to the controller endpoint.
func NewClient(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	provider, err := cfg.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return NewClientWithProvider(provider, cfg.Endpoint, cfg.ProjectID, opts...), nil
}

// NewClientWithProvider wraps an already-authenticated provider. Useful when
// the caller manages token lifecycle itself.
func NewClientWithProvider(provider *gophercloud.ProviderClient, endpoint, tenantID string, opts ...Option) *Client {
	c := &Client{
		sc: &gophercloud.ServiceClient{
			ProviderClient: provider,
			Endpoint:       strings.TrimRight(endpoint, "/") + "/",
		},
		tenantID: tenantID,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestContext struct {
	Operation string `json:"operation"`
	TenantID  string `json:"tenant_id,omitempty"`
	RequestID string `json:"request_id"`
}

type requestData struct {
	Resource resource.Record  `json:"resource,omitempty"`
	ID       string           `json:"id,omitempty"`
	Filters  resource.Filters `json:"filters,omitempty"`
	Fields   []string         `json:"fields,omitempty"`
}

type requestEnvelope struct {
	Context requestContext `json:"context"`
	Data    requestData    `json:"data"`
}

func (c *Client) do(ctx context.Context, kind resource.Kind, op string, data requestData, result any) error {
	requestID := uuid.NewString()
	body := requestEnvelope{
		Context: requestContext{
			Operation: op,
			TenantID:  c.tenantID,
			RequestID: requestID,
		},
		Data: data,
	}

	c.log.Debug("backend request",
		zap.String("resource", string(kind)),
		zap.String("operation", op),
		zap.String("request_id", requestID))

	url := c.sc.Endpoint + "neutron/" + string(kind)
	_, err := c.sc.Post(ctx, url, body, result, &gophercloud.RequestOpts{
		OkCodes:     []int{200},
		MoreHeaders: map[string]string{"X-Request-Id": requestID},
	})
	return classifyError(err)
}

// CreateResource creates a resource of the given kind and returns the
// controller's view of it.
func (c *Client) CreateResource(ctx context.Context, kind resource.Kind, data resource.Record) (resource.Record, error) {
	var out resource.Record
	if err := c.do(ctx, kind, opCreate, requestData{Resource: data}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetResource reads a single resource by id.
func (c *Client) GetResource(ctx context.Context, kind resource.Kind, id string, fields []string) (resource.Record, error) {
	var out resource.Record
	if err := c.do(ctx, kind, opRead, requestData{ID: id, Fields: fields}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateResource applies a partial update to a resource.
func (c *Client) UpdateResource(ctx context.Context, kind resource.Kind, id string, data resource.Record) (resource.Record, error) {
	var out resource.Record
	if err := c.do(ctx, kind, opUpdate, requestData{ID: id, Resource: data}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteResource removes a resource by id.
func (c *Client) DeleteResource(ctx context.Context, kind resource.Kind, id string) error {
	return c.do(ctx, kind, opDelete, requestData{ID: id}, nil)
}

// ListResource returns all resources matching the filters.
func (c *Client) ListResource(ctx context.Context, kind resource.Kind, filters resource.Filters, fields []string) ([]resource.Record, error) {
	var out []resource.Record
	if err := c.do(ctx, kind, opReadAll, requestData{Filters: filters, Fields: fields}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountResource returns the number of resources matching the filters.
func (c *Client) CountResource(ctx context.Context, kind resource.Kind, filters resource.Filters) (resource.CountResult, error) {
	var out resource.CountResult
	if err := c.do(ctx, kind, opReadCount, requestData{Filters: filters}, &out); err != nil {
		return resource.CountResult{}, err
	}
	return out, nil
}
