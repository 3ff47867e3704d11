// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"

	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

const (
	OpCreateSecurityGroup    = "create_security_group"
	OpGetSecurityGroup       = "get_security_group"
	OpUpdateSecurityGroup    = "update_security_group"
	OpDeleteSecurityGroup    = "delete_security_group"
	OpGetSecurityGroups      = "get_security_groups"
	OpGetSecurityGroupsCount = "get_security_groups_count"

	OpCreateSecurityGroupRule    = "create_security_group_rule"
	OpGetSecurityGroupRule       = "get_security_group_rule"
	OpDeleteSecurityGroupRule    = "delete_security_group_rule"
	OpGetSecurityGroupRules      = "get_security_group_rules"
	OpGetSecurityGroupRulesCount = "get_security_group_rules_count"
)

func (d *Driver) registerSecurityGroupHandlers() {
	d.capabilities[OpCreateSecurityGroup] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.CreateResource(ctx, resource.KindSecurityGroup, inv.Payload)
	}
	d.capabilities[OpGetSecurityGroup] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.GetResource(ctx, resource.KindSecurityGroup, inv.ID, inv.Fields)
	}
	d.capabilities[OpUpdateSecurityGroup] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.UpdateResource(ctx, resource.KindSecurityGroup, inv.ID, inv.Payload)
	}
	d.capabilities[OpDeleteSecurityGroup] = func(ctx context.Context, inv Invocation) (any, error) {
		return nil, d.DeleteResource(ctx, resource.KindSecurityGroup, inv.ID)
	}
	d.capabilities[OpGetSecurityGroups] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.ListResource(ctx, resource.KindSecurityGroup, inv.Filters, inv.Fields)
	}

	d.capabilities[OpCreateSecurityGroupRule] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.CreateResource(ctx, resource.KindSecurityGroupRule, inv.Payload)
	}
	d.capabilities[OpGetSecurityGroupRule] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.GetResource(ctx, resource.KindSecurityGroupRule, inv.ID, inv.Fields)
	}
	d.capabilities[OpDeleteSecurityGroupRule] = func(ctx context.Context, inv Invocation) (any, error) {
		return nil, d.DeleteResource(ctx, resource.KindSecurityGroupRule, inv.ID)
	}
	d.capabilities[OpGetSecurityGroupRules] = func(ctx context.Context, inv Invocation) (any, error) {
		return d.ListResource(ctx, resource.KindSecurityGroupRule, inv.Filters, inv.Fields)
	}

	// Security group counting is not implemented at this layer. Both
	// counts answer 0 without consulting the backend; callers must not
	// rely on them.
	zero := func(ctx context.Context, inv Invocation) (any, error) { return 0, nil }
	d.capabilities[OpGetSecurityGroupsCount] = zero
	d.capabilities[OpGetSecurityGroupRulesCount] = zero
}

// CreateSecurityGroup creates a security group.
func (d *Driver) CreateSecurityGroup(ctx context.Context, securityGroup resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpCreateSecurityGroup, Invocation{Payload: securityGroup})
}

// GetSecurityGroup returns the attributes of a security group.
func (d *Driver) GetSecurityGroup(ctx context.Context, sgID string, fields []string) (resource.Record, error) {
	return d.invokeRecord(ctx, OpGetSecurityGroup, Invocation{ID: sgID, Fields: fields})
}

// UpdateSecurityGroup updates the attributes of a security group.
func (d *Driver) UpdateSecurityGroup(ctx context.Context, sgID string, securityGroup resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpUpdateSecurityGroup, Invocation{ID: sgID, Payload: securityGroup})
}

// DeleteSecurityGroup deletes a security group.
func (d *Driver) DeleteSecurityGroup(ctx context.Context, sgID string) error {
	return d.invokeNone(ctx, OpDeleteSecurityGroup, Invocation{ID: sgID})
}

// GetSecurityGroups retrieves all security groups matching the filters.
func (d *Driver) GetSecurityGroups(ctx context.Context, filters resource.Filters, fields []string) ([]resource.Record, error) {
	return d.invokeRecords(ctx, OpGetSecurityGroups, Invocation{Filters: filters, Fields: fields})
}

// GetSecurityGroupsCount always returns 0; accurate security group counting
// is not implemented at this layer.
func (d *Driver) GetSecurityGroupsCount(ctx context.Context, filters resource.Filters) (int, error) {
	return d.invokeCount(ctx, OpGetSecurityGroupsCount, Invocation{Filters: filters})
}

// CreateSecurityGroupRule creates a security group rule.
func (d *Driver) CreateSecurityGroupRule(ctx context.Context, rule resource.Record) (resource.Record, error) {
	return d.invokeRecord(ctx, OpCreateSecurityGroupRule, Invocation{Payload: rule})
}

// GetSecurityGroupRule returns the attributes of a security group rule.
func (d *Driver) GetSecurityGroupRule(ctx context.Context, ruleID string, fields []string) (resource.Record, error) {
	return d.invokeRecord(ctx, OpGetSecurityGroupRule, Invocation{ID: ruleID, Fields: fields})
}

// DeleteSecurityGroupRule deletes a security group rule.
func (d *Driver) DeleteSecurityGroupRule(ctx context.Context, ruleID string) error {
	return d.invokeNone(ctx, OpDeleteSecurityGroupRule, Invocation{ID: ruleID})
}

// GetSecurityGroupRules retrieves all security group rules matching the
// filters.
func (d *Driver) GetSecurityGroupRules(ctx context.Context, filters resource.Filters, fields []string) ([]resource.Record, error) {
	return d.invokeRecords(ctx, OpGetSecurityGroupRules, Invocation{Filters: filters, Fields: fields})
}

// GetSecurityGroupRulesCount always returns 0; accurate security group rule
// counting is not implemented at this layer.
func (d *Driver) GetSecurityGroupRulesCount(ctx context.Context, filters resource.Filters) (int, error) {
	return d.invokeCount(ctx, OpGetSecurityGroupRulesCount, Invocation{Filters: filters})
}
