// SPDX-License-Identifier: Apache-2.0

package apierrors

// errorSpec describes one known exception variant: its message format and
// the descriptor fields that must be present for the variant to be
// constructed. Missing required fields fall the translation back to the
// generic BackendError.
type errorSpec struct {
	format   string
	required []string
}

type errorNamespace struct {
	name  string
	kinds map[string]errorSpec
}

func (ns errorNamespace) lookup(kind string) (errorSpec, bool) {
	sp, ok := ns.kinds[kind]
	return sp, ok
}

// namespaces is scanned in order during translation; the first namespace
// recognizing an exception name wins.
var namespaces = []errorNamespace{
	{name: "core", kinds: coreKinds},
	{name: "l3", kinds: l3Kinds},
	{name: "securitygroup", kinds: securityGroupKinds},
	{name: "addresspairs", kinds: addressPairKinds},
	{name: "lib", kinds: libKinds},
}

var coreKinds = map[string]errorSpec{
	"BadRequest": {
		format:   "Bad %(resource)s request: %(msg)s.",
		required: []string{"resource"},
	},
	"NotFound": {
		format: "Resource could not be found.",
	},
	"Conflict": {
		format: "The request could not be completed due to a conflict.",
	},
	"NotAuthorized": {
		format: "Not authorized.",
	},
	"AdminRequired": {
		format: "User does not have admin privileges: %(reason)s.",
	},
	"ServiceUnavailable": {
		format: "The service is unavailable.",
	},
	"NetworkNotFound": {
		format:   "Network %(net_id)s could not be found.",
		required: []string{"net_id"},
	},
	"SubnetNotFound": {
		format:   "Subnet %(subnet_id)s could not be found.",
		required: []string{"subnet_id"},
	},
	"PortNotFound": {
		format:   "Port %(port_id)s could not be found.",
		required: []string{"port_id"},
	},
	"NetworkInUse": {
		format:   "Unable to complete operation on network %(net_id)s. There are one or more ports still in use on the network.",
		required: []string{"net_id"},
	},
	"SubnetInUse": {
		format:   "Unable to complete operation on subnet %(subnet_id)s. One or more ports have an IP allocation from this subnet.",
		required: []string{"subnet_id"},
	},
	"PortInUse": {
		format:   "Unable to complete operation on port %(port_id)s for network %(net_id)s. Port already has an attached device %(device_id)s.",
		required: []string{"port_id"},
	},
	"MacAddressInUse": {
		format:   "Unable to complete operation for network %(net_id)s. The mac address %(mac)s is in use.",
		required: []string{"net_id", "mac"},
	},
	"IpAddressInUse": {
		format:   "Unable to complete operation for network %(net_id)s. The IP address %(ip_address)s is in use.",
		required: []string{"net_id", "ip_address"},
	},
	"IpAddressGenerationFailure": {
		format:   "No more IP addresses available on network %(net_id)s.",
		required: []string{"net_id"},
	},
	"InvalidInput": {
		format: "Invalid input for operation: %(error_message)s.",
	},
	"OverQuota": {
		format: "Quota exceeded for resources: %(overs)s.",
	},
	"HostRoutesExhausted": {
		format:   "Unable to complete operation for %(subnet_id)s. The number of host routes exceeds the limit %(quota)s.",
		required: []string{"subnet_id", "quota"},
	},
	"DNSNameServersExhausted": {
		format:   "Unable to complete operation for %(subnet_id)s. The number of DNS nameservers exceeds the limit %(quota)s.",
		required: []string{"subnet_id", "quota"},
	},
	"InvalidSharedSetting": {
		format:   "Unable to reconfigure sharing settings for network %(network)s. Multiple tenants are using it.",
		required: []string{"network"},
	},
}

var l3Kinds = map[string]errorSpec{
	"RouterNotFound": {
		format:   "Router %(router_id)s could not be found.",
		required: []string{"router_id"},
	},
	"RouterInUse": {
		format:   "Router %(router_id)s still has ports.",
		required: []string{"router_id"},
	},
	"RouterInterfaceNotFound": {
		format:   "Router %(router_id)s does not have an interface with id %(port_id)s.",
		required: []string{"router_id", "port_id"},
	},
	"RouterInterfaceNotFoundForSubnet": {
		format:   "Router %(router_id)s has no interface on subnet %(subnet_id)s.",
		required: []string{"router_id", "subnet_id"},
	},
	"RouterInterfaceInUseByFloatingIP": {
		format:   "Router interface for subnet %(subnet_id)s on router %(router_id)s cannot be deleted, as it is required by one or more floating IPs.",
		required: []string{"router_id", "subnet_id"},
	},
	"FloatingIPNotFound": {
		format:   "Floating IP %(floatingip_id)s could not be found.",
		required: []string{"floatingip_id"},
	},
	"ExternalGatewayForFloatingIPNotFound": {
		format:   "External network %(external_network_id)s is not reachable from subnet %(subnet_id)s.",
		required: []string{"subnet_id"},
	},
	"FloatingIPPortAlreadyAssociated": {
		format:   "Cannot associate floating IP %(floating_ip_address)s (%(fip_id)s) with port %(port_id)s using fixed IP %(fixed_ip)s, as that fixed IP already has a floating IP on external network %(net_id)s.",
		required: []string{"port_id"},
	},
	"RouterExternalGatewayInUseByFloatingIp": {
		format:   "Gateway cannot be updated for router %(router_id)s, since a gateway to external network %(net_id)s is required by one or more floating IPs.",
		required: []string{"router_id", "net_id"},
	},
}

var securityGroupKinds = map[string]errorSpec{
	"SecurityGroupNotFound": {
		format:   "Security group %(id)s does not exist.",
		required: []string{"id"},
	},
	"SecurityGroupRuleNotFound": {
		format:   "Security group rule %(id)s does not exist.",
		required: []string{"id"},
	},
	"SecurityGroupInUse": {
		format:   "Security group %(id)s in use.",
		required: []string{"id"},
	},
	"SecurityGroupCannotRemoveDefault": {
		format: "Removing default security group not allowed.",
	},
	"SecurityGroupDefaultAlreadyExists": {
		format: "Default security group already exists.",
	},
	"SecurityGroupRuleInvalidProtocol": {
		format:   "Security group rule protocol %(protocol)s not supported. Only protocol values %(values)s and integer representations [0 to 255] are supported.",
		required: []string{"protocol"},
	},
	"SecurityGroupRuleExists": {
		format:   "Security group rule already exists. Rule id is %(rule_id)s.",
		required: []string{"rule_id"},
	},
	"DuplicateSecurityGroupRuleInPost": {
		format: "Duplicate security group rule in POST.",
	},
}

var addressPairKinds = map[string]errorSpec{
	"AllowedAddressPairsMissingIP": {
		format: "AllowedAddressPair must contain ip_address.",
	},
	"AddressPairAndPortSecurityRequired": {
		format: "Port security must be enabled in order to have allowed address pairs on a port.",
	},
	"DuplicateAddressPairInRequest": {
		format: "Request contains duplicate address pair: mac_address %(mac_address)s ip_address %(ip_address)s.",
	},
	"AllowedAddressPairExceeded": {
		format:   "The number of allowed address pairs exceeds the maximum %(quota)s.",
		required: []string{"quota"},
	},
}

var libKinds = map[string]errorSpec{
	"ObjectNotFound": {
		format:   "Object %(id)s not found.",
		required: []string{"id"},
	},
	"InvalidConfigurationOption": {
		format:   "An invalid value was provided for %(opt_name)s: %(opt_value)s.",
		required: []string{"opt_name"},
	},
	"NetworkIdOrRouterIdRequiredError": {
		format: "Both network_id and router_id are None. One must be provided.",
	},
	"PortBound": {
		format:   "Unable to complete operation on port %(port_id)s, port is already bound, port type: %(vif_type)s.",
		required: []string{"port_id"},
	},
	"QuotaResourceUnknown": {
		format:   "Unknown quota resources %(unknown)s.",
		required: []string{"unknown"},
	},
}
