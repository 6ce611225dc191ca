package domain

import "strings"

// Capability is the closed set of roles the booking core distinguishes
type Capability int

const (
	CapabilityCustomer Capability = iota
	CapabilityAdministrator
)

func (c Capability) String() string {
	if c == CapabilityAdministrator {
		return "admin"
	}
	return "customer"
}

// IsAdministrator returns true for the administrator capability
func (c Capability) IsAdministrator() bool {
	return c == CapabilityAdministrator
}

// ResolveCapability maps an auth-provider role name onto a Capability.
// Anything that is not an administrator role is a customer.
func ResolveCapability(role string) Capability {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "administrator":
		return CapabilityAdministrator
	default:
		return CapabilityCustomer
	}
}

// Actor the authenticated caller of an operation
type Actor struct {
	UserID     string
	Capability Capability
}
