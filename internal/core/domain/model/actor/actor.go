package actor

import (
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the normalized caller role. Role identifiers are converted to this
// enum once at the boundary; the rest of the code never compares raw strings
// or numbers.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin has unrestricted access across tenants.
	RoleAdmin

	// RoleSupervisor is internal staff supervising shipments.
	RoleSupervisor

	// RoleOperator is internal staff recording checkpoint reports.
	RoleOperator

	// RoleClient is an external user scoped to their own client's orders.
	RoleClient
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleAdmin:      "admin",
		RoleSupervisor: "supervisor",
		RoleOperator:   "operator",
		RoleClient:     "client",
	}
}

// RoleFromString normalizes a role identifier received at the boundary.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "supervisor":
		return RoleSupervisor, nil
	case "operator":
		return RoleOperator, nil
	case "client":
		return RoleClient, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks that the Role is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor identifies the caller of a command or query together with their
// tenant scope. A nil client ID marks internal staff not bound to any tenant.
type Actor struct {
	id       kernel.UUID
	clientID *kernel.UUID
	role     Role

	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a validated identifier and role.
// clientID may be nil for internal staff.
func NewActor(id kernel.UUID, clientID *kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if clientID != nil {
		if err := clientID.Validate(); err != nil {
			return Actor{}, err
		}
	}

	return Actor{
		id:       id,
		clientID: clientID,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// ClientID returns the actor's tenant, or nil for internal staff.
func (a Actor) ClientID() *kernel.UUID {
	return a.clientID
}

// Role returns the actor's normalized role.
func (a Actor) Role() Role {
	return a.role
}

// CanManage reports whether the actor may mutate an order owned by ownerID.
// Admins and internal staff without a tenant manage any order; everyone else
// only orders of their own client.
func (a Actor) CanManage(ownerID kernel.UUID) bool {
	if a.role == RoleAdmin || a.clientID == nil {
		return true
	}
	return a.clientID.IsEqual(ownerID)
}

// CanView reports whether the actor may read an order owned by ownerID.
// Supervisors and operators may view orders across tenants so they can record
// checkpoint reports for any active shipment.
func (a Actor) CanView(ownerID kernel.UUID) bool {
	if a.role == RoleSupervisor || a.role == RoleOperator {
		return true
	}
	return a.CanManage(ownerID)
}

// TenantScope returns the client ID that list queries must be restricted to,
// or nil when the actor may see all tenants.
func (a Actor) TenantScope() *kernel.UUID {
	if a.role == RoleAdmin || a.clientID == nil {
		return nil
	}
	return a.clientID
}
