// Package policy holds the authorization decisions shared by every use case.
// The functions are pure: they inspect the actor and the resource and return
// nil or a domain error, never touching storage.
package policy

import (
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, decoded from an access token.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entity.RoleAdmin
}

// RequireAuthenticated fails with ErrUnauthenticated unless a valid actor is present.
func RequireAuthenticated(actor *Actor) error {
	if actor == nil || actor.UserID == uuid.Nil || !actor.Role.IsValid() {
		return domainerrors.ErrUnauthenticated
	}

	return nil
}

// RequireRole fails with ErrForbidden unless the actor holds one of roles.
func RequireRole(actor *Actor, roles ...entity.Role) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}

	if !entity.Roles(roles).Contains(actor.Role) {
		return domainerrors.ErrForbidden.WrapMessage("role " + actor.Role.String() + " is not allowed")
	}

	return nil
}

// RequireOwnership fails with ErrForbidden unless the actor is ownerID.
func RequireOwnership(actor *Actor, ownerID uuid.UUID) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}

	if ownerID == uuid.Nil || actor.UserID != ownerID {
		return domainerrors.ErrForbidden.WrapMessage("resource belongs to another user")
	}

	return nil
}

// RequireServiceOwner fails with ErrForbidden unless the actor is the partner providing svc.
// Catalog services without a provider are owned by nobody.
func RequireServiceOwner(actor *Actor, svc *entity.Service) error {
	if err := RequireRole(actor, entity.RolePartner); err != nil {
		return err
	}

	if svc == nil || !svc.IsOwnedBy(actor.UserID) {
		return domainerrors.ErrForbidden.WrapMessage("service belongs to another partner")
	}

	return nil
}

// RequireBookingVisible allows the customer, the owning partner and admins to read a booking.
func RequireBookingVisible(actor *Actor, booking *entity.Booking, svc *entity.Service) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}

	switch {
	case actor.IsAdmin():
		return nil
	case booking.UserID == actor.UserID:
		return nil
	case svc != nil && svc.IsOwnedBy(actor.UserID):
		return nil
	default:
		return domainerrors.ErrForbidden.WrapMessage("booking belongs to another user")
	}
}

// ResolveReviewParties decides who reviews whom for a booking. A customer may only
// review the provider and a partner may only review the customer.
func ResolveReviewParties(actor *Actor, booking *entity.Booking, svc *entity.Service, target entity.ReviewTarget) (reviewerID, revieweeID uuid.UUID, err error) {
	if err := RequireAuthenticated(actor); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	switch target {
	case entity.ReviewTargetProvider:
		if err := RequireOwnership(actor, booking.UserID); err != nil {
			return uuid.Nil, uuid.Nil, err
		}
		if svc == nil || svc.ProviderID == nil {
			return uuid.Nil, uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("service has no provider to review")
		}

		return actor.UserID, *svc.ProviderID, nil
	case entity.ReviewTargetCustomer:
		if err := RequireServiceOwner(actor, svc); err != nil {
			return uuid.Nil, uuid.Nil, err
		}

		return actor.UserID, booking.UserID, nil
	default:
		return uuid.Nil, uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("unknown review target")
	}
}
