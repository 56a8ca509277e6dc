package usecase

import (
	"gemora/internal/domain/entity"
)

// Actor identifies who is performing an operation. Every mutating
// operation receives one; role checks live here instead of being
// scattered through the workflows.
type Actor struct {
	ID   string
	Role string
}

func AdminActor(id string) Actor {
	return Actor{ID: id, Role: entity.RoleAdmin}
}

func SellerActor(id string) Actor {
	return Actor{ID: id, Role: entity.RoleSeller}
}

func BuyerActor(id string) Actor {
	return Actor{ID: id, Role: entity.RoleBuyer}
}

func AnonymousActor() Actor {
	return Actor{Role: entity.RoleAnonymous}
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

func (a Actor) Owns(ownerID string) bool {
	return a.ID != "" && a.ID == ownerID
}

// CanManageListing allows the owning seller and administrators.
func (a Actor) CanManageListing(l *entity.Listing) bool {
	return a.IsAdmin() || a.Owns(l.SellerID)
}

// CanSeeListing implements the visibility rule: public iff active and
// verified, the owner always sees their own, administrators see all.
func (a Actor) CanSeeListing(l *entity.Listing) bool {
	if a.IsAdmin() || a.Owns(l.SellerID) {
		return true
	}
	return l.PubliclyVisible()
}
