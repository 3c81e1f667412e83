package helpers

import (
	"github.com/eventahq/eventa-api/internal/models"
	"github.com/google/uuid"
)

// CanModify is the owner-or-admin rule for event mutations. Callers must
// check resource existence first so missing resources stay 404 even for
// admins.
func CanModify(actorID uuid.UUID, role string, ownerID uuid.UUID) bool {
	return actorID == ownerID || role == models.RoleAdmin
}

// IsAuthor gates review mutations. Reviews deliberately have no admin
// override: only the author may touch them.
func IsAuthor(actorID uuid.UUID, ownerID uuid.UUID) bool {
	return actorID == ownerID
}
