package helpers

import (
	"testing"

	"github.com/eventahq/eventa-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name     string
		actorID  uuid.UUID
		role     string
		expected bool
	}{
		{name: "owner may modify", actorID: owner, role: models.RoleUser, expected: true},
		{name: "admin may modify", actorID: stranger, role: models.RoleAdmin, expected: true},
		{name: "stranger may not modify", actorID: stranger, role: models.RoleUser, expected: false},
		{name: "organizer role grants nothing by itself", actorID: stranger, role: models.RoleOrganizer, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanModify(tt.actorID, tt.role, owner))
		})
	}
}

func TestIsAuthorHasNoAdminOverride(t *testing.T) {
	author := uuid.New()
	other := uuid.New()

	assert.True(t, IsAuthor(author, author))
	assert.False(t, IsAuthor(other, author))
}
