package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCountsAreDerivedSetSizes(t *testing.T) {
	event := Event{
		Participants: []User{{}, {}, {}},
		Likes:        []User{{}},
	}

	require.NoError(t, event.AfterFind(nil))

	assert.Equal(t, 3, event.ParticipantCount)
	assert.Equal(t, 1, event.LikeCount)
}

func TestEventCountsAreZeroForEmptySets(t *testing.T) {
	event := Event{}

	require.NoError(t, event.AfterFind(nil))

	assert.Zero(t, event.ParticipantCount)
	assert.Zero(t, event.LikeCount)
}

func TestIsValidCategory(t *testing.T) {
	for _, category := range EventCategories {
		assert.True(t, IsValidCategory(category))
	}
	assert.False(t, IsValidCategory("technology"))
	assert.False(t, IsValidCategory("Gaming"))
	assert.False(t, IsValidCategory(""))
}
