package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/kameti-auth/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()
	claims := model.Claims{AccountID: uuid.New(), Role: model.RoleAdmin}

	ctx := m.SetClaimsToContext(context.Background(), claims)

	got, ok := m.GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)
}

func TestManager_Missing(t *testing.T) {
	_, ok := NewManager().GetClaimsFromContext(context.Background())
	assert.False(t, ok)
}

func TestManager_Overwrite(t *testing.T) {
	m := NewManager()
	first := model.Claims{AccountID: uuid.New(), Role: model.RoleUser}
	second := model.Claims{AccountID: uuid.New(), Role: model.RoleAdmin}

	ctx := m.SetClaimsToContext(m.SetClaimsToContext(context.Background(), first), second)

	got, ok := m.GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, second, got)
}
