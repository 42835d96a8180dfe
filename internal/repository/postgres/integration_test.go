//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/kameti-auth/internal/model"
	repo "github.com/dtroode/kameti-auth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "kameti_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/kameti_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestAccountRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ar := repo.NewAccountRepository(conn)
	now := time.Now().UTC().Truncate(time.Microsecond)
	window := model.DeriveTrialWindow(model.RoleUser, nil, nil, now, model.DefaultTrialPeriod)
	phone := "+15550100"

	a := model.Account{
		ID:             uuid.New(),
		UserName:       "ann",
		Email:          "ann@example.com",
		PasswordDigest: "digest",
		Role:           model.RoleUser,
		PhoneNumber:    &phone,
		TrialStartDate: window.Start,
		TrialEndDate:   window.End,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	saved, err := ar.Create(ctx, a)
	require.NoError(t, err)
	require.Equal(t, a.ID, saved.ID)

	_, err = ar.Create(ctx, model.Account{ID: uuid.New(), Email: a.Email, Role: model.RoleUser, CreatedAt: now, UpdatedAt: now})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	byEmail, err := ar.GetByEmail(ctx, a.Email)
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
	require.NotNil(t, byEmail.TrialEndDate)
	assert.True(t, window.End.Equal(*byEmail.TrialEndDate))

	byID, err := ar.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, byID.Email)

	digest := "new-digest"
	updated, err := ar.UpdateByEmail(ctx, a.Email, model.AccountPatch{PasswordDigest: &digest})
	require.NoError(t, err)
	assert.Equal(t, "new-digest", updated.PasswordDigest)
	assert.NotNil(t, updated.TrialStartDate)

	admin := model.RoleAdmin
	updated, err = ar.UpdateByEmail(ctx, a.Email, model.AccountPatch{Role: &admin, Trial: &model.TrialWindow{}})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Nil(t, updated.TrialStartDate)
	assert.Nil(t, updated.TrialEndDate)
	assert.Equal(t, "new-digest", updated.PasswordDigest)

	name, newPhone := "Ann B", "+15550199"
	updated, err = ar.UpdateByEmail(ctx, a.Email, model.AccountPatch{UserName: &name, PhoneNumber: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", updated.UserName)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, "+15550199", *updated.PhoneNumber)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	second := model.Account{
		ID:             uuid.New(),
		UserName:       "bob",
		Email:          "bob@example.com",
		PasswordDigest: "digest",
		Role:           model.RoleUser,
		CreatedAt:      now.Add(time.Second),
		UpdatedAt:      now.Add(time.Second),
	}
	_, err = ar.Create(ctx, second)
	require.NoError(t, err)

	all, err := ar.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	_, err = ar.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = ar.UpdateByEmail(ctx, "missing@example.com", model.AccountPatch{PasswordDigest: &digest})
	require.ErrorIs(t, err, model.ErrNotFound)
}
