package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection_NilPool(t *testing.T) {
	conn := &Connection{}

	assert.NoError(t, conn.Close())
	require.Error(t, conn.Ping(context.Background()))
}

func TestNewConnection_InvalidDSN(t *testing.T) {
	_, err := NewConnection(context.Background(), "://not a dsn", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse postgres dsn")
}
