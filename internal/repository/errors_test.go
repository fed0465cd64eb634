package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	require.True(t, IsDuplicate(dup))
	require.False(t, IsCheckViolation(dup))
	require.True(t, IsCheckViolation(check))
	require.False(t, IsDuplicate(check))
	require.False(t, IsDuplicate(errors.New("23505")))
	require.False(t, IsCheckViolation(nil))
}
