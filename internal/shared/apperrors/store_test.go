package apperrors

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsStoreUnavailable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"refused dial", fmt.Errorf("count venues: %w", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}), true},
		{"pgx connect", &pgconn.ConnectError{}, true},
		{"bad conn", fmt.Errorf("fetch seats: %w", driver.ErrBadConn), true},
		{"conn done", sql.ErrConnDone, true},
		{"closed pool", errors.New("sql: database is closed"), true},
		{"reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"query rejected", errors.New("ERROR: duplicate key value violates unique constraint"), false},
		{"classified", InvalidInput("rating_visual", "must be at most 5"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStoreUnavailable(tc.err))
		})
	}
}

func TestHTTPStatusStoreUnavailable(t *testing.T) {
	err := fmt.Errorf("search venues: %w", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED})
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))

	appErr := Unavailable("database")
	assert.ErrorIs(t, appErr, ErrNotConfigured)
	assert.Equal(t, Detail{Kind: "not configured", Field: "database"}, appErr.Detail())
}
