package apperrors

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// database/sql does not export its closed-pool error.
const dbClosedMessage = "sql: database is closed"

// Unavailable reports a collaborator that is configured but cannot be reached.
func Unavailable(component string) *Error {
	return &Error{Kind: ErrNotConfigured, Field: component, Message: component + " is unavailable"}
}

// IsStoreUnavailable reports whether err means the relational store could not
// be reached, as opposed to a query the store rejected.
func IsStoreUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	var opErr *net.OpError
	switch {
	case errors.As(err, &connectErr), errors.As(err, &opErr):
		return true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	}
	return strings.Contains(err.Error(), dbClosedMessage)
}
