// Package request implements the per-request execution pipeline: a
// transactional context handed to controllers, and the factory that composes
// auth, validation and error translation around them.
package request

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/scribehq/scribe-be/internal/auth"
)

// Context bundles everything a controller needs for one request: the decoded
// body, route params, the authenticated identity, and the database session.
// It lives for exactly one request.
type Context struct {
	Request *http.Request
	Writer  http.ResponseWriter

	// Body holds the decoded and validated payload when the route declares a
	// body schema.
	Body any

	// User holds the authenticated claims, nil for anonymous requests.
	User *auth.Claims

	db *sqlx.DB
	tx *sqlx.Tx
}

// Param returns a URL path parameter.
func (c *Context) Param(name string) string {
	return chi.URLParam(c.Request, name)
}

// Querier returns the open transaction when the route runs transactionally,
// the shared pool otherwise.
func (c *Context) Querier() sqlx.ExtContext {
	if c.tx != nil {
		return c.tx
	}
	return c.db
}

// withTransaction runs fn inside a database transaction. The transaction
// commits when fn returns nil and aborts otherwise; fn's error propagates
// unchanged to the caller.
func (c *Context) withTransaction(fn func() error) error {
	tx, err := c.db.BeginTxx(c.Request.Context(), nil)
	if err != nil {
		return err
	}
	c.tx = tx
	defer func() {
		c.tx = nil
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	if err := fn(); err != nil {
		return err
	}
	return tx.Commit()
}
