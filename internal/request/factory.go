package request

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/scribehq/scribe-be/internal/apperrors"
	"github.com/scribehq/scribe-be/internal/auth"
	"github.com/scribehq/scribe-be/internal/models"
)

// Controller is a business-logic function executed for one request. It
// returns the response payload and status, or a typed error for the
// translator.
type Controller func(c *Context) (*Result, error)

// Result is what a controller hands back on success.
type Result struct {
	Status int
	Body   any
}

// Options configures the pipeline Handle builds around a controller.
type Options struct {
	RequireAuth    bool
	RequireAdmin   bool
	UseTransaction bool

	// Body, when set, returns a fresh payload struct the request body is
	// decoded into and validated against before the controller runs.
	Body func() any
}

// Factory builds HTTP handlers around controllers.
type Factory struct {
	db       *sqlx.DB
	validate *validator.Validate
}

// NewFactory creates a Factory bound to the database pool.
func NewFactory(db *sqlx.DB) *Factory {
	return &Factory{db: db, validate: validator.New()}
}

// Handle composes authentication, body validation and transaction wrapping
// around ctrl, producing a chi-compatible handler. Order: auth gate, admin
// gate, decode+validate, transaction, controller, response.
func (f *Factory) Handle(ctrl Controller, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := &Context{Request: r, Writer: w, db: f.db}

		if claims, ok := auth.ClaimsFrom(r.Context()); ok {
			c.User = claims
		}
		if opts.RequireAuth && c.User == nil {
			writeError(w, apperrors.Unauthenticated("authentication required"))
			return
		}
		if opts.RequireAdmin && (c.User == nil || c.User.Role != models.RoleAdmin) {
			writeError(w, apperrors.Forbidden("admin privileges required"))
			return
		}

		if opts.Body != nil {
			body := opts.Body()
			if err := json.NewDecoder(r.Body).Decode(body); err != nil {
				writeError(w, apperrors.Validation([]apperrors.FieldError{{Field: "body", Message: "invalid JSON"}}))
				return
			}
			if err := f.validate.Struct(body); err != nil {
				writeError(w, toValidationError(err))
				return
			}
			c.Body = body
		}

		var result *Result
		run := func() error {
			var err error
			result, err = ctrl(c)
			return err
		}

		var err error
		if opts.UseTransaction {
			err = c.withTransaction(run)
		} else {
			err = run()
		}
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, result.Status, result.Body)
	}
}

// toValidationError flattens validator output into per-field errors.
func toValidationError(err error) *apperrors.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation([]apperrors.FieldError{{Field: "body", Message: err.Error()}})
	}
	details := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperrors.FieldError{
			Field:   fe.Field(),
			Message: "failed validation on '" + fe.Tag() + "'",
		})
	}
	return apperrors.Validation(details)
}

// writeError translates an error into an HTTP status and structured body.
// Untyped errors stay opaque to the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.Status(apperrors.KindOf(err))

	body := map[string]any{"error": err.Error()}
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		if ae.Field != "" {
			body["field"] = ae.Field
			body["value"] = ae.Value
		}
		if len(ae.Details) > 0 {
			body["details"] = ae.Details
		}
	} else {
		body["error"] = "internal server error"
		log.Error().Err(err).Msg("Unhandled error in request pipeline")
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}
