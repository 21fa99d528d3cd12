package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scribehq/scribe-be/internal/apperrors"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(apperrors.Conflict("dup", "email", "a@b.c")))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(apperrors.NotFound("missing")))
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(apperrors.Unauthenticated("nope")))
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(errors.New("boom")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperrors.NotFound("missing"))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, apperrors.Status(apperrors.KindConflict))
	assert.Equal(t, http.StatusNotFound, apperrors.Status(apperrors.KindNotFound))
	assert.Equal(t, http.StatusUnauthorized, apperrors.Status(apperrors.KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, apperrors.Status(apperrors.KindForbidden))
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(apperrors.KindValidation))
	assert.Equal(t, http.StatusInternalServerError, apperrors.Status(apperrors.KindInternal))
}

func TestConflictCarriesFieldDetail(t *testing.T) {
	err := apperrors.Conflict("blog with this title already exists", "title", "Hello")
	assert.Equal(t, "blog with this title already exists", err.Error())
	assert.Equal(t, "title", err.Field)
	assert.Equal(t, "Hello", err.Value)
}
