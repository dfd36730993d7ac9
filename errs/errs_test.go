package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusSentinels(t *testing.T) {
	assert.True(t, IsNotFound(NewNoRowsAffectedError("delete", "initiative", "A")))
	assert.True(t, IsNoRowsAffected(NewNoRowsAffectedError("delete", "initiative", "A")))
	assert.True(t, IsConflict(NewAlreadyExists("initiative")))
	assert.True(t, IsAlreadyExists(NewAlreadyExists("initiative")))
	assert.True(t, IsUnauthorized(NewExpiredTokenError()))
	assert.True(t, IsExpiredTokenError(NewExpiredTokenError()))
	assert.False(t, IsInvalidTokenError(NewExpiredTokenError()))
	assert.True(t, errors.Is(NewNotOwnerError("A"), ErrForbidden))
	assert.False(t, IsNotFound(NewMissingTokenError()))
}

func TestErrorMessages(t *testing.T) {
	err := NewNoRowsAffectedError("update", "initiative", "Sổ tay")
	assert.Equal(t, `no permission or not found: update initiative "Sổ tay" affected no rows`, err.Error())

	wrapped := &ApiErr{StatusCode: http.StatusInternalServerError, err: errors.New("outer"), Cause: NewUploadError("a.pdf", errors.New("quota"))}
	assert.Equal(t, `outer -> file upload failed: Upload of "a.pdf" failed -> quota`, wrapped.GetFullError())
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		target error
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "admins_pkey"`), http.StatusConflict, ErrAlreadyExists},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: admins.email"), http.StatusConflict, ErrAlreadyExists},
		{"row level security", errors.New(`new row violates row-level security policy for table "Catalog_data"`), http.StatusForbidden, ErrForbidden},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrDatabaseTimeout},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("load", "initiatives", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	existing := NewNotOwnerError("A")
	assert.Same(t, existing, NewDatabaseError("update", "initiative", existing))
}

func TestCompositeUploadError(t *testing.T) {
	err := NewCompositeUploadError([]FileFailure{
		{FileName: "a.pdf", Reason: errors.New("quota exceeded")},
		{FileName: "b.docx", Reason: errors.New("timeout")},
	})

	assert.True(t, IsUploadError(err))
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	assert.Equal(t, "2 file(s) failed: a.pdf: quota exceeded; b.docx: timeout", err.Details)
}

func TestConfigErrors(t *testing.T) {
	assert.True(t, IsConfigError(NewEnvironmentVariableError("JWT_SECRET")))
	assert.True(t, IsConfigError(NewConfigError("aws", errors.New("no region"))))
	assert.False(t, IsConfigError(NewUploadError("a", nil)))
}
