package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{"gorm duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, ErrAlreadyExists},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_slug"`), http.StatusConflict, ErrAlreadyExists},
		{"sqlite duplicate", errors.New("constraint failed: UNIQUE constraint failed: projects.slug (2067)"), http.StatusConflict, ErrAlreadyExists},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, ErrForeignKeyConstraint},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), http.StatusNotFound, ErrNotFound},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"anything else", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("save", "project", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, tt.status, StatusCode(err))
			assert.Equal(t, tt.cause, err.Cause)
		})
	}
}

func TestNewDatabaseErrorUsesEntityConstructors(t *testing.T) {
	dup := NewDatabaseError("create", "project", gorm.ErrDuplicatedKey)
	assert.True(t, IsAlreadyExists(dup))
	assert.Equal(t, NewAlreadyExists("project").Error()+": Failed to create project", dup.Error())

	missing := NewDatabaseError("find", "portfolio", gorm.ErrRecordNotFound)
	assert.True(t, IsNotFound(missing))
	assert.Equal(t, NewNotFound("portfolio").Error()+": Failed to find portfolio", missing.Error())
}

func TestNewDatabaseErrorPassesApiErrThrough(t *testing.T) {
	original := NewInvalidFieldError("projects", "unknown project id")
	assert.Same(t, original, NewDatabaseError("save", "portfolio", original))
	assert.Same(t, original, NewDatabaseError("save", "portfolio", fmt.Errorf("tx: %w", original)))
}

func TestNewCooldownErrorRoundsUp(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      time.Duration
	}{
		{41*time.Second + time.Millisecond, 42 * time.Second},
		{42 * time.Second, 42 * time.Second},
		{200 * time.Millisecond, time.Second},
		{0, time.Second},
	}

	for _, tt := range tests {
		err := NewCooldownError(tt.remaining)
		assert.Equal(t, http.StatusTooManyRequests, err.StatusCode)
		assert.Equal(t, tt.want, err.RetryAfter)
		assert.True(t, IsCooldownActive(err))
	}
}

func TestGetFullError(t *testing.T) {
	inner := NewDatabaseError("insert", "message", errors.New("disk full"))
	outer := &ApiErr{StatusCode: http.StatusInternalServerError, err: ErrDatabaseQuery, Cause: inner}

	full := outer.GetFullError()
	assert.Contains(t, full, "database query failed -> ")
	assert.Contains(t, full, "disk full")
}

func TestStatusCodeDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("missing")))
	assert.True(t, IsNotFound(NewNotFoundError("missing")))
	assert.True(t, IsConflict(NewConflictError("dup")))
}
