package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("room not found")))
	assert.Equal(t, KindValidation, KindOf(Validation("pin", "pin must be exactly 4 digits")))
	assert.Equal(t, KindAuthorization, KindOf(Authorization("not yours")))
	assert.Equal(t, KindDuplicateKey, KindOf(DuplicateKey("taken")))
	assert.Equal(t, KindUpstream, KindOf(Upstream("db", errors.New("boom"))))
	assert.Equal(t, KindPartialFailure, KindOf(PartialFailure("half done", errors.New("boom"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading room: %w", NotFound("room not found"))
	assert.True(t, IsKind(err, KindNotFound))
}

func TestCausePreserved(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("failed to load room", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "failed to load room", Message(err), "caller-facing message omits the cause")
}

func TestValidationField(t *testing.T) {
	var e *Error
	assert.True(t, errors.As(Validation("key", "room key is required"), &e))
	assert.Equal(t, "key", e.Field)
}
