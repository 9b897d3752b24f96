package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Forbidden("feature available from tier %d", 2))

	assert.Equal(t, KindForbidden, KindOf(err))
	assert.True(t, IsKind(err, KindForbidden))
	assert.False(t, IsKind(nil, KindForbidden))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindForbidden))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindInvalidArgument))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindInvalidState))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "revenue insufficient (minimum 500)", PublicMessage(InvalidArgument("revenue insufficient (minimum %d)", 500)))
	assert.Equal(t, "Internal Server Error", PublicMessage(Internal(errors.New("socket closed"), "failed to save partner")))
	assert.Equal(t, "Internal Server Error", PublicMessage(errors.New("raw")))
}
