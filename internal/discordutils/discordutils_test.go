package discordutils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	t.Parallel()
	forbidden := fmt.Errorf("failed to add role: %w", &httputil.HTTPError{Status: http.StatusForbidden})

	assert.True(t, IsStatus(forbidden, http.StatusNotFound, http.StatusForbidden))
	assert.False(t, IsStatus(forbidden, http.StatusNotFound))
	assert.True(t, IsStatus4XX(forbidden))

	serverError := &httputil.HTTPError{Status: http.StatusBadGateway}
	assert.False(t, IsStatus4XX(serverError))

	_, ok := Status(errors.New("honk"))
	assert.False(t, ok)
	assert.False(t, IsStatus(nil, http.StatusForbidden))
}
