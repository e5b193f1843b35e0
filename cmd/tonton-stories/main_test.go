package main

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiberAppBuildsWithoutIconFile(t *testing.T) {
	app := newFiberApp(findBasePath())

	req := httptest.NewRequest(fiber.MethodGet, "/favicon.ico", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestFindBasePathResolvesViewsDir(t *testing.T) {
	assert.NotPanics(t, func() {
		findBasePath()
	})
}
