package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "fiber error keeps its code",
			err:            fiber.NewError(fiber.StatusBadRequest, "state mismatch"),
			expectedStatus: fiber.StatusBadRequest,
			expectedBody:   "state mismatch",
		},
		{
			name:           "wrapped fiber error",
			err:            errors.Wrap(fiber.ErrForbidden, "access denied by broker"),
			expectedStatus: fiber.StatusForbidden,
			expectedBody:   "Forbidden",
		},
		{
			name:           "unexpected error hides the cause",
			err:            errors.New("jira is down"),
			expectedStatus: fiber.StatusInternalServerError,
			expectedBody:   "Sorry, something went wrong. request-id: rid-1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Use(requestid.New(requestid.Config{Generator: func() string { return "rid-1" }}))
			app.Get("/", func(c *fiber.Ctx) error {
				return tc.err
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			require.Equal(t, tc.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, tc.expectedBody, string(body))
		})
	}
}
