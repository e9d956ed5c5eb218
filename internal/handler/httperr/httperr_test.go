//go:build unit

package httperr_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("nil cause is synthesized from the public message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
		require.Len(t, c.Errors, 1)
		assert.EqualError(t, c.Errors[0].Err, "Unauthorized")
	})

	t.Run("detail is included in the body when present", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid request format", map[string]string{"field": "start_time"})

		assert.JSONEq(t,
			`{"error": {"message": "Invalid request format"}, "detail": {"field": "start_time"}}`,
			w.Body.String())
	})
}
