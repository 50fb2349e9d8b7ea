package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "too_soon"))
	assert.Equal(t, "time_conflict", CodeOf(err))
	assert.Equal(t, "", CodeOf(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{"conflict", ErrBusiness("time_conflict"), http.StatusConflict, "time_conflict", "already has"},
		{"detail", ErrBusinessDetail("invalid_interval", "monday"), http.StatusBadRequest, "invalid_interval", "(monday)"},
		{"unknown code", ErrBusiness("something_odd"), http.StatusBadRequest, "something_odd", "something_odd"},
		{"infra", errors.New("db down"), http.StatusInternalServerError, "fallback", "Unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err, "fallback")

			require.Equal(t, tt.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Contains(t, body.Message, tt.contains)
		})
	}
}
