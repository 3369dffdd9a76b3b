package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func TestAuth(t *testing.T) {
	var captured domain.Actor
	var capturedOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, capturedOK = GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(nopLogger{})(next)

	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
	}{
		{"valid student", "100", "student", http.StatusOK},
		{"valid provider", "42", "provider", http.StatusOK},
		{"missing user id", "", "student", http.StatusUnauthorized},
		{"non-numeric user id", "abc", "student", http.StatusUnauthorized},
		{"zero user id", "0", "student", http.StatusUnauthorized},
		{"negative user id", "-5", "student", http.StatusUnauthorized},
		{"missing role", "100", "", http.StatusUnauthorized},
		{"unknown role", "100", "admin", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capturedOK = false

			req := httptest.NewRequest(http.MethodGet, "/appointments/1", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				require.True(t, capturedOK)
				assert.Equal(t, domain.Role(tt.role), captured.Role)
			} else {
				assert.False(t, capturedOK)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestGetActorWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetActor(req.Context())
	assert.False(t, ok)
}
