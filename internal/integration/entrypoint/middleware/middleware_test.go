package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/entrypoint/dto"
)

type stubTokenService struct {
	claims *adapter.TokenClaims
	err    error
}

func (s stubTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "user@example.com"}}

	tests := []struct {
		name           string
		header         string
		service        stubTokenService
		expectedStatus int
		expectedCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", service: valid, expectedStatus: http.StatusUnauthorized, expectedCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", service: valid, expectedStatus: http.StatusUnauthorized, expectedCode: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer ", service: valid, expectedStatus: http.StatusUnauthorized, expectedCode: domainerror.ErrCodeMissingToken},
		{name: "expired", header: "Bearer tok", service: stubTokenService{err: domainerror.ErrTokenExpired}, expectedStatus: http.StatusUnauthorized, expectedCode: domainerror.ErrCodeExpiredToken},
		{name: "invalid", header: "Bearer tok", service: stubTokenService{err: domainerror.ErrInvalidToken}, expectedStatus: http.StatusUnauthorized, expectedCode: domainerror.ErrCodeInvalidToken},
		{name: "valid", header: "Bearer tok", service: valid, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/me", NewAuthMiddleware(tt.service).Authenticate(), func(c *gin.Context) {
				id, _ := GetUserIDFromContext(c)
				email, _ := GetUserEmailFromContext(c)
				c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedCode != "" {
				var resp dto.ErrorResponse
				_ = json.Unmarshal(w.Body.Bytes(), &resp)
				if resp.Code != string(tt.expectedCode) {
					t.Errorf("expected code %s, got %s", tt.expectedCode, resp.Code)
				}
				return
			}

			var body map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["id"] != userID.String() || body["email"] != "user@example.com" {
				t.Errorf("expected identity in context, got %v", body)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	userA, userB := uuid.New(), uuid.New()
	router := gin.New()
	router.POST("/reports", func(c *gin.Context) {
		id, _ := uuid.Parse(c.GetHeader("X-User"))
		c.Set(string(UserIDKey), id)
		c.Next()
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func(user uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/reports", nil)
		req.Header.Set("X-User", user.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if do(userA).Code != http.StatusCreated || do(userA).Code != http.StatusCreated {
		t.Fatal("expected the first two requests to pass")
	}
	w := do(userA)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if do(userB).Code != http.StatusCreated {
		t.Error("expected limits to be per user")
	}

	now = now.Add(61 * time.Second)
	if do(userA).Code != http.StatusCreated {
		t.Error("expected the window to reset")
	}

	// userB's window started before the jump and has expired; userA's was just reset.
	rl.Cleanup()
	if len(rl.entries) != 1 {
		t.Errorf("expected only the live entry to be kept, got %d", len(rl.entries))
	}
	if _, ok := rl.entries["user:"+userA.String()]; !ok {
		t.Error("expected userA's live window to survive cleanup")
	}
}
