package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/financeflow/backend/internal/domain/error"
)

const testSecret = "platform-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims PlatformClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestTokenService_ValidateAccessToken(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	valid := PlatformClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "https://auth.example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	badSubject := valid
	badSubject.Subject = "not-a-uuid"

	otherIssuer := valid
	otherIssuer.Issuer = "https://evil.example.com"

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name        string
		issuer      string
		token       string
		expectedErr error
	}{
		{name: "valid token", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid)},
		{name: "valid token with issuer check", issuer: "https://auth.example.com", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid)},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired), expectedErr: domainerror.ErrTokenExpired},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("other"), valid), expectedErr: domainerror.ErrInvalidToken},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(testSecret), valid), expectedErr: domainerror.ErrInvalidToken},
		{name: "subject is not a uuid", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), badSubject), expectedErr: domainerror.ErrInvalidToken},
		{name: "unexpected issuer", issuer: "https://auth.example.com", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), otherIssuer), expectedErr: domainerror.ErrInvalidToken},
		{name: "missing expiry", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry), expectedErr: domainerror.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", expectedErr: domainerror.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTokenService(testSecret, tt.issuer)
			claims, err := svc.ValidateAccessToken(context.Background(), tt.token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.UserID != userID || claims.Email != "user@example.com" {
				t.Errorf("unexpected claims %+v", claims)
			}
		})
	}
}
