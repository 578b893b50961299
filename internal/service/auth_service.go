package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/pkg/config"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

// AuthService issues and validates role tokens. There are no user accounts:
// the token is the role flag, nothing more, replacing the session-based role
// switching of the legacy UI.
type AuthService struct {
	config config.RoleTokenConfig
	logger *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(cfg config.RoleTokenConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{config: cfg, logger: logger}
}

// IssueRoleToken mints a signed token carrying the requested role.
func (s *AuthService) IssueRoleToken(role string) (*models.RoleTokenResponse, error) {
	if !models.ValidRole(role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	now := time.Now().UTC()
	claims := models.RoleClaims{
		Role: models.Role(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign role token")
	}

	return &models.RoleTokenResponse{
		Token:     signed,
		Role:      models.Role(role),
		ExpiresIn: int64(s.config.Expiration.Seconds()),
	}, nil
}

// ValidateToken parses a role token and returns its claims.
func (s *AuthService) ValidateToken(raw string) (*models.RoleClaims, error) {
	claims := &models.RoleClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired role token")
	}
	if !models.ValidRole(string(claims.Role)) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token carries unknown role")
	}
	return claims, nil
}
