package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/pkg/config"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

func newAuthService(expiration time.Duration) *AuthService {
	return NewAuthService(config.RoleTokenConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "gradebook-api-test",
	}, nil)
}

func TestIssueAndValidateRoleToken(t *testing.T) {
	svc := newAuthService(time.Hour)

	issued, err := svc.IssueRoleToken("TEACHER")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, issued.Role)
	assert.Equal(t, int64(3600), issued.ExpiresIn)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestIssueRoleTokenRejectsUnknownRole(t *testing.T) {
	svc := newAuthService(time.Hour)

	_, err := svc.IssueRoleToken("ADMIN")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newAuthService(-time.Minute)

	issued, err := svc.IssueRoleToken("VIEWER")
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	issued, err := newAuthService(time.Hour).IssueRoleToken("TEACHER")
	require.NoError(t, err)

	other := NewAuthService(config.RoleTokenConfig{Secret: "different", Expiration: time.Hour}, nil)
	_, err = other.ValidateToken(issued.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
