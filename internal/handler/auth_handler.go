package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

// AuthHandler exposes role switching.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SwitchRole godoc
// @Summary Issue a role token
// @Tags Roles
// @Produce json
// @Param role path string true "Role name (teacher or viewer)"
// @Success 200 {object} response.Envelope
// @Router /role/{role} [post]
func (h *AuthHandler) SwitchRole(c *gin.Context) {
	role := normalizeRole(c.Param("role"))
	token, err := h.auth.IssueRoleToken(role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token)
}

func normalizeRole(raw string) string {
	switch raw {
	case "teacher":
		return "TEACHER"
	case "viewer":
		return "VIEWER"
	default:
		return raw
	}
}
