package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ginvoice/backend/internal/infrastructure/auth"
	"github.com/ginvoice/backend/internal/interfaces/http/middleware"
)

// AuthHandler exposes session endpoints. Tokens are minted by the firm's
// identity provider; this service only introspects and revokes them.
type AuthHandler struct {
	BaseHandler
	blacklist auth.TokenBlacklist
}

// NewAuthHandler creates a new AuthHandler. blacklist may be nil, in which
// case logout is a no-op acknowledgement.
func NewAuthHandler(blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		blacklist: blacklist,
	}
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	UserID       string   `json:"user_id"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

// Me godoc
// @Summary      Get the authenticated caller
// @Description  Returns the identity and capabilities resolved from the access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=MeResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, MeResponse{
		UserID:       claims.UserID,
		Name:         claims.Name,
		Capabilities: claims.Capabilities,
	})
}

// Logout godoc
// @Summary      Revoke the current access token
// @Description  Blacklists the token for its remaining lifetime
// @Tags         auth
// @Produce      json
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.blacklist != nil && claims.ID != "" {
		if ttl := claims.GetRemainingTTL(); ttl > 0 {
			if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, ttl); err != nil {
				h.HandleError(c, err)
				return
			}
		}
	}

	h.NoContent(c)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
		authGroup.POST("/logout", h.Logout)
	}
}
