package handlers

import (
	"net/http"

	"github.com/hari2128-cell/CureVox/internal/services"
	"github.com/hari2128-cell/CureVox/internal/services/dto"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// bearerTokenKey mirrors middleware.ContextBearerTokenKey without importing
// the middleware package (it imports services, keeping the dependency one-way).
const bearerTokenKey = "bearerToken"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
	}
}

// RegisterPublicRoutes mounts the unauthenticated auth endpoints.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/complete-profile", h.CompleteProfile)
	}
}

// RegisterProtectedRoutes mounts the endpoints behind the request gate.
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/logout/all", h.LogoutAll)
		auth.GET("/me", h.Me)
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
	}
}

func (h *AuthHandler) clientMeta(c *gin.Context) dto.ClientMeta {
	return dto.ClientMeta{
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		DeviceInfo: c.GetHeader("X-Device-Info"),
	}
}

// CompleteProfile exchanges an identity-provider token plus profile data for
// local tokens. Calling it again for the same account signs the user in
// without creating a duplicate.
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	var req dto.CompleteProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.authService.CompleteProfile(c.Request.Context(), db, &req, h.clientMeta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile completed successfully",
		"data":    resp,
	})
}

// Refresh issues a fresh token pair. The body is optional: without a
// refresh_token field the pair is minted for the bearer of the access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	var (
		resp *dto.AuthResponse
		err  error
	)
	if req.RefreshToken != "" {
		resp, err = h.authService.Refresh(c.Request.Context(), db, req.RefreshToken, h.clientMeta(c))
	} else {
		userID, ok := h.GetAndAuthorizeUserID(c)
		if !ok {
			return
		}
		resp, err = h.authService.RefreshForUser(c.Request.Context(), db, userID, h.clientMeta(c))
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}

// Logout revokes the current session. Repeating the call is not an error;
// the response just reports revoked=false.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Get(bearerTokenKey)
	tokenStr, ok := token.(string)
	if !ok || tokenStr == "" {
		apperrors.HandleError(c, apperrors.ErrMissingToken)
		return
	}

	db := h.GetDB(c)

	result, err := h.authService.Logout(c.Request.Context(), db, tokenStr)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
		"data":    result,
	})
}

// LogoutAll revokes every active session of the authenticated user.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	result, err := h.authService.LogoutAll(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All sessions closed",
		"data":    result,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.NewUserPayload(user),
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.NewProfilePayload(user),
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.UpdateProfile(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    dto.NewProfilePayload(user),
	})
}
