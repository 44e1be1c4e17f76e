package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/identity"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

// AuthHandler coordinates identity-provider HTTP handlers.
type AuthHandler struct {
	provider *identity.Provider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider *identity.Provider) *AuthHandler {
	return &AuthHandler{
		provider: provider,
	}
}

// Signup registers a new email/password account.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.provider.SignUpWithEmail(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.saveSession(c, account.ID) {
		return
	}
	c.JSON(http.StatusCreated, h.sessionPayload(c, account))
}

// Login authenticates an email/password account and initializes the
// session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.provider.SignInWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.saveSession(c, account.ID) {
		return
	}
	c.JSON(http.StatusOK, h.sessionPayload(c, account))
}

// GoogleLogin exchanges a verified Google ID token for a session. The
// interactive popup happens in the client; only the token reaches us.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	type GoogleRequest struct {
		IDToken string `json:"id_token" binding:"required"`
	}

	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.provider.SignInWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.saveSession(c, account.ID) {
		return
	}
	c.JSON(http.StatusOK, h.sessionPayload(c, account))
}

// GuestLogin creates an anonymous account and signs it in.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	type GuestRequest struct {
		Name string `json:"name"`
	}

	// An empty body is fine for guests.
	var req GuestRequest
	_ = c.ShouldBindJSON(&req)

	account, err := h.provider.SignInAsGuest(c.Request.Context(), req.Name)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.saveSession(c, account.ID) {
		return
	}
	c.JSON(http.StatusCreated, h.sessionPayload(c, account))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, ok := middleware.GetUserID(c); ok {
		h.provider.Logout(c.Request.Context(), userID)
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated account and its profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	account, err := h.provider.GetAccount(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.sessionPayload(c, account))
}

// UpdateProfile replaces the persisted user profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ProfileRequest struct {
		Name         string   `json:"name" binding:"required"`
		Role         string   `json:"role"`
		Skills       []string `json:"skills"`
		Availability string   `json:"availability"`
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.provider.GetAccount(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	profile := h.provider.ResolveProfile(c.Request.Context(), account)
	profile.Name = req.Name
	if req.Role != "" {
		profile.Role = models.TeamRole(req.Role)
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Availability != "" {
		profile.Availability = models.Availability(req.Availability)
	}

	if err := h.provider.UpdateUserProfile(c.Request.Context(), profile); err != nil {
		apierrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateSkills replaces the skill set on the persisted profile.
func (h *AuthHandler) UpdateSkills(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SkillsRequest struct {
		Skills []string `json:"skills" binding:"required"`
	}

	var req SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.provider.UpdateUserSkills(c.Request.Context(), userID, req.Skills); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Skills updated",
	})
}

func (h *AuthHandler) saveSession(c *gin.Context, userID string) bool {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}

func (h *AuthHandler) sessionPayload(c *gin.Context, account *models.Account) gin.H {
	profile := h.provider.ResolveProfile(c.Request.Context(), account)
	return gin.H{
		"user":    account,
		"profile": profile,
	}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, identity.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password is too short")
	case errors.Is(err, identity.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, identity.ErrGoogleNotConfigured):
		apierrors.ServiceUnavailable(c, "Google sign-in is not configured")
	case errors.Is(err, identity.ErrAccountNotFound):
		apierrors.NotFound(c, "Account not found")
	default:
		apierrors.InternalError(c, "")
	}
}
