package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// AuthHandler modulo autenticazione
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler crea AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login autenticazione con username e password
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCredenzialiNonValide) {
			response.Error(c, http.StatusUnauthorized, 11001, "username o password errati")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RefreshToken rotazione della coppia di token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrCredenzialiNonValide) || errors.Is(err, service.ErrUtenteNonTrovato) {
			response.Error(c, http.StatusUnauthorized, 11002, "refresh token non valido")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout revoca del token corrente via blacklist
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expiresAt, ok := exp.(time.Time)
	if jti == "" || !ok {
		response.Unauthorized(c, 10002, "non autenticato")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentUser profilo dell'utente autenticato
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	utente, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUtenteNonTrovato) {
			response.NotFound(c, 11003, "utente non trovato")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, utente)
}

// ResetPassword reset amministrativo con password provvisoria per ruolo
// POST /api/v1/utenti/:id/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.ResetPassword(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNonTrovato) {
			response.NotFound(c, 11004, "utente non trovato")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
