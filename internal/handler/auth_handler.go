package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary  Iniciar sesion
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body dto.LoginRequest true "Credenciales"
// @Success  200 {object} dto.LoginResponse
// @Failure  401 {object} apierror.APIError
// @Router   /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID := authUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Credenciales no provistas"))
		return
	}
	resp, err := h.auth.Profile(c.Request.Context(), *userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := authUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Credenciales no provistas"))
		return
	}
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.UpdateProfile(c.Request.Context(), *userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := authUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Credenciales no provistas"))
		return
	}
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), *userID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Contraseña actualizada correctamente"})
}
