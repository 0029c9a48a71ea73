package handler

import (
	"net/http"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/middleware"
	"github.com/Cxldas/Sistema-de-estoque/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Registrar godoc
// @Summary Cadastro de usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Dados do usuário"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/auth/register [post]
func (h *AuthHandler) Registrar(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Login de usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the identity resolved by the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUsuario(c)
	c.JSON(http.StatusOK, dto.UsuarioResponse{
		ID:        user.ID.String(),
		Nome:      user.Nome,
		Email:     user.Email,
		Tipo:      string(user.Tipo),
		CreatedAt: user.CreatedAt.UTC(),
	})
}

func (h *AuthHandler) EsqueciSenha(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EsqueciSenha(c.Request.Context(), req.Email)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RedefinirSenha(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RedefinirSenha(c.Request.Context(), req.Token, req.NovaSenha); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Senha resetada com sucesso"})
}
