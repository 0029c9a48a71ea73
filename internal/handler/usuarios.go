package handler

import (
	"net/http"

	"github.com/Cxldas/Sistema-de-estoque/internal/apierror"
	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UsuariosHandler backs the admin-only user management endpoints.
type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Criar reuses the registration flow; the route is gated to admins.
func (h *UsuariosHandler) Criar(c *gin.Context) {
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

func (h *UsuariosHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.NewCode("usuario_nao_encontrado", "Usuário não encontrado"))
		return
	}
	if err := h.svc.ExcluirUsuario(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Usuário deletado com sucesso"})
}
