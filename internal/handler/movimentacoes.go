package handler

import (
	"net/http"

	"github.com/Cxldas/Sistema-de-estoque/internal/apierror"
	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/middleware"
	"github.com/Cxldas/Sistema-de-estoque/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovimentacoesHandler struct{ svc service.MovimentacaoService }

func NewMovimentacoesHandler(svc service.MovimentacaoService) *MovimentacoesHandler {
	return &MovimentacoesHandler{svc: svc}
}

func (h *MovimentacoesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Registrar records a movement in the name of the authenticated user.
func (h *MovimentacoesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarMovimentacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), middleware.GetUsuario(c), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MovimentacoesHandler) Historico(c *gin.Context) {
	produtoID, err := uuid.Parse(c.Param("produto_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.NewCode("produto_nao_encontrado", "Produto não encontrado"))
		return
	}
	resp, err := h.svc.Historico(c.Request.Context(), produtoID)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
