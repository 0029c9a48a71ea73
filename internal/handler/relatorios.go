package handler

import (
	"net/http"

	"github.com/Cxldas/Sistema-de-estoque/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

func (h *RelatoriosHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV streams the catalog as a CSV attachment.
func (h *RelatoriosHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename=relatorio_estoque.csv`)
	if err := h.svc.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be out; best we can do is log via the error chain.
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
	}
}

// ExportPDF streams the catalog as a PDF attachment.
func (h *RelatoriosHandler) ExportPDF(c *gin.Context) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename=relatorio_estoque.pdf`)
	if err := h.svc.ExportPDF(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
	}
}
