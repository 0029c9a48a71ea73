package infra

// pdf.go: PDF rendition of the stock report using go-pdf/fpdf.
// A4 landscape table with one row per product, mirroring the CSV export
// columns: ID, Nome, Categoria, Preço, Quantidade, Validade, Criado em.

import (
	"io"
	"strconv"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/model"

	"github.com/go-pdf/fpdf"
)

var colunas = []struct {
	titulo  string
	largura float64
}{
	{"ID", 70},
	{"Nome", 55},
	{"Categoria", 35},
	{"Preço", 20},
	{"Qtd.", 15},
	{"Validade", 25},
	{"Criado em", 45},
}

// RelatorioEstoquePDF writes the stock report to w.
func RelatorioEstoquePDF(produtos []model.Produto, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Relatório de Estoque", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Gerado em "+time.Now().UTC().Format(time.RFC3339), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Header row
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range colunas {
		pdf.CellFormat(col.largura, 7, col.titulo, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i := range produtos {
		p := &produtos[i]
		validade := ""
		if p.Validade != nil {
			validade = *p.Validade
		}
		cells := []string{
			p.ID.String(),
			p.Nome,
			p.Categoria,
			p.Preco.StringFixed(2),
			strconv.Itoa(p.Quantidade),
			validade,
			p.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for j, cell := range cells {
			pdf.CellFormat(colunas[j].largura, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
