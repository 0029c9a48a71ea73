package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome       string          `json:"nome"       validate:"required,min=1,max=120"`
	Categoria  string          `json:"categoria"  validate:"required"`
	Preco      decimal.Decimal `json:"preco"      validate:"min=0"`
	Quantidade int             `json:"quantidade" validate:"min=0"`
	Validade   *string         `json:"validade"`
}

// AtualizarProdutoRequest uses pointers so only supplied fields overwrite.
// Quantidade here is an administrative override: it bypasses the movement
// ledger and should normally go through POST /api/movimentacoes instead.
type AtualizarProdutoRequest struct {
	Nome       *string          `json:"nome"       validate:"omitempty,min=1,max=120"`
	Categoria  *string          `json:"categoria"`
	Preco      *decimal.Decimal `json:"preco"`
	Quantidade *int             `json:"quantidade" validate:"omitempty,min=0"`
	Validade   *string          `json:"validade"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Categoria  string          `json:"categoria"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade"`
	Validade   *string         `json:"validade"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
