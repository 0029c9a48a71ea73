package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarMovimentacaoRequest: Tipo is deliberately not constrained by a
// validator tag: an unknown direction must produce the stable 400 response
// from the service layer, not a generic 422.
type RegistrarMovimentacaoRequest struct {
	ProdutoID  string  `json:"produto_id" validate:"required"`
	Tipo       string  `json:"tipo"       validate:"required"`
	Quantidade int     `json:"quantidade" validate:"required,gt=0"`
	Observacao *string `json:"observacao"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentacaoResponse struct {
	ID          string    `json:"id"`
	ProdutoID   string    `json:"produto_id"`
	ProdutoNome string    `json:"produto_nome"`
	Tipo        string    `json:"tipo"`
	Quantidade  int       `json:"quantidade"`
	UsuarioID   string    `json:"usuario_id"`
	UsuarioNome string    `json:"usuario_nome"`
	Observacao  *string   `json:"observacao"`
	Data        time.Time `json:"data"`
}
