package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement directions.
const (
	MovEntrada = "entrada"
	MovSaida   = "saida"
)

// Movimentacao registra cada entrada ou saída de estoque de um produto.
// Rows are append-only: never updated or deleted. ProdutoNome and
// UsuarioNome are snapshots taken at write time so the history stays
// readable after the product or user is renamed or removed.
type Movimentacao struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProdutoNome string    `gorm:"not null"`
	Tipo        string    `gorm:"not null"` // "entrada" | "saida"
	Quantidade  int       `gorm:"not null"` // always positive; Tipo carries the direction
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null"`
	UsuarioNome string    `gorm:"not null"`
	Observacao  *string
	Data        time.Time `gorm:"index;not null"`
}

// TableName overrides GORM's default pluralization (movimentacaos → movimentacoes).
func (Movimentacao) TableName() string { return "movimentacoes" }
