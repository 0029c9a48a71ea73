package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog entry. Quantidade only changes through a
// Movimentacao; the PUT endpoint may override it as an administrative
// escape hatch, without a ledger entry.
type Produto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string          `gorm:"index;not null"`
	Categoria string          `gorm:"index;not null"`
	Preco     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// check constraint backs the application-level guard in saida movements
	Quantidade int     `gorm:"not null;default:0;check:quantidade >= 0"`
	Validade   *string // optional expiry date, free-form as received
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Produto) TableName() string { return "produtos" }
