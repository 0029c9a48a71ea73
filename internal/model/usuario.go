package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoUsuario is the closed set of roles. Stored and serialized as its
// string value.
type TipoUsuario string

const (
	TipoAdmin       TipoUsuario = "admin"
	TipoFuncionario TipoUsuario = "funcionario"
)

// Valido reports whether t is one of the known roles.
func (t TipoUsuario) Valido() bool {
	return t == TipoAdmin || t == TipoFuncionario
}

// Usuario stores system users with role-based access.
// SenhaHash never leaves the persistence layer; response DTOs omit it.
type Usuario struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string      `gorm:"not null"`
	Email     string      `gorm:"uniqueIndex;not null"`
	SenhaHash string      `gorm:"not null"`
	Tipo      TipoUsuario `gorm:"type:varchar(20);not null"`
	// Reset fields are set by forgot-password and cleared atomically with the
	// password write on reset.
	ResetToken       *string `gorm:"index"`
	ResetTokenExpira *time.Time
	CreatedAt        time.Time
}

// TableName overrides GORM's default pluralization (usuarios, not usuarioes).
func (Usuario) TableName() string { return "usuarios" }
