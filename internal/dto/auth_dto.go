package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegisterRequest serves both self-registration and admin-initiated creation.
// Tipo defaults to "funcionario" when omitted.
type RegisterRequest struct {
	Nome  string `json:"nome"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=4"`
	Tipo  string `json:"tipo"  validate:"omitempty,oneof=admin funcionario"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token     string `json:"token"      validate:"required"`
	NovaSenha string `json:"nova_senha" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Tipo      string    `json:"tipo"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        UsuarioResponse `json:"user"`
}

// ForgotPasswordResponse always carries a generic message; ResetToken is only
// populated when the email matched a user. Returning it in the body mirrors
// the upstream API and is unsuitable for production without email delivery
// replacing it.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
