package service

import (
	"context"
	"errors"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/config"
	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"
	"github.com/Cxldas/Sistema-de-estoque/internal/repository"
	"github.com/Cxldas/Sistema-de-estoque/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Registrar(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	EsqueciSenha(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error)
	RedefinirSenha(ctx context.Context, token, novaSenha string) error
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ExcluirUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo       repository.UsuarioRepository
	cfg        *config.Config
	dispatcher *worker.Dispatcher // nil = email delivery disabled
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config, dispatcher *worker.Dispatcher) AuthService {
	return &authService{repo: repo, cfg: cfg, dispatcher: dispatcher}
}

func (s *authService) Registrar(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	tipo := model.TipoUsuario(req.Tipo)
	if req.Tipo == "" {
		tipo = model.TipoFuncionario
	}
	if !tipo.Valido() {
		return nil, ErrTipoUsuarioInvalido
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailJaCadastrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		Tipo:      tipo,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Unique index on email closes the check-then-create race.
		return nil, ErrEmailJaCadastrado
	}

	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error whether the email is unknown or the password is wrong.
		return nil, ErrCredenciaisInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        usuarioToResponse(user),
	}, nil
}

func (s *authService) EsqueciSenha(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Report success either way so the endpoint cannot be used to
		// enumerate registered emails.
		return &dto.ForgotPasswordResponse{
			Message: "Se o email existir, você receberá instruções para resetar a senha",
		}, nil
	}

	token := uuid.NewString()
	expira := time.Now().UTC().Add(time.Duration(s.cfg.ResetTokenMinutes) * time.Minute)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expira); err != nil {
		return nil, err
	}

	// Best-effort email delivery; the token is still returned in the body
	// for compatibility with the upstream API.
	if s.dispatcher != nil {
		payload := worker.EmailJobPayload{
			Para:    user.Email,
			Assunto: "Recuperação de senha",
			Corpo:   "Use o token a seguir para redefinir sua senha (válido por 1 hora): " + token,
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Warn().Err(err).Msg("falha ao enfileirar email de recuperação")
		}
	}

	return &dto.ForgotPasswordResponse{
		Message:    "Token de recuperação gerado",
		ResetToken: token,
	}, nil
}

func (s *authService) RedefinirSenha(ctx context.Context, token, novaSenha string) error {
	user, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		return ErrTokenInvalido
	}
	if user.ResetTokenExpira == nil || time.Now().UTC().After(*user.ResetTokenExpira) {
		return ErrTokenExpirado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.repo.RedefinirSenha(ctx, user.ID, string(hash))
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ExcluirUsuario(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNaoEncontrado
		}
		return err
	}
	return nil
}

// generateToken signs an HS256 access token. The payload carries only the
// subject id; role and name are re-read from the store on every request, so
// changes take effect immediately.
func (s *authService) generateToken(user *model.Usuario) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID.String(),
		Nome:      u.Nome,
		Email:     u.Email,
		Tipo:      string(u.Tipo),
		CreatedAt: u.CreatedAt.UTC(),
	}
}
