package repository

import (
	"context"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository defines the data access contract for users.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByResetToken(ctx context.Context, token string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expira time.Time) error
	// RedefinirSenha writes the new hash and clears the reset token and its
	// expiry in a single UPDATE.
	RedefinirSenha(ctx context.Context, id uuid.UUID, senhaHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	// Exact match, as stored. Duplicate detection is case-sensitive.
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByResetToken(ctx context.Context, token string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, expira time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expira": expira,
		}).Error
}

func (r *usuarioRepo) RedefinirSenha(ctx context.Context, id uuid.UUID, senhaHash string) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"senha_hash":         senhaHash,
			"reset_token":        nil,
			"reset_token_expira": nil,
		}).Error
}

func (r *usuarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Usuario{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
