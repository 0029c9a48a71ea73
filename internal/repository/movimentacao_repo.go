package repository

import (
	"context"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimentacaoRepository is append-and-read only: ledger rows are immutable,
// so the interface offers no update or delete.
type MovimentacaoRepository interface {
	// CreateTx inserts inside the same transaction as the stock write.
	CreateTx(tx *gorm.DB, m *model.Movimentacao) error
	List(ctx context.Context) ([]model.Movimentacao, error)
	ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.Movimentacao, error)
	Recentes(ctx context.Context, limit int) ([]model.Movimentacao, error)
	CountPorTipoDesde(ctx context.Context, desde time.Time) ([]dto.TipoCount, error)
}

type movimentacaoRepo struct{ db *gorm.DB }

func NewMovimentacaoRepository(db *gorm.DB) MovimentacaoRepository {
	return &movimentacaoRepo{db: db}
}

func (r *movimentacaoRepo) CreateTx(tx *gorm.DB, m *model.Movimentacao) error {
	return tx.Create(m).Error
}

func (r *movimentacaoRepo) List(ctx context.Context) ([]model.Movimentacao, error) {
	var movs []model.Movimentacao
	err := r.db.WithContext(ctx).Order("data DESC").Find(&movs).Error
	return movs, err
}

func (r *movimentacaoRepo) ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.Movimentacao, error) {
	var movs []model.Movimentacao
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).Order("data DESC").Find(&movs).Error
	return movs, err
}

func (r *movimentacaoRepo) Recentes(ctx context.Context, limit int) ([]model.Movimentacao, error) {
	var movs []model.Movimentacao
	err := r.db.WithContext(ctx).Order("data DESC").Limit(limit).Find(&movs).Error
	return movs, err
}

func (r *movimentacaoRepo) CountPorTipoDesde(ctx context.Context, desde time.Time) ([]dto.TipoCount, error) {
	var grupos []dto.TipoCount
	err := r.db.WithContext(ctx).Model(&model.Movimentacao{}).
		Select("tipo, COUNT(*) AS count").
		Where("data >= ?", desde).
		Group("tipo").
		Scan(&grupos).Error
	return grupos, err
}
