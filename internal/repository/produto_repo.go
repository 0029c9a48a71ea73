package repository

import (
	"context"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products, including
// the transactional stock operations used by the movement ledger and the
// read-only aggregates backing the dashboard.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
	// Updates overwrites only the given columns; callers include updated_at.
	Updates(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAbaixoDe(ctx context.Context, limiar int) ([]model.Produto, error)

	// Aggregates for relatorios
	Count(ctx context.Context) (int64, error)
	CountAbaixoDe(ctx context.Context, limiar int) (int64, error)
	ValorTotal(ctx context.Context) (decimal.Decimal, error)
	CountPorCategoria(ctx context.Context) ([]dto.CategoriaCount, error)

	// Used inside transactions; callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	// DebitarEstoqueTx decrements quantidade only when enough stock remains;
	// returns the number of rows updated (0 = guard rejected the debit).
	DebitarEstoqueTx(tx *gorm.DB, id uuid.UUID, qtd int) (int64, error)
	CreditarEstoqueTx(tx *gorm.DB, id uuid.UUID, qtd int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Updates(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Updates(campos).Error
}

func (r *produtoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Produto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *produtoRepo) ListAbaixoDe(ctx context.Context, limiar int) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Where("quantidade < ?", limiar).Order("quantidade ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).Count(&total).Error
	return total, err
}

func (r *produtoRepo) CountAbaixoDe(ctx context.Context, limiar int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).Where("quantidade < ?", limiar).Count(&total).Error
	return total, err
}

func (r *produtoRepo) ValorTotal(ctx context.Context) (decimal.Decimal, error) {
	var valor decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Produto{}).
		Select("COALESCE(SUM(preco * quantidade), 0)").
		Scan(&valor).Error
	return valor, err
}

func (r *produtoRepo) CountPorCategoria(ctx context.Context) ([]dto.CategoriaCount, error) {
	var grupos []dto.CategoriaCount
	err := r.db.WithContext(ctx).Model(&model.Produto{}).
		Select("categoria, COUNT(*) AS count").
		Group("categoria").
		Order("categoria ASC").
		Scan(&grupos).Error
	return grupos, err
}

func (r *produtoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) DebitarEstoqueTx(tx *gorm.DB, id uuid.UUID, qtd int) (int64, error) {
	// Conditional update: the WHERE guard makes the check-and-write a single
	// statement, so two concurrent saidas cannot both pass against a stale
	// quantidade.
	res := tx.Model(&model.Produto{}).
		Where("id = ? AND quantidade >= ?", id, qtd).
		Updates(map[string]interface{}{
			"quantidade": gorm.Expr("quantidade - ?", qtd),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *produtoRepo) CreditarEstoqueTx(tx *gorm.DB, id uuid.UUID, qtd int) error {
	return tx.Model(&model.Produto{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantidade": gorm.Expr("quantidade + ?", qtd),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
