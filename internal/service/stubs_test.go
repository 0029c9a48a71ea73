package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stubProdutoRepo is an in-memory ProdutoRepository. The mutex around the
// conditional debit mirrors the atomicity of the real single-statement UPDATE,
// which is what the concurrency tests exercise.
type stubProdutoRepo struct {
	mu       sync.Mutex
	produtos map[uuid.UUID]*model.Produto
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProdutoRepo) List(_ context.Context) ([]model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *stubProdutoRepo) Updates(_ context.Context, id uuid.UUID, campos map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, v := range campos {
		switch col {
		case "nome":
			p.Nome = v.(string)
		case "categoria":
			p.Categoria = v.(string)
		case "preco":
			p.Preco = v.(decimal.Decimal)
		case "quantidade":
			p.Quantidade = v.(int)
		case "validade":
			s := v.(string)
			p.Validade = &s
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *stubProdutoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.produtos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.produtos, id)
	return nil
}

func (r *stubProdutoRepo) ListAbaixoDe(_ context.Context, limiar int) ([]model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Quantidade < limiar {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantidade < out[j].Quantidade })
	return out, nil
}

func (r *stubProdutoRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.produtos)), nil
}

func (r *stubProdutoRepo) CountAbaixoDe(_ context.Context, limiar int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.produtos {
		if p.Quantidade < limiar {
			n++
		}
	}
	return n, nil
}

func (r *stubProdutoRepo) ValorTotal(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.produtos {
		total = total.Add(p.Preco.Mul(decimal.NewFromInt(int64(p.Quantidade))))
	}
	return total, nil
}

func (r *stubProdutoRepo) CountPorCategoria(_ context.Context) ([]dto.CategoriaCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, p := range r.produtos {
		counts[p.Categoria]++
	}
	out := make([]dto.CategoriaCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, dto.CategoriaCount{Categoria: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Categoria < out[j].Categoria })
	return out, nil
}

func (r *stubProdutoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProdutoRepo) DebitarEstoqueTx(_ *gorm.DB, id uuid.UUID, qtd int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok || p.Quantidade < qtd {
		return 0, nil
	}
	p.Quantidade -= qtd
	p.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *stubProdutoRepo) CreditarEstoqueTx(_ *gorm.DB, id uuid.UUID, qtd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantidade += qtd
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

// stubMovimentacaoRepo is an append-only in-memory ledger.
type stubMovimentacaoRepo struct {
	mu   sync.Mutex
	movs []model.Movimentacao
}

func newStubMovimentacaoRepo() *stubMovimentacaoRepo { return &stubMovimentacaoRepo{} }

func (r *stubMovimentacaoRepo) CreateTx(_ *gorm.DB, m *model.Movimentacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimentacaoRepo) sortedDesc() []model.Movimentacao {
	out := make([]model.Movimentacao, len(r.movs))
	copy(out, r.movs)
	sort.Slice(out, func(i, j int) bool { return out[i].Data.After(out[j].Data) })
	return out
}

func (r *stubMovimentacaoRepo) List(_ context.Context) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedDesc(), nil
}

func (r *stubMovimentacaoRepo) ListByProduto(_ context.Context, produtoID uuid.UUID) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Movimentacao
	for _, m := range r.sortedDesc() {
		if m.ProdutoID == produtoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimentacaoRepo) Recentes(_ context.Context, limit int) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sortedDesc()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMovimentacaoRepo) CountPorTipoDesde(_ context.Context, desde time.Time) ([]dto.TipoCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, m := range r.movs {
		if !m.Data.Before(desde) {
			counts[m.Tipo]++
		}
	}
	out := make([]dto.TipoCount, 0, len(counts))
	for tipo, n := range counts {
		out = append(out, dto.TipoCount{Tipo: tipo, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tipo < out[j].Tipo })
	return out, nil
}
