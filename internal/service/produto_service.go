package service

import (
	"context"
	"errors"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"
	"github.com/Cxldas/Sistema-de-estoque/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoService defines the business logic contract for the catalog.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
	BaixoEstoque(ctx context.Context) ([]dto.ProdutoResponse, error)
}

type produtoService struct {
	repo   repository.ProdutoRepository
	limiar int
}

func NewProdutoService(repo repository.ProdutoRepository, limiarBaixoEstoque int) ProdutoService {
	return &produtoService{repo: repo, limiar: limiarBaixoEstoque}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Nome:       req.Nome,
		Categoria:  req.Categoria,
		Preco:      req.Preco,
		Quantidade: req.Quantidade,
		Validade:   req.Validade,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return produtosToResponse(produtos), nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrProdutoNaoEncontrado
	}

	campos := map[string]interface{}{"updated_at": time.Now().UTC()}
	if req.Nome != nil {
		campos["nome"] = *req.Nome
	}
	if req.Categoria != nil {
		campos["categoria"] = *req.Categoria
	}
	if req.Preco != nil {
		campos["preco"] = *req.Preco
	}
	if req.Quantidade != nil {
		// Administrative override, no ledger row. Prefer POST /api/movimentacoes.
		campos["quantidade"] = *req.Quantidade
	}
	if req.Validade != nil {
		campos["validade"] = *req.Validade
	}

	if err := s.repo.Updates(ctx, id, campos); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Excluir(ctx context.Context, id uuid.UUID) error {
	// Historical movimentacoes keep their denormalized snapshots; no cascade.
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProdutoNaoEncontrado
		}
		return err
	}
	return nil
}

func (s *produtoService) BaixoEstoque(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.ListAbaixoDe(ctx, s.limiar)
	if err != nil {
		return nil, err
	}
	return produtosToResponse(produtos), nil
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:         p.ID.String(),
		Nome:       p.Nome,
		Categoria:  p.Categoria,
		Preco:      p.Preco,
		Quantidade: p.Quantidade,
		Validade:   p.Validade,
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}
}

func produtosToResponse(produtos []model.Produto) []dto.ProdutoResponse {
	resp := make([]dto.ProdutoResponse, len(produtos))
	for i := range produtos {
		resp[i] = produtoToResponse(&produtos[i])
	}
	return resp
}
