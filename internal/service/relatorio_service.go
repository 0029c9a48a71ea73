package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/infra"
	"github.com/Cxldas/Sistema-de-estoque/internal/repository"
)

const (
	recentesLimit = 10
	janelaStats   = 30 * 24 * time.Hour // trailing window, not calendar-aligned
)

// RelatorioService derives read-only summaries from ledger state. No caching:
// every call recomputes against the current store snapshot, tolerating
// concurrent writers.
type RelatorioService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportPDF(ctx context.Context, w io.Writer) error
}

type relatorioService struct {
	produtos repository.ProdutoRepository
	movs     repository.MovimentacaoRepository
	limiar   int
}

func NewRelatorioService(produtos repository.ProdutoRepository, movs repository.MovimentacaoRepository, limiarBaixoEstoque int) RelatorioService {
	return &relatorioService{produtos: produtos, movs: movs, limiar: limiarBaixoEstoque}
}

func (s *relatorioService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	total, err := s.produtos.Count(ctx)
	if err != nil {
		return nil, err
	}
	baixo, err := s.produtos.CountAbaixoDe(ctx, s.limiar)
	if err != nil {
		return nil, err
	}
	valor, err := s.produtos.ValorTotal(ctx)
	if err != nil {
		return nil, err
	}
	recentes, err := s.movs.Recentes(ctx, recentesLimit)
	if err != nil {
		return nil, err
	}
	categorias, err := s.produtos.CountPorCategoria(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.movs.CountPorTipoDesde(ctx, time.Now().UTC().Add(-janelaStats))
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalProducts:   total,
		LowStockCount:   baixo,
		TotalValue:      valor,
		RecentMovements: movimentacoesToResponse(recentes),
		Categories:      categorias,
		MovementStats:   stats,
	}, nil
}

// ExportCSV streams the full catalog. Column order is part of the public
// contract: ID, Nome, Categoria, Preço, Quantidade, Validade, Criado em.
func (s *relatorioService) ExportCSV(ctx context.Context, w io.Writer) error {
	produtos, err := s.produtos.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Nome", "Categoria", "Preço", "Quantidade", "Validade", "Criado em"}); err != nil {
		return err
	}
	for i := range produtos {
		p := &produtos[i]
		validade := ""
		if p.Validade != nil {
			validade = *p.Validade
		}
		row := []string{
			p.ID.String(),
			p.Nome,
			p.Categoria,
			p.Preco.String(),
			strconv.Itoa(p.Quantidade),
			validade,
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *relatorioService) ExportPDF(ctx context.Context, w io.Writer) error {
	produtos, err := s.produtos.List(ctx)
	if err != nil {
		return err
	}
	return infra.RelatorioEstoquePDF(produtos, w)
}
