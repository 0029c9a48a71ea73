package service

import (
	"context"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"
	"github.com/Cxldas/Sistema-de-estoque/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimentacaoService owns the stock ledger: every quantity change goes
// through Registrar, which couples the conditional stock write and the
// ledger insert in one transaction.
type MovimentacaoService interface {
	Registrar(ctx context.Context, usuario *model.Usuario, req dto.RegistrarMovimentacaoRequest) (*dto.MovimentacaoResponse, error)
	Listar(ctx context.Context) ([]dto.MovimentacaoResponse, error)
	Historico(ctx context.Context, produtoID uuid.UUID) ([]dto.MovimentacaoResponse, error)
}

type movimentacaoService struct {
	produtos repository.ProdutoRepository
	movs     repository.MovimentacaoRepository
}

func NewMovimentacaoService(produtos repository.ProdutoRepository, movs repository.MovimentacaoRepository) MovimentacaoService {
	return &movimentacaoService{produtos: produtos, movs: movs}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *movimentacaoService) Registrar(ctx context.Context, usuario *model.Usuario, req dto.RegistrarMovimentacaoRequest) (*dto.MovimentacaoResponse, error) {
	if req.Tipo != model.MovEntrada && req.Tipo != model.MovSaida {
		return nil, ErrTipoInvalido
	}
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}

	var mov model.Movimentacao
	txErr := runTx(ctx, s.produtos.DB(), func(tx *gorm.DB) error {
		produto, err := s.produtos.FindByIDTx(tx, produtoID)
		if err != nil {
			return ErrProdutoNaoEncontrado
		}

		switch req.Tipo {
		case model.MovSaida:
			rows, err := s.produtos.DebitarEstoqueTx(tx, produtoID, req.Quantidade)
			if err != nil {
				return err
			}
			if rows == 0 {
				// Product exists (fetched above in this tx), so the guard
				// rejected the debit for lack of stock.
				return ErrEstoqueInsuficiente
			}
		case model.MovEntrada:
			if err := s.produtos.CreditarEstoqueTx(tx, produtoID, req.Quantidade); err != nil {
				return err
			}
		}

		mov = model.Movimentacao{
			ProdutoID:   produtoID,
			ProdutoNome: produto.Nome,
			Tipo:        req.Tipo,
			Quantidade:  req.Quantidade,
			UsuarioID:   usuario.ID,
			UsuarioNome: usuario.Nome,
			Observacao:  req.Observacao,
			Data:        time.Now().UTC(),
		}
		// Same tx as the stock write: both land or neither does.
		return s.movs.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movimentacaoToResponse(&mov)
	return &resp, nil
}

func (s *movimentacaoService) Listar(ctx context.Context) ([]dto.MovimentacaoResponse, error) {
	movs, err := s.movs.List(ctx)
	if err != nil {
		return nil, err
	}
	return movimentacoesToResponse(movs), nil
}

func (s *movimentacaoService) Historico(ctx context.Context, produtoID uuid.UUID) ([]dto.MovimentacaoResponse, error) {
	movs, err := s.movs.ListByProduto(ctx, produtoID)
	if err != nil {
		return nil, err
	}
	return movimentacoesToResponse(movs), nil
}

func movimentacaoToResponse(m *model.Movimentacao) dto.MovimentacaoResponse {
	return dto.MovimentacaoResponse{
		ID:          m.ID.String(),
		ProdutoID:   m.ProdutoID.String(),
		ProdutoNome: m.ProdutoNome,
		Tipo:        m.Tipo,
		Quantidade:  m.Quantidade,
		UsuarioID:   m.UsuarioID.String(),
		UsuarioNome: m.UsuarioNome,
		Observacao:  m.Observacao,
		Data:        m.Data.UTC(),
	}
}

func movimentacoesToResponse(movs []model.Movimentacao) []dto.MovimentacaoResponse {
	resp := make([]dto.MovimentacaoResponse, len(movs))
	for i := range movs {
		resp[i] = movimentacaoToResponse(&movs[i])
	}
	return resp
}
