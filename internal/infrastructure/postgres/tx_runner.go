package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/pdv-pro/internal/application/caixa"
	"github.com/tu-usuario/pdv-pro/internal/application/venda"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ venda.TxRunner = (*TxRunner)(nil)
var _ caixa.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre uma transação, executa fn com os repositórios da venda atados à tx
// e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	produtoRepo repository.ProdutoRepository,
	vendaRepo repository.VendaRepository,
	itemRepo repository.ItemVendaRepository,
	pagamentoRepo repository.PagamentoRepository,
	nfceRepo repository.NFCeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProdutoRepository(tx),
		NewVendaRepository(tx),
		NewItemVendaRepository(tx),
		NewPagamentoRepository(tx),
		NewNFCeRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCaixa abre uma transação com os repositórios do fechamento de caixa.
func (r *TxRunner) RunCaixa(ctx context.Context, fn func(
	caixaRepo repository.CaixaRepository,
	pagamentoRepo repository.PagamentoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCaixaRepository(tx), NewPagamentoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
