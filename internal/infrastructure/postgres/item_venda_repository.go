package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.ItemVendaRepository = (*ItemVendaRepo)(nil)

const itemColunas = `id, id_venda, id_produto, sequencial, quantidade, preco_unitario,
	valor_total_item, ncm, cfop, item_troca`

// ItemVendaRepo implementação do porto ItemVendaRepository sobre PostgreSQL (usável com pool ou tx).
type ItemVendaRepo struct {
	q Querier
}

// NewItemVendaRepository constrói o adaptador das linhas da venda. Passar pool ou tx (Querier).
func NewItemVendaRepository(q Querier) *ItemVendaRepo {
	return &ItemVendaRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.ItemVenda, error) {
	var it entity.ItemVenda
	err := row.Scan(
		&it.ID, &it.IDVenda, &it.IDProduto, &it.Sequencial, &it.Quantidade,
		&it.PrecoUnitario, &it.ValorTotal, &it.NCM, &it.CFOP, &it.ItemTroca,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// Create persiste uma linha da venda.
func (r *ItemVendaRepo) Create(item *entity.ItemVenda) error {
	query := `
		INSERT INTO itens_venda (id, id_venda, id_produto, sequencial, quantidade,
			preco_unitario, valor_total_item, ncm, cfop, item_troca)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.IDVenda, item.IDProduto, item.Sequencial, item.Quantidade,
		item.PrecoUnitario, item.ValorTotal, item.NCM, item.CFOP, item.ItemTroca,
	)
	if err != nil {
		return fmt.Errorf("insert item venda: %w", err)
	}
	return nil
}

// GetForUpdate busca o item da venda bloqueando a linha.
func (r *ItemVendaRepo) GetForUpdate(idItem, idVenda string) (*entity.ItemVenda, error) {
	query := `SELECT ` + itemColunas + ` FROM itens_venda WHERE id = $1 AND id_venda = $2 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, idItem, idVenda))
	if err != nil {
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// Delete remove a linha da venda.
func (r *ItemVendaRepo) Delete(idItem, idVenda string) error {
	query := `DELETE FROM itens_venda WHERE id = $1 AND id_venda = $2`
	_, err := r.q.Exec(context.Background(), query, idItem, idVenda)
	if err != nil {
		return fmt.Errorf("delete item venda: %w", err)
	}
	return nil
}

func (r *ItemVendaRepo) list(query, idVenda string) ([]*entity.ItemVenda, error) {
	rows, err := r.q.Query(context.Background(), query, idVenda)
	if err != nil {
		return nil, fmt.Errorf("listar itens venda: %w", err)
	}
	defer rows.Close()

	var out []*entity.ItemVenda
	for rows.Next() {
		var it entity.ItemVenda
		if err := rows.Scan(
			&it.ID, &it.IDVenda, &it.IDProduto, &it.Sequencial, &it.Quantidade,
			&it.PrecoUnitario, &it.ValorTotal, &it.NCM, &it.CFOP, &it.ItemTroca,
		); err != nil {
			return nil, fmt.Errorf("scan item venda: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListByVenda lista as linhas da venda em ordem de sequencial.
func (r *ItemVendaRepo) ListByVenda(idVenda string) ([]*entity.ItemVenda, error) {
	query := `SELECT ` + itemColunas + ` FROM itens_venda WHERE id_venda = $1 ORDER BY sequencial`
	return r.list(query, idVenda)
}

// ListByVendaForUpdate lista bloqueando as linhas (estorno de estoque).
func (r *ItemVendaRepo) ListByVendaForUpdate(idVenda string) ([]*entity.ItemVenda, error) {
	query := `SELECT ` + itemColunas + ` FROM itens_venda WHERE id_venda = $1 ORDER BY sequencial FOR UPDATE`
	return r.list(query, idVenda)
}

// MaxSequencial devolve o maior sequencial da venda (0 se vazia).
func (r *ItemVendaRepo) MaxSequencial(idVenda string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(sequencial), 0) FROM itens_venda WHERE id_venda = $1`
	if err := r.q.QueryRow(context.Background(), query, idVenda).Scan(&max); err != nil {
		return 0, fmt.Errorf("max sequencial: %w", err)
	}
	return max, nil
}

// SomaTotais soma valor_total_item das linhas da venda.
func (r *ItemVendaRepo) SomaTotais(idVenda string) (decimal.Decimal, error) {
	var soma decimal.Decimal
	query := `SELECT COALESCE(SUM(valor_total_item), 0) FROM itens_venda WHERE id_venda = $1`
	if err := r.q.QueryRow(context.Background(), query, idVenda).Scan(&soma); err != nil {
		return decimal.Zero, fmt.Errorf("soma totais itens: %w", err)
	}
	return soma, nil
}

// Count conta as linhas da venda.
func (r *ItemVendaRepo) Count(idVenda string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM itens_venda WHERE id_venda = $1`
	if err := r.q.QueryRow(context.Background(), query, idVenda).Scan(&n); err != nil {
		return 0, fmt.Errorf("count itens: %w", err)
	}
	return n, nil
}
