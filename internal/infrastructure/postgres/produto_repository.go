package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

const produtoColunas = `id, id_loja, referencia_interna, codigo_barras_ean, nome,
	preco_venda, unidade_medida, estoque_atual, ativo, ncm, cfop, criado_em, atualizado_em`

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de produtos. Passar pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

func scanProduto(row pgx.Row) (*entity.Produto, error) {
	var p entity.Produto
	err := row.Scan(
		&p.ID, &p.IDLoja, &p.ReferenciaInterna, &p.CodigoBarrasEAN, &p.Nome,
		&p.PrecoVenda, &p.UnidadeMedida, &p.EstoqueAtual, &p.Ativo, &p.NCM, &p.CFOP,
		&p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID busca o produto por ID.
func (r *ProdutoRepo) GetByID(id string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColunas + ` FROM produtos WHERE id = $1`
	p, err := scanProduto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// GetForUpdate busca o produto ativo da loja bloqueando a linha.
func (r *ProdutoRepo) GetForUpdate(idLoja, id string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColunas + `
		FROM produtos WHERE id = $1 AND id_loja = $2 AND ativo FOR UPDATE`
	p, err := scanProduto(r.q.QueryRow(context.Background(), query, id, idLoja))
	if err != nil {
		return nil, fmt.Errorf("get produto for update: %w", err)
	}
	return p, nil
}

// GetForUpdateByCodigo resolve o produto por código de barras EAN ou
// referência interna, bloqueando a linha. EAN tem precedência.
func (r *ProdutoRepo) GetForUpdateByCodigo(idLoja, codigo string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColunas + `
		FROM produtos
		WHERE id_loja = $1 AND ativo AND (codigo_barras_ean = $2 OR referencia_interna = $2)
		ORDER BY (codigo_barras_ean = $2) DESC
		LIMIT 1
		FOR UPDATE`
	p, err := scanProduto(r.q.QueryRow(context.Background(), query, idLoja, codigo))
	if err != nil {
		return nil, fmt.Errorf("get produto por codigo: %w", err)
	}
	return p, nil
}

// AjustarEstoque soma delta em estoque_atual (negativo = baixa). O CHECK do
// schema impede saldo negativo mesmo se o caller pular a conferência.
func (r *ProdutoRepo) AjustarEstoque(id string, delta decimal.Decimal) error {
	query := `UPDATE produtos SET estoque_atual = estoque_atual + $2, atualizado_em = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrEstoqueInsuficiente
		}
		return fmt.Errorf("ajustar estoque: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProdutoNaoEncontrado
	}
	return nil
}

// Buscar lista produtos ativos da loja por nome ou referência (modal do PDV).
func (r *ProdutoRepo) Buscar(idLoja, termo string, limite int) ([]*entity.Produto, error) {
	query := `SELECT ` + produtoColunas + `
		FROM produtos
		WHERE id_loja = $1 AND ativo AND (nome ILIKE '%' || $2 || '%' OR referencia_interna ILIKE $2 || '%')
		ORDER BY nome
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, idLoja, termo, limite)
	if err != nil {
		return nil, fmt.Errorf("buscar produtos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Produto
	for rows.Next() {
		var p entity.Produto
		if err := rows.Scan(
			&p.ID, &p.IDLoja, &p.ReferenciaInterna, &p.CodigoBarrasEAN, &p.Nome,
			&p.PrecoVenda, &p.UnidadeMedida, &p.EstoqueAtual, &p.Ativo, &p.NCM, &p.CFOP,
			&p.CriadoEm, &p.AtualizadoEm,
		); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
