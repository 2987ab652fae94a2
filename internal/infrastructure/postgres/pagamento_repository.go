package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.PagamentoRepository = (*PagamentoRepo)(nil)

// PagamentoRepo implementação do porto PagamentoRepository sobre PostgreSQL (usável com pool ou tx).
type PagamentoRepo struct {
	q Querier
}

// NewPagamentoRepository constrói o adaptador de pagamentos. Passar pool ou tx (Querier).
func NewPagamentoRepository(q Querier) *PagamentoRepo {
	return &PagamentoRepo{q: q}
}

// Create persiste um pagamento da venda.
func (r *PagamentoRepo) Create(p *entity.Pagamento) error {
	query := `
		INSERT INTO pagamentos_venda (id, id_venda, forma_pagamento, meio_nfce, valor)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.IDVenda, string(p.Forma), p.MeioNFCe, p.Valor)
	if err != nil {
		return fmt.Errorf("insert pagamento: %w", err)
	}
	return nil
}

// ListByVenda lista os pagamentos da venda.
func (r *PagamentoRepo) ListByVenda(idVenda string) ([]*entity.Pagamento, error) {
	query := `SELECT id, id_venda, forma_pagamento, meio_nfce, valor FROM pagamentos_venda WHERE id_venda = $1`
	rows, err := r.q.Query(context.Background(), query, idVenda)
	if err != nil {
		return nil, fmt.Errorf("listar pagamentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pagamento
	for rows.Next() {
		var p entity.Pagamento
		var forma string
		if err := rows.Scan(&p.ID, &p.IDVenda, &forma, &p.MeioNFCe, &p.Valor); err != nil {
			return nil, fmt.Errorf("scan pagamento: %w", err)
		}
		p.Forma = entity.FormaPagamento(forma)
		out = append(out, &p)
	}
	return out, rows.Err()
}

// TotaisDesde recompõe os totais por forma de pagamento das vendas CONCLUIDAs
// da loja iniciadas desde o instante dado (abertura do caixa). O corte é por
// data_hora_venda: venda começada antes da abertura não entra na conferência,
// mesmo que concluída durante a sessão.
func (r *PagamentoRepo) TotaisDesde(cnpjLoja string, desde time.Time) (*repository.TotaisCaixa, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN p.forma_pagamento = 'DINHEIRO' THEN p.valor ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN p.forma_pagamento = 'CARTAO_CREDITO' THEN p.valor ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN p.forma_pagamento = 'CARTAO_DEBITO' THEN p.valor ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN p.forma_pagamento = 'PIX' THEN p.valor ELSE 0 END), 0),
			COALESCE(SUM(p.valor), 0),
			COUNT(DISTINCT v.id)
		FROM pagamentos_venda p
		JOIN vendas v ON v.id = p.id_venda
		WHERE v.cnpj_loja = $1 AND v.status = 'CONCLUIDA' AND v.data_hora_venda >= $2`
	var t repository.TotaisCaixa
	err := r.q.QueryRow(context.Background(), query, cnpjLoja, desde).Scan(
		&t.TotalDinheiro, &t.TotalCredito, &t.TotalDebito, &t.TotalPix, &t.TotalGeral, &t.TotalVendas,
	)
	if err != nil {
		return nil, fmt.Errorf("totais caixa: %w", err)
	}
	return &t, nil
}
