package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.RelatorioRepository = (*RelatorioRepo)(nil)

// RelatorioRepo consultas de leitura dos relatórios sobre PostgreSQL.
type RelatorioRepo struct {
	q Querier
}

// NewRelatorioRepository constrói o adaptador de relatórios. Passar pool ou tx (Querier).
func NewRelatorioRepository(q Querier) *RelatorioRepo {
	return &RelatorioRepo{q: q}
}

// VendasPorPeriodo lista as vendas da loja no intervalo, mais recentes primeiro.
func (r *RelatorioRepo) VendasPorPeriodo(cnpjLoja string, inicio, fim time.Time) ([]repository.VendaPeriodo, error) {
	query := `
		SELECT id, data_hora_venda, valor_total_venda, status, usuario_vendedor
		FROM vendas
		WHERE cnpj_loja = $1 AND data_hora_venda BETWEEN $2 AND $3
		ORDER BY data_hora_venda DESC`
	rows, err := r.q.Query(context.Background(), query, cnpjLoja, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("vendas por periodo: %w", err)
	}
	defer rows.Close()

	var out []repository.VendaPeriodo
	for rows.Next() {
		var l repository.VendaPeriodo
		if err := rows.Scan(&l.ID, &l.DataHoraVenda, &l.ValorTotal, &l.Status, &l.Vendedor); err != nil {
			return nil, fmt.Errorf("scan venda periodo: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ResumoVendedores agrega as vendas CONCLUIDAs por vendedor no intervalo.
func (r *RelatorioRepo) ResumoVendedores(cnpjLoja string, inicio, fim time.Time) ([]repository.ResumoVendedor, error) {
	query := `
		SELECT usuario_vendedor, COUNT(*), COALESCE(SUM(valor_total_venda), 0)
		FROM vendas
		WHERE cnpj_loja = $1 AND status = 'CONCLUIDA' AND data_hora_venda BETWEEN $2 AND $3
		GROUP BY usuario_vendedor
		ORDER BY SUM(valor_total_venda) DESC`
	rows, err := r.q.Query(context.Background(), query, cnpjLoja, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("resumo vendedores: %w", err)
	}
	defer rows.Close()

	var out []repository.ResumoVendedor
	for rows.Next() {
		var l repository.ResumoVendedor
		if err := rows.Scan(&l.Vendedor, &l.TotalVendas, &l.ValorTotal); err != nil {
			return nil, fmt.Errorf("scan resumo vendedor: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
