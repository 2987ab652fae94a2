package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.VendaRepository = (*VendaRepo)(nil)

const vendaColunas = `id, cnpj_loja, usuario_vendedor, valor_subtotal, valor_desconto,
	valor_total_venda, status, tipo, data_hora_venda, data_conclusao, data_cancelamento,
	COALESCE(usuario_cancelamento, '')`

// VendaRepo implementação do porto VendaRepository sobre PostgreSQL (usável com pool ou tx).
type VendaRepo struct {
	q Querier
}

// NewVendaRepository constrói o adaptador do agregado venda. Passar pool ou tx (Querier).
func NewVendaRepository(q Querier) *VendaRepo {
	return &VendaRepo{q: q}
}

func scanVenda(row pgx.Row) (*entity.Venda, error) {
	var v entity.Venda
	err := row.Scan(
		&v.ID, &v.CNPJLoja, &v.UsuarioVendedor, &v.ValorSubtotal, &v.ValorDesconto,
		&v.ValorTotal, &v.Status, &v.Tipo, &v.DataHoraVenda, &v.DataConclusao,
		&v.DataCancelamento, &v.UsuarioCancelamento,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// Create persiste o cabeçalho da venda.
func (r *VendaRepo) Create(v *entity.Venda) error {
	query := `
		INSERT INTO vendas (id, cnpj_loja, usuario_vendedor, valor_subtotal, valor_desconto,
			valor_total_venda, status, tipo, data_hora_venda, data_conclusao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.CNPJLoja, v.UsuarioVendedor, v.ValorSubtotal, v.ValorDesconto,
		v.ValorTotal, v.Status, v.Tipo, v.DataHoraVenda, v.DataConclusao,
	)
	if err != nil {
		// Índice parcial uq_venda_aberta_por_vendedor: uma EM_ABERTO por vendedor na loja.
		if isUniqueViolation(err) {
			return domain.ErrVendaEmAberto
		}
		return fmt.Errorf("insert venda: %w", err)
	}
	return nil
}

// GetByID busca a venda por ID.
func (r *VendaRepo) GetByID(id string) (*entity.Venda, error) {
	query := `SELECT ` + vendaColunas + ` FROM vendas WHERE id = $1`
	v, err := scanVenda(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get venda: %w", err)
	}
	return v, nil
}

// GetForUpdate busca a venda da loja bloqueando a linha.
func (r *VendaRepo) GetForUpdate(id, cnpjLoja string) (*entity.Venda, error) {
	query := `SELECT ` + vendaColunas + ` FROM vendas WHERE id = $1 AND cnpj_loja = $2 FOR UPDATE`
	v, err := scanVenda(r.q.QueryRow(context.Background(), query, id, cnpjLoja))
	if err != nil {
		return nil, fmt.Errorf("get venda for update: %w", err)
	}
	return v, nil
}

// GetEmAberto devolve a venda EM_ABERTO corrente do vendedor (nil se nenhuma).
func (r *VendaRepo) GetEmAberto(cnpjLoja, vendedor string) (*entity.Venda, error) {
	query := `SELECT ` + vendaColunas + `
		FROM vendas WHERE cnpj_loja = $1 AND usuario_vendedor = $2 AND status = 'EM_ABERTO'`
	v, err := scanVenda(r.q.QueryRow(context.Background(), query, cnpjLoja, vendedor))
	if err != nil {
		return nil, fmt.Errorf("get venda em aberto: %w", err)
	}
	return v, nil
}

// SomarTotais soma delta em valor_subtotal e valor_total_venda.
func (r *VendaRepo) SomarTotais(id string, delta decimal.Decimal) error {
	query := `
		UPDATE vendas
		SET valor_subtotal = valor_subtotal + $2, valor_total_venda = valor_total_venda + $2
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("somar totais venda: %w", err)
	}
	return nil
}

// AplicarDesconto grava o desconto resolvido e o novo total.
func (r *VendaRepo) AplicarDesconto(id string, desconto, total decimal.Decimal) error {
	query := `UPDATE vendas SET valor_desconto = $2, valor_total_venda = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, desconto, total)
	if err != nil {
		return fmt.Errorf("aplicar desconto: %w", err)
	}
	return nil
}

// ZerarDescontoETotal força desconto e total a zero (venda esvaziada).
func (r *VendaRepo) ZerarDescontoETotal(id string) error {
	query := `UPDATE vendas SET valor_desconto = 0, valor_total_venda = 0, valor_subtotal = 0 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("zerar totais venda: %w", err)
	}
	return nil
}

// Concluir grava status CONCLUIDA com totais e vendedor recongelados.
func (r *VendaRepo) Concluir(id, vendedor string, subtotal, desconto, total decimal.Decimal, quando time.Time) error {
	query := `
		UPDATE vendas
		SET status = 'CONCLUIDA', usuario_vendedor = $2, valor_subtotal = $3,
			valor_desconto = $4, valor_total_venda = $5, data_conclusao = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, vendedor, subtotal, desconto, total, quando)
	if err != nil {
		return fmt.Errorf("concluir venda: %w", err)
	}
	return nil
}

// Cancelar grava status CANCELADA com carimbo e autor (NULL quando vazio).
func (r *VendaRepo) Cancelar(id, usuario string, quando time.Time) error {
	query := `
		UPDATE vendas
		SET status = 'CANCELADA', data_cancelamento = $2, usuario_cancelamento = NULLIF($3, '')
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quando, usuario)
	if err != nil {
		return fmt.Errorf("cancelar venda: %w", err)
	}
	return nil
}

// ListarUltimas lista as vendas CONCLUIDA/CANCELADA mais recentes da loja com
// as formas de pagamento agregadas em texto.
func (r *VendaRepo) ListarUltimas(cnpjLoja string, limite int) ([]repository.VendaResumo, error) {
	query := `
		SELECT v.id, v.data_hora_venda, v.valor_total_venda, v.usuario_vendedor, v.status,
			COALESCE(string_agg(DISTINCT p.forma_pagamento, ', ' ORDER BY p.forma_pagamento), '')
		FROM vendas v
		LEFT JOIN pagamentos_venda p ON p.id_venda = v.id
		WHERE v.cnpj_loja = $1 AND v.status IN ('CONCLUIDA', 'CANCELADA')
		GROUP BY v.id
		ORDER BY v.data_hora_venda DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, cnpjLoja, limite)
	if err != nil {
		return nil, fmt.Errorf("listar ultimas vendas: %w", err)
	}
	defer rows.Close()

	var out []repository.VendaResumo
	for rows.Next() {
		var vr repository.VendaResumo
		if err := rows.Scan(&vr.ID, &vr.DataHoraVenda, &vr.ValorTotal, &vr.Vendedor, &vr.Status, &vr.Pagamentos); err != nil {
			return nil, fmt.Errorf("scan resumo venda: %w", err)
		}
		out = append(out, vr)
	}
	return out, rows.Err()
}
