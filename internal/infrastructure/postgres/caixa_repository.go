package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.CaixaRepository = (*CaixaRepo)(nil)

const caixaColunas = `id, cnpj_loja, usuario, status, data_abertura, valor_abertura,
	data_fechamento, valor_fechamento, total_dinheiro, total_credito, total_debito,
	total_pix, total_geral, total_vendas`

// CaixaRepo implementação do porto CaixaRepository sobre PostgreSQL (usável com pool ou tx).
type CaixaRepo struct {
	q Querier
}

// NewCaixaRepository constrói o adaptador da sessão de caixa. Passar pool ou tx (Querier).
func NewCaixaRepository(q Querier) *CaixaRepo {
	return &CaixaRepo{q: q}
}

func scanCaixa(row pgx.Row) (*entity.Caixa, error) {
	var c entity.Caixa
	err := row.Scan(
		&c.ID, &c.CNPJLoja, &c.Usuario, &c.Status, &c.DataAbertura, &c.ValorAbertura,
		&c.DataFechamento, &c.ValorFechamento, &c.TotalDinheiro, &c.TotalCredito,
		&c.TotalDebito, &c.TotalPix, &c.TotalGeral, &c.TotalVendas,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste o caixa aberto. O índice único parcial (um caixa aberto por
// loja) resolve corridas entre aberturas concorrentes.
func (r *CaixaRepo) Create(c *entity.Caixa) error {
	query := `
		INSERT INTO caixa (id, cnpj_loja, usuario, status, data_abertura, valor_abertura,
			valor_fechamento, total_dinheiro, total_credito, total_debito, total_pix,
			total_geral, total_vendas)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0, 0, 0, 0, 0)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CNPJLoja, c.Usuario, c.Status, c.DataAbertura, c.ValorAbertura,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCaixaJaAberto
		}
		return fmt.Errorf("insert caixa: %w", err)
	}
	return nil
}

// GetAberto devolve o caixa aberto da loja (nil se nenhum).
func (r *CaixaRepo) GetAberto(cnpjLoja string) (*entity.Caixa, error) {
	query := `SELECT ` + caixaColunas + ` FROM caixa WHERE cnpj_loja = $1 AND status = 'aberto'`
	c, err := scanCaixa(r.q.QueryRow(context.Background(), query, cnpjLoja))
	if err != nil {
		return nil, fmt.Errorf("get caixa aberto: %w", err)
	}
	return c, nil
}

// Fechar grava status fechado, carimbo e totais apurados.
func (r *CaixaRepo) Fechar(c *entity.Caixa) error {
	query := `
		UPDATE caixa
		SET status = $2, data_fechamento = $3, valor_fechamento = $4,
			total_dinheiro = $5, total_credito = $6, total_debito = $7, total_pix = $8,
			total_geral = $9, total_vendas = $10
		WHERE id = $1 AND status = 'aberto'`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, c.Status, c.DataFechamento, c.ValorFechamento,
		c.TotalDinheiro, c.TotalCredito, c.TotalDebito, c.TotalPix,
		c.TotalGeral, c.TotalVendas,
	)
	if err != nil {
		return fmt.Errorf("fechar caixa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNenhumCaixaAberto
	}
	return nil
}

// GetByID busca a sessão de caixa da loja por ID.
func (r *CaixaRepo) GetByID(id, cnpjLoja string) (*entity.Caixa, error) {
	query := `SELECT ` + caixaColunas + ` FROM caixa WHERE id = $1 AND cnpj_loja = $2`
	c, err := scanCaixa(r.q.QueryRow(context.Background(), query, id, cnpjLoja))
	if err != nil {
		return nil, fmt.Errorf("get caixa: %w", err)
	}
	return c, nil
}
