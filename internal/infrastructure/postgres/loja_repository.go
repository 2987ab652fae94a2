package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.LojaRepository = (*LojaRepo)(nil)

const lojaColunas = `id, cnpj, nome_fantasia, razao_social, COALESCE(endereco, ''),
	COALESCE(cidade, ''), COALESCE(uf, ''), COALESCE(inscricao_estadual, ''),
	ambiente_nfce, criado_em`

// LojaRepo implementação do porto LojaRepository sobre PostgreSQL (usável com pool ou tx).
type LojaRepo struct {
	q Querier
}

// NewLojaRepository constrói o adaptador da loja. Passar pool ou tx (Querier).
func NewLojaRepository(q Querier) *LojaRepo {
	return &LojaRepo{q: q}
}

func scanLoja(row pgx.Row) (*entity.Loja, error) {
	var l entity.Loja
	err := row.Scan(
		&l.ID, &l.CNPJ, &l.NomeFantasia, &l.RazaoSocial, &l.Endereco,
		&l.Cidade, &l.UF, &l.InscricaoEstadual, &l.AmbienteNFCe, &l.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// GetByCNPJ busca a loja pelo CNPJ (só dígitos).
func (r *LojaRepo) GetByCNPJ(cnpj string) (*entity.Loja, error) {
	query := `SELECT ` + lojaColunas + ` FROM lojas WHERE cnpj = $1`
	l, err := scanLoja(r.q.QueryRow(context.Background(), query, cnpj))
	if err != nil {
		return nil, fmt.Errorf("get loja: %w", err)
	}
	return l, nil
}

// GetByID busca a loja por ID.
func (r *LojaRepo) GetByID(id string) (*entity.Loja, error) {
	query := `SELECT ` + lojaColunas + ` FROM lojas WHERE id = $1`
	l, err := scanLoja(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get loja por id: %w", err)
	}
	return l, nil
}
