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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação do porto UsuarioRepository sobre PostgreSQL (usável com pool ou tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador de operadores. Passar pool ou tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// GetByUsuario busca o operador da loja pelo nome de usuário.
func (r *UsuarioRepo) GetByUsuario(cnpjLoja, usuario string) (*entity.Usuario, error) {
	query := `
		SELECT id, usuario, cnpj_loja, COALESCE(senha_hash, ''), perfil, criado_em
		FROM usuarios WHERE cnpj_loja = $1 AND usuario = $2`
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, cnpjLoja, usuario).Scan(
		&u.ID, &u.Usuario, &u.CNPJLoja, &u.SenhaHash, &u.Perfil, &u.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// Create persiste um operador. Usuário duplicado na loja retorna ErrUsuarioJaExiste.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, usuario, cnpj_loja, senha_hash, perfil, criado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Usuario, u.CNPJLoja, u.SenhaHash, u.Perfil, u.CriadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsuarioJaExiste
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// ListByLoja lista os operadores da loja em ordem alfabética.
func (r *UsuarioRepo) ListByLoja(cnpjLoja string) ([]*entity.Usuario, error) {
	query := `
		SELECT id, usuario, cnpj_loja, COALESCE(senha_hash, ''), perfil, criado_em
		FROM usuarios WHERE cnpj_loja = $1 ORDER BY usuario`
	rows, err := r.q.Query(context.Background(), query, cnpjLoja)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.Usuario, &u.CNPJLoja, &u.SenhaHash, &u.Perfil, &u.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
