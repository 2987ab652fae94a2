package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

var _ repository.NFCeRepository = (*NFCeRepo)(nil)

const nfceColunas = `id, id_venda, id_loja, ambiente, status, valor_total,
	COALESCE(chave_acesso, ''), COALESCE(url_consulta, ''), COALESCE(protocolo, ''),
	COALESCE(motivo_rejeicao, ''), COALESCE(motivo_cancelamento, ''),
	data_solicitacao, data_emissao, data_cancelamento_solicitado`

// NFCeRepo implementação do porto NFCeRepository sobre PostgreSQL (usável com pool ou tx).
type NFCeRepo struct {
	q Querier
}

// NewNFCeRepository constrói o adaptador do registro de NFC-e. Passar pool ou tx (Querier).
func NewNFCeRepository(q Querier) *NFCeRepo {
	return &NFCeRepo{q: q}
}

func scanNFCe(row pgx.Row) (*entity.NFCe, error) {
	var n entity.NFCe
	err := row.Scan(
		&n.ID, &n.IDVenda, &n.IDLoja, &n.Ambiente, &n.Status, &n.ValorTotal,
		&n.ChaveAcesso, &n.URLConsulta, &n.Protocolo, &n.MotivoRejeicao,
		&n.MotivoCancelamento, &n.DataSolicitacao, &n.DataEmissao, &n.DataCancelamentoSolicitado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// Create persiste cabeçalho e itens congelados na mesma transação do caller.
func (r *NFCeRepo) Create(n *entity.NFCe, itens []*entity.NFCeItem) error {
	query := `
		INSERT INTO nfce (id, id_venda, id_loja, ambiente, status, valor_total, data_solicitacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.IDVenda, n.IDLoja, n.Ambiente, n.Status, n.ValorTotal, n.DataSolicitacao,
	)
	if err != nil {
		return fmt.Errorf("insert nfce: %w", err)
	}

	itemQuery := `
		INSERT INTO nfce_itens (id, id_nfce, id_produto, nome_produto, quantidade,
			valor_unitario, valor_total, ncm, cfop, unidade_medida)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, it := range itens {
		_, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.IDNFCe, it.IDProduto, it.NomeProduto, it.Quantidade,
			it.ValorUnitario, it.ValorTotal, it.NCM, it.CFOP, it.UnidadeMedida,
		)
		if err != nil {
			return fmt.Errorf("insert nfce item: %w", err)
		}
	}
	return nil
}

// GetByVenda devolve o documento da venda (nil se nenhum).
func (r *NFCeRepo) GetByVenda(idVenda string) (*entity.NFCe, error) {
	query := `SELECT ` + nfceColunas + ` FROM nfce WHERE id_venda = $1`
	n, err := scanNFCe(r.q.QueryRow(context.Background(), query, idVenda))
	if err != nil {
		return nil, fmt.Errorf("get nfce: %w", err)
	}
	return n, nil
}

// ListItens lista os itens congelados do documento.
func (r *NFCeRepo) ListItens(idNFCe string) ([]*entity.NFCeItem, error) {
	query := `
		SELECT id, id_nfce, id_produto, nome_produto, quantidade, valor_unitario,
			valor_total, ncm, cfop, unidade_medida
		FROM nfce_itens WHERE id_nfce = $1`
	rows, err := r.q.Query(context.Background(), query, idNFCe)
	if err != nil {
		return nil, fmt.Errorf("listar itens nfce: %w", err)
	}
	defer rows.Close()

	var out []*entity.NFCeItem
	for rows.Next() {
		var it entity.NFCeItem
		if err := rows.Scan(
			&it.ID, &it.IDNFCe, &it.IDProduto, &it.NomeProduto, &it.Quantidade,
			&it.ValorUnitario, &it.ValorTotal, &it.NCM, &it.CFOP, &it.UnidadeMedida,
		); err != nil {
			return nil, fmt.Errorf("scan item nfce: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListPendentes lista documentos em PENDENTE_GERACAO na ordem de solicitação.
func (r *NFCeRepo) ListPendentes(limite int) ([]*entity.NFCe, error) {
	query := `SELECT ` + nfceColunas + `
		FROM nfce WHERE status = 'PENDENTE_GERACAO' ORDER BY data_solicitacao LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limite)
	if err != nil {
		return nil, fmt.Errorf("listar nfce pendentes: %w", err)
	}
	defer rows.Close()

	var out []*entity.NFCe
	for rows.Next() {
		var n entity.NFCe
		if err := rows.Scan(
			&n.ID, &n.IDVenda, &n.IDLoja, &n.Ambiente, &n.Status, &n.ValorTotal,
			&n.ChaveAcesso, &n.URLConsulta, &n.Protocolo, &n.MotivoRejeicao,
			&n.MotivoCancelamento, &n.DataSolicitacao, &n.DataEmissao, &n.DataCancelamentoSolicitado,
		); err != nil {
			return nil, fmt.Errorf("scan nfce: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

// MarcarAutorizada grava chave, URL de consulta e protocolo da autorização.
// O guard de status torna a transição idempotente: só autoriza quem ainda
// está em PENDENTE_GERACAO.
func (r *NFCeRepo) MarcarAutorizada(id, chaveAcesso, urlConsulta, protocolo string, quando time.Time) error {
	query := `
		UPDATE nfce
		SET status = 'AUTORIZADA', chave_acesso = $2, url_consulta = $3, protocolo = $4, data_emissao = $5
		WHERE id = $1 AND status = 'PENDENTE_GERACAO'`
	_, err := r.q.Exec(context.Background(), query, id, chaveAcesso, urlConsulta, protocolo, quando)
	if err != nil {
		return fmt.Errorf("marcar nfce autorizada: %w", err)
	}
	return nil
}

// MarcarRejeitada grava o motivo da rejeição.
func (r *NFCeRepo) MarcarRejeitada(id, motivo string) error {
	query := `UPDATE nfce SET status = 'REJEITADA', motivo_rejeicao = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, motivo)
	if err != nil {
		return fmt.Errorf("marcar nfce rejeitada: %w", err)
	}
	return nil
}

// SolicitarCancelamento marca CANCELAMENTO_PENDENTE com o motivo e o carimbo.
func (r *NFCeRepo) SolicitarCancelamento(id, motivo string, quando time.Time) error {
	query := `
		UPDATE nfce
		SET status = 'CANCELAMENTO_PENDENTE', motivo_cancelamento = $2, data_cancelamento_solicitado = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, motivo, quando)
	if err != nil {
		return fmt.Errorf("solicitar cancelamento nfce: %w", err)
	}
	return nil
}

// MarcarCancelada avança para CANCELADA (retorno do emissor).
func (r *NFCeRepo) MarcarCancelada(id string) error {
	query := `UPDATE nfce SET status = 'CANCELADA' WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("marcar nfce cancelada: %w", err)
	}
	return nil
}
