package repository

import (
	"time"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// NFCeRepository é o porto do registro de documentos fiscais.
// O core escreve PENDENTE_GERACAO e CANCELAMENTO_PENDENTE; os marcadores de
// autorização/rejeição/cancelamento são gravados a partir do retorno do
// emissor externo.
type NFCeRepository interface {
	// Create persiste cabeçalho e itens congelados em uma chamada (mesma tx).
	Create(n *entity.NFCe, itens []*entity.NFCeItem) error
	GetByVenda(idVenda string) (*entity.NFCe, error) // nil se nenhuma
	ListItens(idNFCe string) ([]*entity.NFCeItem, error)
	// ListPendentes lista documentos em PENDENTE_GERACAO para o emissor.
	ListPendentes(limite int) ([]*entity.NFCe, error)
	MarcarAutorizada(id, chaveAcesso, urlConsulta, protocolo string, quando time.Time) error
	MarcarRejeitada(id, motivo string) error
	SolicitarCancelamento(id, motivo string, quando time.Time) error
	MarcarCancelada(id string) error
}

// UsuarioRepository é o porto de operadores do PDV.
type UsuarioRepository interface {
	GetByUsuario(cnpjLoja, usuario string) (*entity.Usuario, error) // nil quando ausente
	Create(u *entity.Usuario) error
	// ListByLoja lista os operadores da loja em ordem alfabética.
	ListByLoja(cnpjLoja string) ([]*entity.Usuario, error)
}

// LojaRepository é o porto da loja emitente.
type LojaRepository interface {
	GetByCNPJ(cnpj string) (*entity.Loja, error) // nil quando ausente
	GetByID(id string) (*entity.Loja, error)     // nil quando ausente
}
