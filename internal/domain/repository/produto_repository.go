package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// ProdutoRepository é o porto de consulta/mutação de produtos e estoque.
// As variantes ForUpdate bloqueiam a linha (SELECT FOR UPDATE) e devem ser
// chamadas dentro de transação: são a única porta de entrada para qualquer
// operação que lê-e-grava EstoqueAtual.
type ProdutoRepository interface {
	GetByID(id string) (*entity.Produto, error) // nil quando ausente
	// GetForUpdate devolve o produto ativo da loja bloqueando a linha.
	GetForUpdate(idLoja, id string) (*entity.Produto, error)
	// GetForUpdateByCodigo resolve por código de barras EAN ou referência interna.
	GetForUpdateByCodigo(idLoja, codigo string) (*entity.Produto, error)
	// AjustarEstoque soma delta (negativo = baixa) em estoque_atual.
	AjustarEstoque(id string, delta decimal.Decimal) error
	// Buscar lista produtos ativos por nome ou referência (modal do PDV).
	Buscar(idLoja, termo string, limite int) ([]*entity.Produto, error)
}
