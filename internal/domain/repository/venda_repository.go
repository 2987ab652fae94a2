package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// VendaResumo é a linha da listagem de últimas vendas do PDV, com as formas
// de pagamento agregadas em texto.
type VendaResumo struct {
	ID            string
	DataHoraVenda time.Time
	ValorTotal    decimal.Decimal
	Vendedor      string
	Status        string
	Pagamentos    string
}

// VendaRepository é o porto do agregado venda (cabeçalho).
type VendaRepository interface {
	Create(v *entity.Venda) error
	GetByID(id string) (*entity.Venda, error) // nil quando ausente
	// GetForUpdate busca a venda da loja bloqueando a linha.
	GetForUpdate(id, cnpjLoja string) (*entity.Venda, error)
	// GetEmAberto devolve a venda EM_ABERTO corrente do vendedor (nil se nenhuma).
	GetEmAberto(cnpjLoja, vendedor string) (*entity.Venda, error)
	// SomarTotais soma delta em valor_subtotal e valor_total_venda.
	SomarTotais(id string, delta decimal.Decimal) error
	// AplicarDesconto grava o desconto resolvido e o novo total.
	AplicarDesconto(id string, desconto, total decimal.Decimal) error
	// ZerarDescontoETotal força desconto e total a zero (venda esvaziada).
	ZerarDescontoETotal(id string) error
	// Concluir grava status CONCLUIDA com totais e vendedor recongelados.
	Concluir(id, vendedor string, subtotal, desconto, total decimal.Decimal, quando time.Time) error
	// Cancelar grava status CANCELADA com carimbo e autor do cancelamento.
	Cancelar(id, usuario string, quando time.Time) error
	// ListarUltimas lista vendas CONCLUIDA/CANCELADA mais recentes da loja.
	ListarUltimas(cnpjLoja string, limite int) ([]VendaResumo, error)
}

// ItemVendaRepository é o porto das linhas da venda.
type ItemVendaRepository interface {
	Create(item *entity.ItemVenda) error
	// GetForUpdate busca o item da venda bloqueando a linha.
	GetForUpdate(idItem, idVenda string) (*entity.ItemVenda, error)
	Delete(idItem, idVenda string) error
	ListByVenda(idVenda string) ([]*entity.ItemVenda, error)
	// ListByVendaForUpdate lista bloqueando as linhas (estorno de estoque).
	ListByVendaForUpdate(idVenda string) ([]*entity.ItemVenda, error)
	// MaxSequencial devolve o maior sequencial da venda (0 se vazia).
	MaxSequencial(idVenda string) (int, error)
	// SomaTotais soma valor_total_item das linhas da venda.
	SomaTotais(idVenda string) (decimal.Decimal, error)
	Count(idVenda string) (int, error)
}
