package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados da venda. Transições válidas:
// EM_ABERTO -> CONCLUIDA (finalizar), EM_ABERTO -> CANCELADA (cancelar),
// CONCLUIDA -> CANCELADA (cancelamento posterior). CANCELADA é terminal.
const (
	VendaEmAberto  = "EM_ABERTO"
	VendaConcluida = "CONCLUIDA"
	VendaCancelada = "CANCELADA"
)

// Tipos de venda. Uma TROCA nasce já CONCLUIDA: é um evento fiscal próprio,
// nunca uma alteração da venda original.
const (
	VendaTipoNormal = "NORMAL"
	VendaTipoTroca  = "TROCA"
)

// Venda é o agregado de uma venda do PDV.
// Invariante: ValorTotal = soma(itens.ValorTotal) - ValorDesconto para
// qualquer venda com itens.
type Venda struct {
	ID                  string
	CNPJLoja            string
	UsuarioVendedor     string
	ValorSubtotal       decimal.Decimal
	ValorDesconto       decimal.Decimal
	ValorTotal          decimal.Decimal
	Status              string
	Tipo                string
	DataHoraVenda       time.Time
	DataConclusao       *time.Time
	DataCancelamento    *time.Time
	UsuarioCancelamento string
}

// EmAberto informa se a venda ainda aceita mutação de itens/desconto.
func (v *Venda) EmAberto() bool { return v.Status == VendaEmAberto }

// ItemVenda é uma linha da venda. Preço e códigos fiscais são congelados do
// produto no momento da inclusão; a linha nunca é alterada in place, apenas
// removida (com estorno de estoque) e recriada.
type ItemVenda struct {
	ID            string
	IDVenda       string
	IDProduto     string
	Sequencial    int // 1-based, monotônico por venda
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
	ValorTotal    decimal.Decimal // Quantidade * PrecoUnitario
	NCM           string
	CFOP          string
	ItemTroca     bool // marca a linha de devolução em uma TROCA
}
