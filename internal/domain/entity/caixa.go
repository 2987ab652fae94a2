package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados do caixa. No máximo um caixa "aberto" por loja, garantido por
// índice único parcial em (cnpj_loja) WHERE status = 'aberto'.
const (
	CaixaAberto  = "aberto"
	CaixaFechado = "fechado"
)

// Caixa é a sessão de caixa de uma loja. Os totais por forma de pagamento
// são recomputados no fechamento (soma dos pagamentos de vendas CONCLUIDAs
// desde a abertura), nunca mantidos incrementalmente.
type Caixa struct {
	ID              string
	CNPJLoja        string
	Usuario         string
	Status          string
	DataAbertura    time.Time
	ValorAbertura   decimal.Decimal
	DataFechamento  *time.Time
	ValorFechamento decimal.Decimal // ValorAbertura + TotalGeral
	TotalDinheiro   decimal.Decimal
	TotalCredito    decimal.Decimal
	TotalDebito     decimal.Decimal
	TotalPix        decimal.Decimal
	TotalGeral      decimal.Decimal
	TotalVendas     int
}
