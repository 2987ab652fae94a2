package entity

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
)

// FormaPagamento é o conjunto fechado de meios de pagamento aceitos no PDV.
// O mapeamento para o código de meio de pagamento da NFC-e é exaustivo:
// forma desconhecida é rejeitada na borda (ParseFormaPagamento), não existe
// fallback "99" em tempo de execução.
type FormaPagamento string

const (
	FormaDinheiro      FormaPagamento = "DINHEIRO"
	FormaCartaoCredito FormaPagamento = "CARTAO_CREDITO"
	FormaCartaoDebito  FormaPagamento = "CARTAO_DEBITO"
	FormaPix           FormaPagamento = "PIX"
)

// CodigoNFCe devolve o código do meio de pagamento para a NFC-e (tabela tPag).
func (f FormaPagamento) CodigoNFCe() string {
	switch f {
	case FormaDinheiro:
		return "01"
	case FormaCartaoCredito:
		return "03"
	case FormaCartaoDebito:
		return "04"
	case FormaPix:
		return "17"
	}
	// Inalcançável para valores construídos via ParseFormaPagamento.
	return ""
}

// Descricao devolve o nome de exibição da forma de pagamento.
func (f FormaPagamento) Descricao() string {
	switch f {
	case FormaDinheiro:
		return "Dinheiro"
	case FormaCartaoCredito:
		return "Cartão Crédito"
	case FormaCartaoDebito:
		return "Cartão Débito"
	case FormaPix:
		return "Pix"
	}
	return string(f)
}

// ParseFormaPagamento valida uma forma vinda da borda (formulário/JSON).
func ParseFormaPagamento(s string) (FormaPagamento, error) {
	switch FormaPagamento(s) {
	case FormaDinheiro, FormaCartaoCredito, FormaCartaoDebito, FormaPix:
		return FormaPagamento(s), nil
	}
	return "", domain.ErrFormaPagamentoInvalida
}

// Pagamento registra um valor pago contra uma venda. Imutável após criado;
// troco não é modelado como pagamento, é o excedente sobre o total.
type Pagamento struct {
	ID       string
	IDVenda  string
	Forma    FormaPagamento
	MeioNFCe string // código tPag congelado na criação
	Valor    decimal.Decimal
}
