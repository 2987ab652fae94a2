package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um produto da loja com seu estoque corrente.
// EstoqueAtual nunca fica negativo: toda operação que lê-e-grava estoque
// bloqueia a linha (SELECT FOR UPDATE) e o schema carrega um CHECK de reforço.
// Produtos não são apagados; são desativados (Ativo = false).
type Produto struct {
	ID                string
	IDLoja            string
	ReferenciaInterna string // código interno da loja
	CodigoBarrasEAN   string
	Nome              string
	PrecoVenda        decimal.Decimal
	UnidadeMedida     string // UN, KG, CX...
	EstoqueAtual      decimal.Decimal
	Ativo             bool
	NCM               string // classificação fiscal
	CFOP              string // código fiscal da operação (venda: 5102)
	CriadoEm          time.Time
	AtualizadoEm      time.Time
}

// CFOP padrão quando o produto não define o próprio.
const (
	CFOPVenda     = "5102"
	CFOPDevolucao = "5202" // linha de devolução em troca
)

// CFOPVendaOuPadrao devolve o CFOP do produto ou o padrão de venda.
func (p *Produto) CFOPVendaOuPadrao() string {
	if p.CFOP == "" {
		return CFOPVenda
	}
	return p.CFOP
}
