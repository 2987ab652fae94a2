package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// TotaisCaixa são os totais por forma de pagamento apurados no fechamento:
// soma dos pagamentos de vendas CONCLUIDAs desde a abertura do caixa.
type TotaisCaixa struct {
	TotalDinheiro decimal.Decimal
	TotalCredito  decimal.Decimal
	TotalDebito   decimal.Decimal
	TotalPix      decimal.Decimal
	TotalGeral    decimal.Decimal
	TotalVendas   int
}

// PagamentoRepository é o porto dos pagamentos de venda.
type PagamentoRepository interface {
	Create(p *entity.Pagamento) error
	ListByVenda(idVenda string) ([]*entity.Pagamento, error)
	// TotaisDesde recompõe os totais por forma das vendas CONCLUIDAs da
	// loja cuja data_hora_venda é >= o instante dado.
	TotaisDesde(cnpjLoja string, desde time.Time) (*TotaisCaixa, error)
}

// CaixaRepository é o porto da sessão de caixa.
type CaixaRepository interface {
	// Create persiste o caixa aberto. Violação do índice único parcial
	// (um caixa aberto por loja) retorna domain.ErrCaixaJaAberto.
	Create(c *entity.Caixa) error
	// GetAberto devolve o caixa aberto da loja (nil se nenhum).
	GetAberto(cnpjLoja string) (*entity.Caixa, error)
	// Fechar grava status fechado, carimbo e totais apurados.
	Fechar(c *entity.Caixa) error
	GetByID(id, cnpjLoja string) (*entity.Caixa, error)
}
