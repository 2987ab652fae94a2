package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/pkg/moeda"
)

// AbrirCaixaRequest entrada da abertura de caixa.
type AbrirCaixaRequest struct {
	ValorAbertura decimal.Decimal `json:"valor_abertura"`
}

// CaixaResponse saída da sessão de caixa.
type CaixaResponse struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	Usuario       string          `json:"usuario"`
	DataAbertura  time.Time       `json:"data_abertura"`
	ValorAbertura decimal.Decimal `json:"valor_abertura"`
}

// ResumoCaixaResponse saída do fechamento, com os totais apurados já
// formatados em reais para o cupom de conferência.
type ResumoCaixaResponse struct {
	ID                 string          `json:"id"`
	DataAbertura       time.Time       `json:"data_abertura"`
	DataFechamento     *time.Time      `json:"data_fechamento,omitempty"`
	ValorAbertura      decimal.Decimal `json:"valor_abertura"`
	ValorFechamento    decimal.Decimal `json:"valor_fechamento"`
	TotalDinheiro      decimal.Decimal `json:"total_dinheiro"`
	TotalCredito       decimal.Decimal `json:"total_credito"`
	TotalDebito        decimal.Decimal `json:"total_debito"`
	TotalPix           decimal.Decimal `json:"total_pix"`
	TotalGeral         decimal.Decimal `json:"total_geral"`
	TotalVendas        int             `json:"total_vendas"`
	ValorFechamentoBRL string          `json:"valor_fechamento_brl"`
	TotalGeralBRL      string          `json:"total_geral_brl"`
}

// NovoCaixaResponse converte a entidade.
func NovoCaixaResponse(c *entity.Caixa) CaixaResponse {
	return CaixaResponse{
		ID:            c.ID,
		Status:        c.Status,
		Usuario:       c.Usuario,
		DataAbertura:  c.DataAbertura,
		ValorAbertura: c.ValorAbertura,
	}
}

// NovoResumoCaixaResponse converte o caixa fechado com os totais apurados.
func NovoResumoCaixaResponse(c *entity.Caixa) ResumoCaixaResponse {
	return ResumoCaixaResponse{
		ID:                 c.ID,
		DataAbertura:       c.DataAbertura,
		DataFechamento:     c.DataFechamento,
		ValorAbertura:      c.ValorAbertura,
		ValorFechamento:    c.ValorFechamento,
		TotalDinheiro:      c.TotalDinheiro,
		TotalCredito:       c.TotalCredito,
		TotalDebito:        c.TotalDebito,
		TotalPix:           c.TotalPix,
		TotalGeral:         c.TotalGeral,
		TotalVendas:        c.TotalVendas,
		ValorFechamentoBRL: moeda.FormatarBRL(c.ValorFechamento),
		TotalGeralBRL:      moeda.FormatarBRL(c.TotalGeral),
	}
}
