package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// VendaPeriodoResponse linha do relatório de vendas por período.
type VendaPeriodoResponse struct {
	ID            string          `json:"id"`
	DataHoraVenda time.Time       `json:"data_hora_venda"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Status        string          `json:"status"`
	Vendedor      string          `json:"vendedor"`
}

// ResumoVendedorResponse agregado por vendedor no período.
type ResumoVendedorResponse struct {
	Vendedor    string          `json:"vendedor"`
	TotalVendas int             `json:"total_vendas"`
	ValorTotal  decimal.Decimal `json:"valor_total"`
}

// NovaListaVendasPeriodo converte o relatório de vendas por período.
func NovaListaVendasPeriodo(linhas []repository.VendaPeriodo) []VendaPeriodoResponse {
	out := make([]VendaPeriodoResponse, 0, len(linhas))
	for _, l := range linhas {
		out = append(out, VendaPeriodoResponse{
			ID:            l.ID,
			DataHoraVenda: l.DataHoraVenda,
			ValorTotal:    l.ValorTotal,
			Status:        l.Status,
			Vendedor:      l.Vendedor,
		})
	}
	return out
}

// NovaListaResumoVendedores converte o agregado por vendedor.
func NovaListaResumoVendedores(linhas []repository.ResumoVendedor) []ResumoVendedorResponse {
	out := make([]ResumoVendedorResponse, 0, len(linhas))
	for _, l := range linhas {
		out = append(out, ResumoVendedorResponse{
			Vendedor:    l.Vendedor,
			TotalVendas: l.TotalVendas,
			ValorTotal:  l.ValorTotal,
		})
	}
	return out
}
