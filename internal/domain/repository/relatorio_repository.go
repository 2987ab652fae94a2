package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendaPeriodo é a linha do relatório de vendas por período.
type VendaPeriodo struct {
	ID            string
	DataHoraVenda time.Time
	ValorTotal    decimal.Decimal
	Status        string
	Vendedor      string
}

// ResumoVendedor agrega as vendas concluídas de um vendedor no período.
type ResumoVendedor struct {
	Vendedor    string
	TotalVendas int
	ValorTotal  decimal.Decimal
}

// RelatorioRepository consultas de leitura para os relatórios do retaguarda.
type RelatorioRepository interface {
	VendasPorPeriodo(cnpjLoja string, inicio, fim time.Time) ([]VendaPeriodo, error)
	ResumoVendedores(cnpjLoja string, inicio, fim time.Time) ([]ResumoVendedor, error)
}
