package relatorio

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

type relatorioRepoStub struct {
	vendas  []repository.VendaPeriodo
	resumos []repository.ResumoVendedor
}

var _ repository.RelatorioRepository = (*relatorioRepoStub)(nil)

func (r *relatorioRepoStub) VendasPorPeriodo(cnpjLoja string, inicio, fim time.Time) ([]repository.VendaPeriodo, error) {
	return r.vendas, nil
}

func (r *relatorioRepoStub) ResumoVendedores(cnpjLoja string, inicio, fim time.Time) ([]repository.ResumoVendedor, error) {
	return r.resumos, nil
}

func TestVendasPorPeriodo(t *testing.T) {
	repo := &relatorioRepoStub{vendas: []repository.VendaPeriodo{
		{ID: "venda-1", ValorTotal: decimal.NewFromFloat(99.80), Status: "CONCLUIDA", Vendedor: "maria"},
	}}
	uc := NewUseCase(repo)

	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	out, err := uc.VendasPorPeriodo(context.Background(), "12345678000195", inicio, fim)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "venda-1", out[0].ID)
}

func TestResumoVendedores(t *testing.T) {
	repo := &relatorioRepoStub{resumos: []repository.ResumoVendedor{
		{Vendedor: "maria", TotalVendas: 3, ValorTotal: decimal.NewFromFloat(245.50)},
	}}
	uc := NewUseCase(repo)

	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.ResumoVendedores(context.Background(), "12345678000195", inicio, inicio.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 3, out[0].TotalVendas)
}

func TestPeriodoInvalido(t *testing.T) {
	uc := NewUseCase(&relatorioRepoStub{})
	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	casos := []struct {
		nome        string
		inicio, fim time.Time
	}{
		{"inicio zero", time.Time{}, inicio},
		{"fim zero", inicio, time.Time{}},
		{"fim antes do inicio", inicio, inicio.AddDate(0, 0, -1)},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			_, err := uc.VendasPorPeriodo(context.Background(), "12345678000195", c.inicio, c.fim)
			require.ErrorIs(t, err, domain.ErrEntradaInvalida)

			_, err = uc.ResumoVendedores(context.Background(), "12345678000195", c.inicio, c.fim)
			require.ErrorIs(t, err, domain.ErrEntradaInvalida)
		})
	}
}
