package relatorio

import (
	"context"
	"time"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// UseCase relatórios de leitura do retaguarda.
type UseCase struct {
	relatorioRepo repository.RelatorioRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(relatorioRepo repository.RelatorioRepository) *UseCase {
	return &UseCase{relatorioRepo: relatorioRepo}
}

// VendasPorPeriodo lista as vendas da loja no intervalo [inicio, fim].
func (uc *UseCase) VendasPorPeriodo(ctx context.Context, cnpjLoja string, inicio, fim time.Time) ([]repository.VendaPeriodo, error) {
	if err := validarPeriodo(inicio, fim); err != nil {
		return nil, err
	}
	return uc.relatorioRepo.VendasPorPeriodo(cnpjLoja, inicio, fim)
}

// ResumoVendedores agrega as vendas concluídas por vendedor no intervalo.
func (uc *UseCase) ResumoVendedores(ctx context.Context, cnpjLoja string, inicio, fim time.Time) ([]repository.ResumoVendedor, error) {
	if err := validarPeriodo(inicio, fim); err != nil {
		return nil, err
	}
	return uc.relatorioRepo.ResumoVendedores(cnpjLoja, inicio, fim)
}

func validarPeriodo(inicio, fim time.Time) error {
	if inicio.IsZero() || fim.IsZero() || fim.Before(inicio) {
		return domain.ErrEntradaInvalida
	}
	return nil
}
