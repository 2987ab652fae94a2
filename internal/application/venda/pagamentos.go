package venda

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// PagamentoInput é um valor ofertado em uma forma de pagamento.
type PagamentoInput struct {
	Forma entity.FormaPagamento
	Valor decimal.Decimal
}

// totalOfertado soma apenas as entradas positivas, sem efeito colateral.
// Usado pelo finalizador para validar a cobertura ANTES de gravar qualquer
// pagamento: pagamento insuficiente não pode deixar registros para trás.
func totalOfertado(entradas []PagamentoInput) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entradas {
		if e.Valor.GreaterThan(decimal.Zero) {
			total = total.Add(e.Valor)
		}
	}
	return total
}

// registrarPagamentos cria um registro por entrada positiva, congelando o
// código de meio de pagamento da NFC-e, e devolve o total pago.
// Retorna ErrNenhumPagamento se nenhuma entrada sobreviver ao filtro.
func registrarPagamentos(pagamentoRepo repository.PagamentoRepository, idVenda string, entradas []PagamentoInput) (decimal.Decimal, error) {
	total := decimal.Zero
	criados := 0
	for _, e := range entradas {
		if !e.Valor.GreaterThan(decimal.Zero) {
			continue
		}
		p := &entity.Pagamento{
			ID:       uuid.New().String(),
			IDVenda:  idVenda,
			Forma:    e.Forma,
			MeioNFCe: e.Forma.CodigoNFCe(),
			Valor:    e.Valor,
		}
		if err := pagamentoRepo.Create(p); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(e.Valor)
		criados++
	}
	if criados == 0 {
		return decimal.Zero, domain.ErrNenhumPagamento
	}
	return total, nil
}
