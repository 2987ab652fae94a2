package caixa

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// UseCase gerencia a sessão de caixa da loja.
type UseCase struct {
	txRunner  TxRunner
	caixaRepo repository.CaixaRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner, caixaRepo repository.CaixaRepository) *UseCase {
	return &UseCase{txRunner: txRunner, caixaRepo: caixaRepo}
}

// Abrir abre a sessão de caixa da loja com o fundo de troco informado.
// Zero é fundo válido; negativo não. O índice único parcial garante no máximo
// um caixa aberto por loja mesmo sob aberturas concorrentes.
func (uc *UseCase) Abrir(ctx context.Context, cnpjLoja, usuario string, valorAbertura decimal.Decimal) (*entity.Caixa, error) {
	if valorAbertura.IsNegative() {
		return nil, domain.ErrValorAberturaInvalido
	}

	aberto, err := uc.caixaRepo.GetAberto(cnpjLoja)
	if err != nil {
		return nil, err
	}
	if aberto != nil {
		return nil, domain.ErrCaixaJaAberto
	}

	c := &entity.Caixa{
		ID:            uuid.New().String(),
		CNPJLoja:      cnpjLoja,
		Usuario:       usuario,
		Status:        entity.CaixaAberto,
		DataAbertura:  time.Now(),
		ValorAbertura: valorAbertura,
	}
	// Corrida entre duas aberturas: o índice único resolve e o repositório
	// traduz a violação para ErrCaixaJaAberto.
	if err := uc.caixaRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Aberto devolve o caixa aberto da loja, ou ErrNenhumCaixaAberto.
func (uc *UseCase) Aberto(ctx context.Context, cnpjLoja string) (*entity.Caixa, error) {
	c, err := uc.caixaRepo.GetAberto(cnpjLoja)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNenhumCaixaAberto
	}
	return c, nil
}

// Fechar fecha o caixa aberto da loja: recompõe os totais por forma de
// pagamento das vendas CONCLUIDAs desde a abertura e grava o fechamento com
// ValorFechamento = ValorAbertura + TotalGeral. Apuração e gravação ocorrem
// na mesma transação.
func (uc *UseCase) Fechar(ctx context.Context, cnpjLoja string) (*entity.Caixa, error) {
	var fechado *entity.Caixa
	err := uc.txRunner.RunCaixa(ctx, func(
		caixaRepo repository.CaixaRepository,
		pagamentoRepo repository.PagamentoRepository,
	) error {
		c, err := caixaRepo.GetAberto(cnpjLoja)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNenhumCaixaAberto
		}

		totais, err := pagamentoRepo.TotaisDesde(cnpjLoja, c.DataAbertura)
		if err != nil {
			return err
		}

		agora := time.Now()
		c.Status = entity.CaixaFechado
		c.DataFechamento = &agora
		c.TotalDinheiro = totais.TotalDinheiro
		c.TotalCredito = totais.TotalCredito
		c.TotalDebito = totais.TotalDebito
		c.TotalPix = totais.TotalPix
		c.TotalGeral = totais.TotalGeral
		c.TotalVendas = totais.TotalVendas
		c.ValorFechamento = c.ValorAbertura.Add(totais.TotalGeral)
		if err := caixaRepo.Fechar(c); err != nil {
			return err
		}
		fechado = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fechado, nil
}
