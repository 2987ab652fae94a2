package venda

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// Tolerância entre a diferença calculada no servidor e a informada pelo
// caller (aritmética de cliente não é confiável).
var toleranciaDiferenca = decimal.NewFromFloat(0.01)

// TrocaInput descreve uma troca: o cliente leva o produto de entrada e
// devolve o de saída.
type TrocaInput struct {
	IDProdutoEntrada  string
	QuantidadeEntrada decimal.Decimal
	IDProdutoSaida    string
	QuantidadeSaida   decimal.Decimal
	Forma             entity.FormaPagamento
	DiferencaEsperada decimal.Decimal
}

// ProcessarTroca registra a troca como uma venda própria do tipo TROCA, já
// CONCLUIDA: a troca é um evento fiscal independente e nunca altera os
// totais da venda original. Linha 1 é o produto levado (CFOP de venda);
// linha 2 o devolvido, marcada como item de troca (CFOP de devolução).
// Se houver diferença de valor, um único pagamento é registrado pelo módulo
// da diferença. Baixa o estoque da entrada e devolve o da saída, tudo
// atomicamente: qualquer falha desfaz a operação inteira.
func (uc *BuilderUseCase) ProcessarTroca(ctx context.Context, cnpjLoja, vendedor string, in TrocaInput) (*entity.Venda, error) {
	if in.IDProdutoEntrada == "" || in.IDProdutoSaida == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.IDProdutoEntrada == in.IDProdutoSaida {
		return nil, domain.ErrProdutosTrocaNaoEncontrados
	}
	if !in.QuantidadeEntrada.GreaterThan(decimal.Zero) || !in.QuantidadeSaida.GreaterThan(decimal.Zero) {
		return nil, domain.ErrQuantidadeInvalida
	}
	loja, err := uc.loja(cnpjLoja)
	if err != nil {
		return nil, err
	}

	var troca *entity.Venda
	err = uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		pagamentoRepo repository.PagamentoRepository,
		_ repository.NFCeRepository,
	) error {
		// Bloqueia as duas linhas em ordem estável para não criar deadlock
		// entre trocas concorrentes dos mesmos produtos.
		primeiro, segundo := in.IDProdutoEntrada, in.IDProdutoSaida
		if segundo < primeiro {
			primeiro, segundo = segundo, primeiro
		}
		porID := make(map[string]*entity.Produto, 2)
		for _, id := range []string{primeiro, segundo} {
			p, err := produtoRepo.GetForUpdate(loja.ID, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProdutosTrocaNaoEncontrados
			}
			porID[id] = p
		}
		entrada := porID[in.IDProdutoEntrada]
		saida := porID[in.IDProdutoSaida]

		// Só a entrada é conferida: a saída está voltando ao estoque.
		if entrada.EstoqueAtual.LessThan(in.QuantidadeEntrada) {
			return domain.ErrEstoqueInsuficiente
		}

		valorEntrada := entrada.PrecoVenda.Mul(in.QuantidadeEntrada)
		valorSaida := saida.PrecoVenda.Mul(in.QuantidadeSaida)
		diferenca := valorEntrada.Sub(valorSaida)
		if diferenca.Sub(in.DiferencaEsperada).Abs().GreaterThan(toleranciaDiferenca) {
			return domain.ErrDiferencaNaoConfere
		}
		// Havendo diferença, a forma que a liquida precisa ser conhecida
		// antes de gravar qualquer coisa.
		if !diferenca.IsZero() {
			if _, err := entity.ParseFormaPagamento(string(in.Forma)); err != nil {
				return err
			}
		}

		agora := time.Now()
		troca = &entity.Venda{
			ID:              uuid.New().String(),
			CNPJLoja:        cnpjLoja,
			UsuarioVendedor: vendedor,
			ValorSubtotal:   valorEntrada,
			ValorDesconto:   decimal.Zero,
			ValorTotal:      valorEntrada,
			Status:          entity.VendaConcluida,
			Tipo:            entity.VendaTipoTroca,
			DataHoraVenda:   agora,
			DataConclusao:   &agora,
		}
		if err := vendaRepo.Create(troca); err != nil {
			return err
		}

		itemEntrada := &entity.ItemVenda{
			ID:            uuid.New().String(),
			IDVenda:       troca.ID,
			IDProduto:     entrada.ID,
			Sequencial:    1,
			Quantidade:    in.QuantidadeEntrada,
			PrecoUnitario: entrada.PrecoVenda,
			ValorTotal:    valorEntrada,
			NCM:           entrada.NCM,
			CFOP:          entrada.CFOPVendaOuPadrao(),
		}
		if err := itemRepo.Create(itemEntrada); err != nil {
			return err
		}
		itemSaida := &entity.ItemVenda{
			ID:            uuid.New().String(),
			IDVenda:       troca.ID,
			IDProduto:     saida.ID,
			Sequencial:    2,
			Quantidade:    in.QuantidadeSaida,
			PrecoUnitario: saida.PrecoVenda,
			ValorTotal:    valorSaida,
			NCM:           saida.NCM,
			CFOP:          entity.CFOPDevolucao,
			ItemTroca:     true,
		}
		if err := itemRepo.Create(itemSaida); err != nil {
			return err
		}

		if !diferenca.IsZero() {
			if _, err := registrarPagamentos(pagamentoRepo, troca.ID, []PagamentoInput{
				{Forma: in.Forma, Valor: diferenca.Abs()},
			}); err != nil {
				return err
			}
		}

		if err := produtoRepo.AjustarEstoque(entrada.ID, in.QuantidadeEntrada.Neg()); err != nil {
			return err
		}
		return produtoRepo.AjustarEstoque(saida.ID, in.QuantidadeSaida)
	})
	if err != nil {
		return nil, err
	}
	return troca, nil
}
