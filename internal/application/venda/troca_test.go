package venda

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// Camiseta 49.90 em estoque 10; calça 129.90 em estoque 5 (ver fixture).

func TestTrocaComDiferencaAPagar(t *testing.T) {
	f := novaFixture(t)

	// Cliente leva a calça (129.90) e devolve a camiseta (49.90): paga 80.00.
	troca, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
		DiferencaEsperada: decimal.NewFromFloat(80.00),
	})
	require.NoError(t, err)
	require.Equal(t, entity.VendaTipoTroca, troca.Tipo)
	require.Equal(t, entity.VendaConcluida, troca.Status)
	require.NotNil(t, troca.DataConclusao)
	require.True(t, troca.ValorTotal.Equal(decimal.NewFromFloat(129.90)))

	// Estoques: calça saiu, camiseta voltou.
	require.True(t, f.b.produtos["prod-calca"].EstoqueAtual.Equal(decimal.NewFromInt(4)))
	require.True(t, f.b.produtos["prod-camiseta"].EstoqueAtual.Equal(decimal.NewFromInt(11)))

	itens, err := (&itemMem{f.b}).ListByVenda(troca.ID)
	require.NoError(t, err)
	require.Len(t, itens, 2)
	require.Equal(t, "prod-calca", itens[0].IDProduto)
	require.False(t, itens[0].ItemTroca)
	require.Equal(t, "prod-camiseta", itens[1].IDProduto)
	require.True(t, itens[1].ItemTroca)
	require.Equal(t, entity.CFOPDevolucao, itens[1].CFOP)

	pagos, err := (&pagamentoMem{f.b}).ListByVenda(troca.ID)
	require.NoError(t, err)
	require.Len(t, pagos, 1)
	require.True(t, pagos[0].Valor.Equal(decimal.NewFromFloat(80.00)))
}

func TestTrocaSemDiferencaNaoRegistraPagamento(t *testing.T) {
	f := novaFixture(t)
	f.b.produtos["prod-calca"].PrecoVenda = decimal.NewFromFloat(49.90)

	troca, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaDinheiro,
		DiferencaEsperada: decimal.Zero,
	})
	require.NoError(t, err)

	pagos, err := (&pagamentoMem{f.b}).ListByVenda(troca.ID)
	require.NoError(t, err)
	require.Empty(t, pagos)
}

func TestTrocaDiferencaNegativaRegistraModulo(t *testing.T) {
	f := novaFixture(t)

	// Cliente leva a camiseta e devolve a calça: diferença -80.00, pagamento
	// registrado pelo módulo.
	troca, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-camiseta",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-calca",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaDinheiro,
		DiferencaEsperada: decimal.NewFromFloat(-80.00),
	})
	require.NoError(t, err)

	pagos, err := (&pagamentoMem{f.b}).ListByVenda(troca.ID)
	require.NoError(t, err)
	require.Len(t, pagos, 1)
	require.True(t, pagos[0].Valor.Equal(decimal.NewFromFloat(80.00)))
}

func TestTrocaDiferencaNaoConfere(t *testing.T) {
	f := novaFixture(t)

	_, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
		DiferencaEsperada: decimal.NewFromFloat(75.00),
	})
	require.ErrorIs(t, err, domain.ErrDiferencaNaoConfere)

	// Rollback completo: estoques intactos, nenhuma venda TROCA criada.
	require.True(t, f.b.produtos["prod-calca"].EstoqueAtual.Equal(decimal.NewFromInt(5)))
	require.True(t, f.b.produtos["prod-camiseta"].EstoqueAtual.Equal(decimal.NewFromInt(10)))
	for _, v := range f.b.vendas {
		require.NotEqual(t, entity.VendaTipoTroca, v.Tipo)
	}
}

func TestTrocaComDiferencaExigeFormaConhecida(t *testing.T) {
	f := novaFixture(t)

	// Diferença de 80.00 sem forma informada: nada pode ser gravado com
	// meio de pagamento vazio.
	_, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		DiferencaEsperada: decimal.NewFromFloat(80.00),
	})
	require.ErrorIs(t, err, domain.ErrFormaPagamentoInvalida)

	// Rollback completo: estoques intactos, nenhum rastro da troca.
	require.True(t, f.b.produtos["prod-calca"].EstoqueAtual.Equal(decimal.NewFromInt(5)))
	require.True(t, f.b.produtos["prod-camiseta"].EstoqueAtual.Equal(decimal.NewFromInt(10)))
	require.Empty(t, f.b.vendas)
	require.Empty(t, f.b.itens)
	require.Empty(t, f.b.pagamentos)
}

func TestTrocaSemDiferencaDispensaForma(t *testing.T) {
	f := novaFixture(t)
	f.b.produtos["prod-calca"].PrecoVenda = decimal.NewFromFloat(49.90)

	troca, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		DiferencaEsperada: decimal.Zero,
	})
	require.NoError(t, err)
	require.Equal(t, entity.VendaConcluida, troca.Status)
}

func TestTrocaDentroDaTolerancia(t *testing.T) {
	f := novaFixture(t)

	_, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
		DiferencaEsperada: decimal.NewFromFloat(80.01),
	})
	require.NoError(t, err)
}

func TestTrocaEstoqueInsuficienteDaEntrada(t *testing.T) {
	f := novaFixture(t)
	f.b.produtos["prod-calca"].EstoqueAtual = decimal.Zero

	_, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
		DiferencaEsperada: decimal.NewFromFloat(80.00),
	})
	require.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
}

func TestTrocaProdutoInexistente(t *testing.T) {
	f := novaFixture(t)

	_, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-fantasma",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
	})
	require.ErrorIs(t, err, domain.ErrProdutosTrocaNaoEncontrados)
}

func TestTrocaMesmoProduto(t *testing.T) {
	f := novaFixture(t)

	_, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-camiseta",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
	})
	require.ErrorIs(t, err, domain.ErrProdutosTrocaNaoEncontrados)
}

func TestTrocaNaoTocaVendaEmAbertoDoVendedor(t *testing.T) {
	f := novaFixture(t)
	v := f.vendaComItens(t)
	subtotal := f.b.vendas[v.ID].ValorSubtotal
	total := f.b.vendas[v.ID].ValorTotal

	// A troca do mesmo vendedor é uma venda própria: a EM_ABERTO corrente
	// não muda de totais nem de status.
	troca, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
		DiferencaEsperada: decimal.NewFromFloat(80.00),
	})
	require.NoError(t, err)
	require.NotEqual(t, v.ID, troca.ID)

	aberta := f.b.vendas[v.ID]
	require.Equal(t, entity.VendaEmAberto, aberta.Status)
	require.True(t, aberta.ValorSubtotal.Equal(subtotal))
	require.True(t, aberta.ValorTotal.Equal(total))
	require.True(t, aberta.ValorDesconto.IsZero())

	itens, err := (&itemMem{f.b}).ListByVenda(v.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1)
}

func TestTrocaCancelamentoInverteOsDoisSentidos(t *testing.T) {
	f := novaFixture(t)

	troca, err := f.builder.ProcessarTroca(context.Background(), cnpjTeste, vendedorTeste, TrocaInput{
		IDProdutoEntrada:  "prod-calca",
		QuantidadeEntrada: decimal.NewFromInt(1),
		IDProdutoSaida:    "prod-camiseta",
		QuantidadeSaida:   decimal.NewFromInt(1),
		Forma:             entity.FormaPix,
		DiferencaEsperada: decimal.NewFromFloat(80.00),
	})
	require.NoError(t, err)

	// Cancelar a troca desfaz os dois movimentos de estoque.
	require.NoError(t, f.fin.CancelarConcluida(context.Background(), cnpjTeste, troca.ID))
	require.True(t, f.b.produtos["prod-calca"].EstoqueAtual.Equal(decimal.NewFromInt(5)))
	require.True(t, f.b.produtos["prod-camiseta"].EstoqueAtual.Equal(decimal.NewFromInt(10)))
}
