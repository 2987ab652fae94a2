package venda

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// Tipos de desconto aceitos.
type TipoDesconto string

const (
	DescontoValor      TipoDesconto = "VALOR"
	DescontoPercentual TipoDesconto = "PERCENTUAL"
)

// ParseTipoDesconto valida o tipo vindo da borda.
func ParseTipoDesconto(s string) (TipoDesconto, error) {
	switch TipoDesconto(strings.ToUpper(s)) {
	case DescontoValor, DescontoPercentual:
		return TipoDesconto(strings.ToUpper(s)), nil
	}
	return "", domain.ErrEntradaInvalida
}

// BuilderUseCase compõe uma venda em aberto: iniciar, adicionar/remover item,
// aplicar desconto. Toda mutação de item roda em transação com bloqueio da
// linha do produto (SELECT FOR UPDATE), serializando vendas concorrentes do
// mesmo produto.
type BuilderUseCase struct {
	txRunner  TxRunner
	vendaRepo repository.VendaRepository
	itemRepo  repository.ItemVendaRepository
	caixaRepo repository.CaixaRepository
	lojaRepo  repository.LojaRepository
}

// NewBuilderUseCase constrói o caso de uso.
func NewBuilderUseCase(
	txRunner TxRunner,
	vendaRepo repository.VendaRepository,
	itemRepo repository.ItemVendaRepository,
	caixaRepo repository.CaixaRepository,
	lojaRepo repository.LojaRepository,
) *BuilderUseCase {
	return &BuilderUseCase{
		txRunner:  txRunner,
		vendaRepo: vendaRepo,
		itemRepo:  itemRepo,
		caixaRepo: caixaRepo,
		lojaRepo:  lojaRepo,
	}
}

// Iniciar devolve a venda EM_ABERTO corrente do vendedor ou cria uma nova com
// totais zerados. Exige caixa aberto na loja.
func (uc *BuilderUseCase) Iniciar(ctx context.Context, cnpjLoja, vendedor string) (*entity.Venda, error) {
	caixa, err := uc.caixaRepo.GetAberto(cnpjLoja)
	if err != nil {
		return nil, err
	}
	if caixa == nil {
		return nil, domain.ErrNenhumCaixaAberto
	}

	existente, err := uc.vendaRepo.GetEmAberto(cnpjLoja, vendedor)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return existente, nil
	}

	v := &entity.Venda{
		ID:              uuid.New().String(),
		CNPJLoja:        cnpjLoja,
		UsuarioVendedor: vendedor,
		ValorSubtotal:   decimal.Zero,
		ValorDesconto:   decimal.Zero,
		ValorTotal:      decimal.Zero,
		Status:          entity.VendaEmAberto,
		Tipo:            entity.VendaTipoNormal,
		DataHoraVenda:   time.Now(),
	}
	if err := uc.vendaRepo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// AdicionarItem inclui um produto na venda: bloqueia a linha do produto,
// valida estoque, congela preço e códigos fiscais, baixa o estoque e soma o
// valor da linha nos totais da venda. Tudo em uma transação.
func (uc *BuilderUseCase) AdicionarItem(ctx context.Context, cnpjLoja, idVenda, idProduto string, quantidade decimal.Decimal) (*entity.ItemVenda, error) {
	if !quantidade.GreaterThan(decimal.Zero) {
		return nil, domain.ErrQuantidadeInvalida
	}
	loja, err := uc.loja(cnpjLoja)
	if err != nil {
		return nil, err
	}

	var item *entity.ItemVenda
	err = uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		_ repository.PagamentoRepository,
		_ repository.NFCeRepository,
	) error {
		if err := vendaAberta(vendaRepo, idVenda, cnpjLoja); err != nil {
			return err
		}
		produto, err := produtoRepo.GetForUpdate(loja.ID, idProduto)
		if err != nil {
			return err
		}
		item, err = incluirProduto(produtoRepo, vendaRepo, itemRepo, idVenda, produto, quantidade)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AdicionarItemPorCodigo resolve o produto por código de barras EAN ou
// referência interna (leitura do scanner). Quantidade zero assume 1.
func (uc *BuilderUseCase) AdicionarItemPorCodigo(ctx context.Context, cnpjLoja, idVenda, codigo string, quantidade decimal.Decimal) (*entity.ItemVenda, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, domain.ErrCodigoVazio
	}
	if quantidade.IsZero() {
		quantidade = decimal.NewFromInt(1)
	}
	if !quantidade.GreaterThan(decimal.Zero) {
		return nil, domain.ErrQuantidadeInvalida
	}
	loja, err := uc.loja(cnpjLoja)
	if err != nil {
		return nil, err
	}

	var item *entity.ItemVenda
	err = uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		_ repository.PagamentoRepository,
		_ repository.NFCeRepository,
	) error {
		if err := vendaAberta(vendaRepo, idVenda, cnpjLoja); err != nil {
			return err
		}
		produto, err := produtoRepo.GetForUpdateByCodigo(loja.ID, codigo)
		if err != nil {
			return err
		}
		item, err = incluirProduto(produtoRepo, vendaRepo, itemRepo, idVenda, produto, quantidade)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoverItem exclui a linha restaurando o estoque do produto e subtraindo o
// valor da linha dos totais. Se a venda ficar vazia, desconto e total são
// zerados (escolha de política: venda vazia não carrega desconto).
func (uc *BuilderUseCase) RemoverItem(ctx context.Context, cnpjLoja, idVenda, idItem string) error {
	return uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		_ repository.PagamentoRepository,
		_ repository.NFCeRepository,
	) error {
		if err := vendaAberta(vendaRepo, idVenda, cnpjLoja); err != nil {
			return err
		}
		item, err := itemRepo.GetForUpdate(idItem, idVenda)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNaoEncontrado
		}
		// Estorna o estoque antes de apagar a linha
		if err := produtoRepo.AjustarEstoque(item.IDProduto, item.Quantidade); err != nil {
			return err
		}
		if err := itemRepo.Delete(idItem, idVenda); err != nil {
			return err
		}
		if err := vendaRepo.SomarTotais(idVenda, item.ValorTotal.Neg()); err != nil {
			return err
		}
		restantes, err := itemRepo.Count(idVenda)
		if err != nil {
			return err
		}
		if restantes == 0 {
			return vendaRepo.ZerarDescontoETotal(idVenda)
		}
		return nil
	})
}

// AplicarDesconto resolve o desconto (fixo ou percentual do subtotal), limita
// ao subtotal e recomputa o total. O desconto substitui o anterior.
func (uc *BuilderUseCase) AplicarDesconto(ctx context.Context, cnpjLoja, idVenda string, valor decimal.Decimal, tipo TipoDesconto) error {
	if !valor.GreaterThan(decimal.Zero) {
		return domain.ErrDescontoInvalido
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		_ repository.PagamentoRepository,
		_ repository.NFCeRepository,
	) error {
		if err := vendaAberta(vendaRepo, idVenda, cnpjLoja); err != nil {
			return err
		}
		subtotal, err := itemRepo.SomaTotais(idVenda)
		if err != nil {
			return err
		}
		desconto := valor
		if tipo == DescontoPercentual {
			desconto = subtotal.Mul(valor).Div(decimal.NewFromInt(100))
		}
		if desconto.GreaterThan(subtotal) {
			desconto = subtotal
		}
		return vendaRepo.AplicarDesconto(idVenda, desconto, subtotal.Sub(desconto))
	})
}

// Carregar devolve a venda da loja com suas linhas, para exibição no PDV.
func (uc *BuilderUseCase) Carregar(ctx context.Context, cnpjLoja, idVenda string) (*entity.Venda, []*entity.ItemVenda, error) {
	v, err := uc.vendaRepo.GetByID(idVenda)
	if err != nil {
		return nil, nil, err
	}
	if v == nil || v.CNPJLoja != cnpjLoja {
		return nil, nil, domain.ErrVendaNaoEncontrada
	}
	itens, err := uc.itemRepo.ListByVenda(idVenda)
	if err != nil {
		return nil, nil, err
	}
	return v, itens, nil
}

// UltimasVendas lista as vendas CONCLUIDA/CANCELADA mais recentes da loja.
func (uc *BuilderUseCase) UltimasVendas(ctx context.Context, cnpjLoja string, limite int) ([]repository.VendaResumo, error) {
	if limite <= 0 {
		limite = 7
	}
	return uc.vendaRepo.ListarUltimas(cnpjLoja, limite)
}

func (uc *BuilderUseCase) loja(cnpj string) (*entity.Loja, error) {
	loja, err := uc.lojaRepo.GetByCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrLojaNaoEncontrada
	}
	return loja, nil
}

// vendaAberta valida, já dentro da tx, que a venda existe, pertence à loja e
// segue EM_ABERTO.
func vendaAberta(vendaRepo repository.VendaRepository, idVenda, cnpjLoja string) error {
	v, err := vendaRepo.GetForUpdate(idVenda, cnpjLoja)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrVendaNaoEncontrada
	}
	if !v.EmAberto() {
		return domain.ErrVendaNaoAberta
	}
	return nil
}

// incluirProduto é o caminho comum de adicionar item: valida estoque, cria a
// linha com o próximo sequencial e aplica os deltas de venda e estoque.
func incluirProduto(
	produtoRepo repository.ProdutoRepository,
	vendaRepo repository.VendaRepository,
	itemRepo repository.ItemVendaRepository,
	idVenda string,
	produto *entity.Produto,
	quantidade decimal.Decimal,
) (*entity.ItemVenda, error) {
	if produto == nil {
		return nil, domain.ErrProdutoNaoEncontrado
	}
	if produto.EstoqueAtual.LessThan(quantidade) {
		return nil, domain.ErrEstoqueInsuficiente
	}
	seq, err := itemRepo.MaxSequencial(idVenda)
	if err != nil {
		return nil, err
	}
	item := &entity.ItemVenda{
		ID:            uuid.New().String(),
		IDVenda:       idVenda,
		IDProduto:     produto.ID,
		Sequencial:    seq + 1,
		Quantidade:    quantidade,
		PrecoUnitario: produto.PrecoVenda,
		ValorTotal:    quantidade.Mul(produto.PrecoVenda),
		NCM:           produto.NCM,
		CFOP:          produto.CFOPVendaOuPadrao(),
	}
	if err := itemRepo.Create(item); err != nil {
		return nil, err
	}
	if err := vendaRepo.SomarTotais(idVenda, item.ValorTotal); err != nil {
		return nil, err
	}
	if err := produtoRepo.AjustarEstoque(produto.ID, quantidade.Neg()); err != nil {
		return nil, err
	}
	return item, nil
}
