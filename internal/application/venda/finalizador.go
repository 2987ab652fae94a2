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

// Motivo padrão gravado quando o operador cancela uma venda com NFC-e
// autorizada.
const motivoCancelamentoUsuario = "Cancelamento solicitado pelo usuário"

// FinalizadorUseCase executa as transições terminais da venda:
// EM_ABERTO -> CONCLUIDA (Finalizar), EM_ABERTO/CONCLUIDA -> CANCELADA
// (Cancelar) e o caminho de histórico CONCLUIDA -> CANCELADA
// (CancelarConcluida). Cada transição é uma transação única.
type FinalizadorUseCase struct {
	txRunner TxRunner
	lojaRepo repository.LojaRepository
}

// NewFinalizadorUseCase constrói o caso de uso.
func NewFinalizadorUseCase(txRunner TxRunner, lojaRepo repository.LojaRepository) *FinalizadorUseCase {
	return &FinalizadorUseCase{txRunner: txRunner, lojaRepo: lojaRepo}
}

// FinalizarInput parâmetros da finalização.
type FinalizarInput struct {
	Pagamentos []PagamentoInput
	Vendedor   string // sobrescreve o vendedor da venda; vazio = usuário corrente
	EmitirNFCe bool
}

// FinalizarResult resultado da finalização. Troco é apenas exibido, nunca
// persistido: é o excedente do ofertado sobre o total.
type FinalizarResult struct {
	Venda     *entity.Venda
	TotalPago decimal.Decimal
	Troco     decimal.Decimal
}

// Finalizar conclui a venda: valida itens e cobertura do pagamento, grava os
// pagamentos, recongela totais e vendedor e, se solicitado, cria o registro
// NFC-e em PENDENTE_GERACAO com os itens congelados. Falha em qualquer passo
// (inclusive na NFC-e) desfaz a finalização inteira.
func (uc *FinalizadorUseCase) Finalizar(ctx context.Context, cnpjLoja, usuario, idVenda string, in FinalizarInput) (*FinalizarResult, error) {
	loja, err := uc.lojaRepo.GetByCNPJ(cnpjLoja)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrLojaNaoEncontrada
	}

	var res *FinalizarResult
	err = uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		pagamentoRepo repository.PagamentoRepository,
		nfceRepo repository.NFCeRepository,
	) error {
		v, err := vendaRepo.GetForUpdate(idVenda, cnpjLoja)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrVendaNaoEncontrada
		}
		// Finalizar duas vezes falha aqui: a transição é executada no máximo
		// uma vez, sem duplicar pagamentos nem NFC-e.
		if !v.EmAberto() {
			return domain.ErrVendaNaoAberta
		}

		itens, err := itemRepo.ListByVenda(idVenda)
		if err != nil {
			return err
		}
		if len(itens) == 0 {
			return domain.ErrVendaSemItens
		}

		subtotal := decimal.Zero
		for _, it := range itens {
			subtotal = subtotal.Add(it.ValorTotal)
		}
		desconto := v.ValorDesconto
		total := subtotal.Sub(desconto)

		// Cobertura validada antes de gravar qualquer pagamento: falha aqui
		// não pode deixar registros de pagamento para trás.
		totalPago := totalOfertado(in.Pagamentos)
		if totalPago.IsZero() {
			return domain.ErrNenhumPagamento
		}
		if totalPago.LessThan(total) {
			return domain.ErrPagamentoInsuficiente
		}
		if _, err := registrarPagamentos(pagamentoRepo, idVenda, in.Pagamentos); err != nil {
			return err
		}

		vendedor := in.Vendedor
		if vendedor == "" {
			vendedor = usuario
		}
		agora := time.Now()
		if err := vendaRepo.Concluir(idVenda, vendedor, subtotal, desconto, total, agora); err != nil {
			return err
		}

		if in.EmitirNFCe {
			if err := criarNFCe(produtoRepo, nfceRepo, loja, idVenda, total, itens, agora); err != nil {
				return err
			}
		}

		v.Status = entity.VendaConcluida
		v.UsuarioVendedor = vendedor
		v.ValorSubtotal = subtotal
		v.ValorDesconto = desconto
		v.ValorTotal = total
		v.DataConclusao = &agora
		res = &FinalizarResult{
			Venda:     v,
			TotalPago: totalPago,
			Troco:     totalPago.Sub(total),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// criarNFCe registra o documento fiscal em PENDENTE_GERACAO com os itens
// congelados da venda. Se a venda já tem NFC-e, não cria outra.
func criarNFCe(
	produtoRepo repository.ProdutoRepository,
	nfceRepo repository.NFCeRepository,
	loja *entity.Loja,
	idVenda string,
	total decimal.Decimal,
	itens []*entity.ItemVenda,
	agora time.Time,
) error {
	existente, err := nfceRepo.GetByVenda(idVenda)
	if err != nil {
		return err
	}
	if existente != nil {
		return nil
	}

	ambiente := entity.NFCeAmbienteHomologacao
	if loja.AmbienteNFCe == entity.NFCeAmbienteProducao {
		ambiente = entity.NFCeAmbienteProducao
	}
	doc := &entity.NFCe{
		ID:              uuid.New().String(),
		IDVenda:         idVenda,
		IDLoja:          loja.ID,
		Ambiente:        ambiente,
		Status:          entity.NFCePendenteGeracao,
		ValorTotal:      total,
		DataSolicitacao: agora,
	}
	docItens := make([]*entity.NFCeItem, 0, len(itens))
	for _, it := range itens {
		p, err := produtoRepo.GetByID(it.IDProduto)
		if err != nil {
			return err
		}
		nome, unidade := "", ""
		if p != nil {
			nome, unidade = p.Nome, p.UnidadeMedida
		}
		docItens = append(docItens, &entity.NFCeItem{
			ID:            uuid.New().String(),
			IDNFCe:        doc.ID,
			IDProduto:     it.IDProduto,
			NomeProduto:   nome,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.PrecoUnitario,
			ValorTotal:    it.ValorTotal,
			NCM:           it.NCM,
			CFOP:          it.CFOP,
			UnidadeMedida: unidade,
		})
	}
	return nfceRepo.Create(doc, docItens)
}

// Cancelar cancela a venda corrente do PDV (EM_ABERTO ou CONCLUIDA):
// se houver NFC-e AUTORIZADA, marca CANCELAMENTO_PENDENTE (sem aguardar a
// confirmação do emissor), estorna o estoque de todas as linhas e grava
// CANCELADA com carimbo e autor.
func (uc *FinalizadorUseCase) Cancelar(ctx context.Context, cnpjLoja, usuario, idVenda string) (*entity.Venda, error) {
	var cancelada *entity.Venda
	err := uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		_ repository.PagamentoRepository,
		nfceRepo repository.NFCeRepository,
	) error {
		v, err := vendaRepo.GetForUpdate(idVenda, cnpjLoja)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrVendaNaoEncontrada
		}
		if v.Status == entity.VendaCancelada {
			return domain.ErrVendaJaCancelada
		}

		itens, err := itemRepo.ListByVendaForUpdate(idVenda)
		if err != nil {
			return err
		}
		if len(itens) == 0 {
			return domain.ErrVendaSemItens
		}

		agora := time.Now()
		doc, err := nfceRepo.GetByVenda(idVenda)
		if err != nil {
			return err
		}
		if doc != nil && doc.Status == entity.NFCeAutorizada {
			if err := nfceRepo.SolicitarCancelamento(doc.ID, motivoCancelamentoUsuario, agora); err != nil {
				return err
			}
		}

		if err := estornarEstoque(produtoRepo, itens); err != nil {
			return err
		}
		if err := vendaRepo.Cancelar(idVenda, usuario, agora); err != nil {
			return err
		}

		v.Status = entity.VendaCancelada
		v.DataCancelamento = &agora
		v.UsuarioCancelamento = usuario
		cancelada = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelada, nil
}

// CancelarConcluida cancela uma venda já CONCLUIDA a partir do histórico:
// reconfere loja e status, estorna o estoque e grava CANCELADA. Este caminho
// não toca no registro de NFC-e; o cancelamento fiscal segue pelo fluxo
// próprio do documento.
func (uc *FinalizadorUseCase) CancelarConcluida(ctx context.Context, cnpjLoja, idVenda string) error {
	return uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		_ repository.PagamentoRepository,
		_ repository.NFCeRepository,
	) error {
		v, err := vendaRepo.GetForUpdate(idVenda, cnpjLoja)
		if err != nil {
			return err
		}
		if v == nil || v.Status != entity.VendaConcluida {
			return domain.ErrVendaNaoEncontrada
		}
		itens, err := itemRepo.ListByVendaForUpdate(idVenda)
		if err != nil {
			return err
		}
		if len(itens) == 0 {
			return domain.ErrSemItensParaEstornar
		}
		if err := estornarEstoque(produtoRepo, itens); err != nil {
			return err
		}
		return vendaRepo.Cancelar(idVenda, "", time.Now())
	})
}

// estornarEstoque devolve ao estoque a quantidade de cada linha.
// Linhas de devolução de troca já entraram no estoque na própria troca e
// são estornadas no sentido inverso.
func estornarEstoque(produtoRepo repository.ProdutoRepository, itens []*entity.ItemVenda) error {
	for _, it := range itens {
		delta := it.Quantidade
		if it.ItemTroca {
			delta = delta.Neg()
		}
		if err := produtoRepo.AjustarEstoque(it.IDProduto, delta); err != nil {
			return err
		}
	}
	return nil
}
