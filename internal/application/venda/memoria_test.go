package venda

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// banco é o armazenamento em memória dos testes dos casos de uso. O txRunner
// de teste tira um snapshot antes de executar a função e restaura em caso de
// erro, reproduzindo o rollback da transação real.
type banco struct {
	produtos   map[string]*entity.Produto
	vendas     map[string]*entity.Venda
	itens      map[string]*entity.ItemVenda
	pagamentos map[string]*entity.Pagamento
	nfces      map[string]*entity.NFCe
	nfceItens  map[string]*entity.NFCeItem
	caixas     map[string]*entity.Caixa
	lojas      map[string]*entity.Loja
}

func novoBanco() *banco {
	return &banco{
		produtos:   map[string]*entity.Produto{},
		vendas:     map[string]*entity.Venda{},
		itens:      map[string]*entity.ItemVenda{},
		pagamentos: map[string]*entity.Pagamento{},
		nfces:      map[string]*entity.NFCe{},
		nfceItens:  map[string]*entity.NFCeItem{},
		caixas:     map[string]*entity.Caixa{},
		lojas:      map[string]*entity.Loja{},
	}
}

func (b *banco) snapshot() *banco {
	s := novoBanco()
	for k, v := range b.produtos {
		c := *v
		s.produtos[k] = &c
	}
	for k, v := range b.vendas {
		c := *v
		s.vendas[k] = &c
	}
	for k, v := range b.itens {
		c := *v
		s.itens[k] = &c
	}
	for k, v := range b.pagamentos {
		c := *v
		s.pagamentos[k] = &c
	}
	for k, v := range b.nfces {
		c := *v
		s.nfces[k] = &c
	}
	for k, v := range b.nfceItens {
		c := *v
		s.nfceItens[k] = &c
	}
	for k, v := range b.caixas {
		c := *v
		s.caixas[k] = &c
	}
	for k, v := range b.lojas {
		c := *v
		s.lojas[k] = &c
	}
	return s
}

func (b *banco) restaurar(s *banco) { *b = *s }

// txRunnerMem implementa venda.TxRunner sobre o banco em memória.
type txRunnerMem struct {
	b *banco
}

func (t *txRunnerMem) Run(ctx context.Context, fn func(
	produtoRepo repository.ProdutoRepository,
	vendaRepo repository.VendaRepository,
	itemRepo repository.ItemVendaRepository,
	pagamentoRepo repository.PagamentoRepository,
	nfceRepo repository.NFCeRepository,
) error) error {
	s := t.b.snapshot()
	err := fn(&produtoMem{t.b}, &vendaMem{t.b}, &itemMem{t.b}, &pagamentoMem{t.b}, &nfceMem{t.b})
	if err != nil {
		t.b.restaurar(s)
	}
	return err
}

type produtoMem struct{ b *banco }

var _ repository.ProdutoRepository = (*produtoMem)(nil)

func (r *produtoMem) GetByID(id string) (*entity.Produto, error) {
	p, ok := r.b.produtos[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *produtoMem) GetForUpdate(idLoja, id string) (*entity.Produto, error) {
	p, ok := r.b.produtos[id]
	if !ok || p.IDLoja != idLoja || !p.Ativo {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *produtoMem) GetForUpdateByCodigo(idLoja, codigo string) (*entity.Produto, error) {
	// EAN tem precedência sobre referência interna.
	var porReferencia *entity.Produto
	for _, p := range r.b.produtos {
		if p.IDLoja != idLoja || !p.Ativo {
			continue
		}
		if p.CodigoBarrasEAN == codigo {
			c := *p
			return &c, nil
		}
		if p.ReferenciaInterna == codigo {
			c := *p
			porReferencia = &c
		}
	}
	return porReferencia, nil
}

func (r *produtoMem) AjustarEstoque(id string, delta decimal.Decimal) error {
	p, ok := r.b.produtos[id]
	if !ok {
		return domain.ErrProdutoNaoEncontrado
	}
	novo := p.EstoqueAtual.Add(delta)
	if novo.IsNegative() {
		return domain.ErrEstoqueInsuficiente
	}
	p.EstoqueAtual = novo
	return nil
}

func (r *produtoMem) Buscar(idLoja, termo string, limite int) ([]*entity.Produto, error) {
	termo = strings.ToLower(termo)
	var out []*entity.Produto
	for _, p := range r.b.produtos {
		if p.IDLoja != idLoja || !p.Ativo {
			continue
		}
		if strings.Contains(strings.ToLower(p.Nome), termo) ||
			strings.Contains(strings.ToLower(p.ReferenciaInterna), termo) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

type vendaMem struct{ b *banco }

var _ repository.VendaRepository = (*vendaMem)(nil)

func (r *vendaMem) Create(v *entity.Venda) error {
	// Espelha o índice parcial uq_venda_aberta_por_vendedor.
	if v.Status == entity.VendaEmAberto {
		for _, e := range r.b.vendas {
			if e.ID != v.ID && e.CNPJLoja == v.CNPJLoja &&
				e.UsuarioVendedor == v.UsuarioVendedor && e.Status == entity.VendaEmAberto {
				return domain.ErrVendaEmAberto
			}
		}
	}
	c := *v
	r.b.vendas[v.ID] = &c
	return nil
}

func (r *vendaMem) GetByID(id string) (*entity.Venda, error) {
	v, ok := r.b.vendas[id]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (r *vendaMem) GetForUpdate(id, cnpjLoja string) (*entity.Venda, error) {
	v, ok := r.b.vendas[id]
	if !ok || v.CNPJLoja != cnpjLoja {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (r *vendaMem) GetEmAberto(cnpjLoja, vendedor string) (*entity.Venda, error) {
	for _, v := range r.b.vendas {
		if v.CNPJLoja == cnpjLoja && v.UsuarioVendedor == vendedor && v.Status == entity.VendaEmAberto {
			c := *v
			return &c, nil
		}
	}
	return nil, nil
}

func (r *vendaMem) SomarTotais(id string, delta decimal.Decimal) error {
	v := r.b.vendas[id]
	v.ValorSubtotal = v.ValorSubtotal.Add(delta)
	v.ValorTotal = v.ValorTotal.Add(delta)
	return nil
}

func (r *vendaMem) AplicarDesconto(id string, desconto, total decimal.Decimal) error {
	v := r.b.vendas[id]
	v.ValorDesconto = desconto
	v.ValorTotal = total
	return nil
}

func (r *vendaMem) ZerarDescontoETotal(id string) error {
	v := r.b.vendas[id]
	v.ValorDesconto = decimal.Zero
	v.ValorTotal = decimal.Zero
	return nil
}

func (r *vendaMem) Concluir(id, vendedor string, subtotal, desconto, total decimal.Decimal, quando time.Time) error {
	v := r.b.vendas[id]
	v.Status = entity.VendaConcluida
	v.UsuarioVendedor = vendedor
	v.ValorSubtotal = subtotal
	v.ValorDesconto = desconto
	v.ValorTotal = total
	v.DataConclusao = &quando
	return nil
}

func (r *vendaMem) Cancelar(id, usuario string, quando time.Time) error {
	v := r.b.vendas[id]
	v.Status = entity.VendaCancelada
	v.DataCancelamento = &quando
	v.UsuarioCancelamento = usuario
	return nil
}

func (r *vendaMem) ListarUltimas(cnpjLoja string, limite int) ([]repository.VendaResumo, error) {
	var out []repository.VendaResumo
	for _, v := range r.b.vendas {
		if v.CNPJLoja != cnpjLoja || v.Status == entity.VendaEmAberto {
			continue
		}
		var formas []string
		for _, p := range r.b.pagamentos {
			if p.IDVenda == v.ID {
				formas = append(formas, p.Forma.Descricao())
			}
		}
		sort.Strings(formas)
		out = append(out, repository.VendaResumo{
			ID:            v.ID,
			DataHoraVenda: v.DataHoraVenda,
			ValorTotal:    v.ValorTotal,
			Vendedor:      v.UsuarioVendedor,
			Status:        v.Status,
			Pagamentos:    strings.Join(formas, ", "),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataHoraVenda.After(out[j].DataHoraVenda) })
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

type itemMem struct{ b *banco }

var _ repository.ItemVendaRepository = (*itemMem)(nil)

func (r *itemMem) Create(item *entity.ItemVenda) error {
	c := *item
	r.b.itens[item.ID] = &c
	return nil
}

func (r *itemMem) GetForUpdate(idItem, idVenda string) (*entity.ItemVenda, error) {
	it, ok := r.b.itens[idItem]
	if !ok || it.IDVenda != idVenda {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *itemMem) Delete(idItem, idVenda string) error {
	it, ok := r.b.itens[idItem]
	if !ok || it.IDVenda != idVenda {
		return domain.ErrItemNaoEncontrado
	}
	delete(r.b.itens, idItem)
	return nil
}

func (r *itemMem) ListByVenda(idVenda string) ([]*entity.ItemVenda, error) {
	var out []*entity.ItemVenda
	for _, it := range r.b.itens {
		if it.IDVenda == idVenda {
			c := *it
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequencial < out[j].Sequencial })
	return out, nil
}

func (r *itemMem) ListByVendaForUpdate(idVenda string) ([]*entity.ItemVenda, error) {
	return r.ListByVenda(idVenda)
}

func (r *itemMem) MaxSequencial(idVenda string) (int, error) {
	max := 0
	for _, it := range r.b.itens {
		if it.IDVenda == idVenda && it.Sequencial > max {
			max = it.Sequencial
		}
	}
	return max, nil
}

func (r *itemMem) SomaTotais(idVenda string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.b.itens {
		if it.IDVenda == idVenda {
			total = total.Add(it.ValorTotal)
		}
	}
	return total, nil
}

func (r *itemMem) Count(idVenda string) (int, error) {
	n := 0
	for _, it := range r.b.itens {
		if it.IDVenda == idVenda {
			n++
		}
	}
	return n, nil
}

type pagamentoMem struct{ b *banco }

var _ repository.PagamentoRepository = (*pagamentoMem)(nil)

func (r *pagamentoMem) Create(p *entity.Pagamento) error {
	c := *p
	r.b.pagamentos[p.ID] = &c
	return nil
}

func (r *pagamentoMem) ListByVenda(idVenda string) ([]*entity.Pagamento, error) {
	var out []*entity.Pagamento
	for _, p := range r.b.pagamentos {
		if p.IDVenda == idVenda {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *pagamentoMem) TotaisDesde(cnpjLoja string, desde time.Time) (*repository.TotaisCaixa, error) {
	t := &repository.TotaisCaixa{
		TotalDinheiro: decimal.Zero,
		TotalCredito:  decimal.Zero,
		TotalDebito:   decimal.Zero,
		TotalPix:      decimal.Zero,
		TotalGeral:    decimal.Zero,
	}
	vendasVistas := map[string]bool{}
	for _, p := range r.b.pagamentos {
		v, ok := r.b.vendas[p.IDVenda]
		if !ok || v.CNPJLoja != cnpjLoja || v.Status != entity.VendaConcluida {
			continue
		}
		if v.DataHoraVenda.Before(desde) {
			continue
		}
		switch p.Forma {
		case entity.FormaDinheiro:
			t.TotalDinheiro = t.TotalDinheiro.Add(p.Valor)
		case entity.FormaCartaoCredito:
			t.TotalCredito = t.TotalCredito.Add(p.Valor)
		case entity.FormaCartaoDebito:
			t.TotalDebito = t.TotalDebito.Add(p.Valor)
		case entity.FormaPix:
			t.TotalPix = t.TotalPix.Add(p.Valor)
		}
		t.TotalGeral = t.TotalGeral.Add(p.Valor)
		vendasVistas[v.ID] = true
	}
	t.TotalVendas = len(vendasVistas)
	return t, nil
}

type nfceMem struct{ b *banco }

var _ repository.NFCeRepository = (*nfceMem)(nil)

func (r *nfceMem) Create(n *entity.NFCe, itens []*entity.NFCeItem) error {
	c := *n
	r.b.nfces[n.ID] = &c
	for _, it := range itens {
		ci := *it
		r.b.nfceItens[it.ID] = &ci
	}
	return nil
}

func (r *nfceMem) GetByVenda(idVenda string) (*entity.NFCe, error) {
	for _, n := range r.b.nfces {
		if n.IDVenda == idVenda {
			c := *n
			return &c, nil
		}
	}
	return nil, nil
}

func (r *nfceMem) ListItens(idNFCe string) ([]*entity.NFCeItem, error) {
	var out []*entity.NFCeItem
	for _, it := range r.b.nfceItens {
		if it.IDNFCe == idNFCe {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *nfceMem) ListPendentes(limite int) ([]*entity.NFCe, error) {
	var out []*entity.NFCe
	for _, n := range r.b.nfces {
		if n.Status == entity.NFCePendenteGeracao {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataSolicitacao.Before(out[j].DataSolicitacao) })
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (r *nfceMem) MarcarAutorizada(id, chaveAcesso, urlConsulta, protocolo string, quando time.Time) error {
	n := r.b.nfces[id]
	n.Status = entity.NFCeAutorizada
	n.ChaveAcesso = chaveAcesso
	n.URLConsulta = urlConsulta
	n.Protocolo = protocolo
	n.DataEmissao = &quando
	return nil
}

func (r *nfceMem) MarcarRejeitada(id, motivo string) error {
	n := r.b.nfces[id]
	n.Status = entity.NFCeRejeitada
	n.MotivoRejeicao = motivo
	return nil
}

func (r *nfceMem) SolicitarCancelamento(id, motivo string, quando time.Time) error {
	n := r.b.nfces[id]
	n.Status = entity.NFCeCancelamentoPendente
	n.MotivoCancelamento = motivo
	n.DataCancelamentoSolicitado = &quando
	return nil
}

func (r *nfceMem) MarcarCancelada(id string) error {
	r.b.nfces[id].Status = entity.NFCeCancelada
	return nil
}

type caixaMem struct{ b *banco }

var _ repository.CaixaRepository = (*caixaMem)(nil)

func (r *caixaMem) Create(c *entity.Caixa) error {
	for _, cx := range r.b.caixas {
		if cx.CNPJLoja == c.CNPJLoja && cx.Status == entity.CaixaAberto {
			return domain.ErrCaixaJaAberto
		}
	}
	cp := *c
	r.b.caixas[c.ID] = &cp
	return nil
}

func (r *caixaMem) GetAberto(cnpjLoja string) (*entity.Caixa, error) {
	for _, cx := range r.b.caixas {
		if cx.CNPJLoja == cnpjLoja && cx.Status == entity.CaixaAberto {
			c := *cx
			return &c, nil
		}
	}
	return nil, nil
}

func (r *caixaMem) Fechar(c *entity.Caixa) error {
	atual, ok := r.b.caixas[c.ID]
	if !ok || atual.Status != entity.CaixaAberto {
		return domain.ErrNenhumCaixaAberto
	}
	cp := *c
	r.b.caixas[c.ID] = &cp
	return nil
}

func (r *caixaMem) GetByID(id, cnpjLoja string) (*entity.Caixa, error) {
	cx, ok := r.b.caixas[id]
	if !ok || cx.CNPJLoja != cnpjLoja {
		return nil, nil
	}
	c := *cx
	return &c, nil
}

type lojaMem struct{ b *banco }

var _ repository.LojaRepository = (*lojaMem)(nil)

func (r *lojaMem) GetByCNPJ(cnpj string) (*entity.Loja, error) {
	for _, l := range r.b.lojas {
		if l.CNPJ == cnpj {
			c := *l
			return &c, nil
		}
	}
	return nil, nil
}

func (r *lojaMem) GetByID(id string) (*entity.Loja, error) {
	l, ok := r.b.lojas[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}
