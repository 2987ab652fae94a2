package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// AdicionarItemRequest entrada para incluir uma linha na venda corrente.
// IDProduto e Codigo são alternativas: o PDV envia Codigo quando o operador
// bipa/digita e IDProduto quando escolhe no modal de busca.
type AdicionarItemRequest struct {
	IDProduto  string          `json:"id_produto"`
	Codigo     string          `json:"codigo"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// DescontoRequest entrada para aplicar desconto na venda corrente.
type DescontoRequest struct {
	Tipo  string          `json:"tipo"` // VALOR | PERCENTUAL
	Valor decimal.Decimal `json:"valor"`
}

// PagamentoRequest uma parcela do pagamento da finalização.
type PagamentoRequest struct {
	Forma string          `json:"forma"` // DINHEIRO | CARTAO_CREDITO | CARTAO_DEBITO | PIX
	Valor decimal.Decimal `json:"valor"`
}

// FinalizarVendaRequest entrada da finalização.
type FinalizarVendaRequest struct {
	Pagamentos []PagamentoRequest `json:"pagamentos"`
	Vendedor   string             `json:"vendedor,omitempty"`
	EmitirNFCe bool               `json:"emitir_nfce"`
}

// TrocaRequest entrada do fluxo de troca de produto.
type TrocaRequest struct {
	IDProdutoEntrada  string          `json:"id_produto_entrada"`
	QuantidadeEntrada decimal.Decimal `json:"quantidade_entrada"`
	IDProdutoSaida    string          `json:"id_produto_saida"`
	QuantidadeSaida   decimal.Decimal `json:"quantidade_saida"`
	Forma             string          `json:"forma,omitempty"` // obrigatória se houver diferença a cobrar
	DiferencaEsperada decimal.Decimal `json:"diferenca_esperada"`
}

// ItemVendaResponse linha da venda.
type ItemVendaResponse struct {
	ID            string          `json:"id"`
	IDProduto     string          `json:"id_produto"`
	Sequencial    int             `json:"sequencial"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	ItemTroca     bool            `json:"item_troca,omitempty"`
}

// VendaResponse saída do agregado venda.
type VendaResponse struct {
	ID               string              `json:"id"`
	Status           string              `json:"status"`
	Tipo             string              `json:"tipo"`
	Vendedor         string              `json:"vendedor"`
	ValorSubtotal    decimal.Decimal     `json:"valor_subtotal"`
	ValorDesconto    decimal.Decimal     `json:"valor_desconto"`
	ValorTotal       decimal.Decimal     `json:"valor_total"`
	DataHoraVenda    time.Time           `json:"data_hora_venda"`
	DataConclusao    *time.Time          `json:"data_conclusao,omitempty"`
	DataCancelamento *time.Time          `json:"data_cancelamento,omitempty"`
	Itens            []ItemVendaResponse `json:"itens,omitempty"`
}

// FinalizarVendaResponse saída da finalização, com troco calculado.
type FinalizarVendaResponse struct {
	Venda     VendaResponse   `json:"venda"`
	TotalPago decimal.Decimal `json:"total_pago"`
	Troco     decimal.Decimal `json:"troco"`
}

// VendaResumoResponse linha da listagem de últimas vendas.
type VendaResumoResponse struct {
	ID            string          `json:"id"`
	DataHoraVenda time.Time       `json:"data_hora_venda"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Vendedor      string          `json:"vendedor"`
	Status        string          `json:"status"`
	Pagamentos    string          `json:"pagamentos"`
}

// NovaVendaResponse converte a entidade (e as linhas, se carregadas).
func NovaVendaResponse(v *entity.Venda, itens []*entity.ItemVenda) VendaResponse {
	out := VendaResponse{
		ID:               v.ID,
		Status:           v.Status,
		Tipo:             v.Tipo,
		Vendedor:         v.UsuarioVendedor,
		ValorSubtotal:    v.ValorSubtotal,
		ValorDesconto:    v.ValorDesconto,
		ValorTotal:       v.ValorTotal,
		DataHoraVenda:    v.DataHoraVenda,
		DataConclusao:    v.DataConclusao,
		DataCancelamento: v.DataCancelamento,
	}
	for _, it := range itens {
		out.Itens = append(out.Itens, ItemVendaResponse{
			ID:            it.ID,
			IDProduto:     it.IDProduto,
			Sequencial:    it.Sequencial,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			ValorTotal:    it.ValorTotal,
			ItemTroca:     it.ItemTroca,
		})
	}
	return out
}

// NovaListaResumos converte a listagem de últimas vendas.
func NovaListaResumos(resumos []repository.VendaResumo) []VendaResumoResponse {
	out := make([]VendaResumoResponse, 0, len(resumos))
	for _, r := range resumos {
		out = append(out, VendaResumoResponse{
			ID:            r.ID,
			DataHoraVenda: r.DataHoraVenda,
			ValorTotal:    r.ValorTotal,
			Vendedor:      r.Vendedor,
			Status:        r.Status,
			Pagamentos:    r.Pagamentos,
		})
	}
	return out
}
