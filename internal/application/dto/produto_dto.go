package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// ProdutoResponse saída de produto para o PDV.
type ProdutoResponse struct {
	ID                string          `json:"id"`
	ReferenciaInterna string          `json:"referencia_interna"`
	CodigoBarrasEAN   string          `json:"codigo_barras_ean,omitempty"`
	Nome              string          `json:"nome"`
	PrecoVenda        decimal.Decimal `json:"preco_venda"`
	UnidadeMedida     string          `json:"unidade_medida"`
	EstoqueAtual      decimal.Decimal `json:"estoque_atual"`
}

// AjusteEstoqueRequest entrada do ajuste manual de estoque do retaguarda.
type AjusteEstoqueRequest struct {
	Delta  decimal.Decimal `json:"delta"` // negativo = baixa
	Motivo string          `json:"motivo"`
}

// NovoProdutoResponse converte a entidade.
func NovoProdutoResponse(p *entity.Produto) ProdutoResponse {
	return ProdutoResponse{
		ID:                p.ID,
		ReferenciaInterna: p.ReferenciaInterna,
		CodigoBarrasEAN:   p.CodigoBarrasEAN,
		Nome:              p.Nome,
		PrecoVenda:        p.PrecoVenda,
		UnidadeMedida:     p.UnidadeMedida,
		EstoqueAtual:      p.EstoqueAtual,
	}
}

// NovaListaProdutos converte a lista da busca do PDV.
func NovaListaProdutos(produtos []*entity.Produto) []ProdutoResponse {
	out := make([]ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		out = append(out, NovoProdutoResponse(p))
	}
	return out
}
