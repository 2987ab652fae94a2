package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/application/fiscal"
)

// NFCeItemResponse item congelado do documento.
type NFCeItemResponse struct {
	NomeProduto   string          `json:"nome_produto"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	NCM           string          `json:"ncm"`
	CFOP          string          `json:"cfop"`
	UnidadeMedida string          `json:"unidade_medida"`
}

// NFCePagamentoResponse pagamento exibido no cupom.
type NFCePagamentoResponse struct {
	Forma    string          `json:"forma"`
	MeioNFCe string          `json:"meio_nfce"`
	Valor    decimal.Decimal `json:"valor"`
}

// NFCeResponse documento fiscal de uma venda, com os dados do cupom.
type NFCeResponse struct {
	ID             string                  `json:"id"`
	IDVenda        string                  `json:"id_venda"`
	Status         string                  `json:"status"`
	Ambiente       int                     `json:"ambiente"`
	ValorTotal     decimal.Decimal         `json:"valor_total"`
	ChaveAcesso    string                  `json:"chave_acesso,omitempty"`
	URLConsulta    string                  `json:"url_consulta,omitempty"`
	Protocolo      string                  `json:"protocolo,omitempty"`
	MotivoRejeicao string                  `json:"motivo_rejeicao,omitempty"`
	DataEmissao    *time.Time              `json:"data_emissao,omitempty"`
	Itens          []NFCeItemResponse      `json:"itens"`
	Pagamentos     []NFCePagamentoResponse `json:"pagamentos"`
	Troco          decimal.Decimal         `json:"troco"`
}

// NovaNFCeResponse converte a consulta do caso de uso fiscal.
func NovaNFCeResponse(c *fiscal.ConsultaNFCe) NFCeResponse {
	out := NFCeResponse{
		ID:             c.NFCe.ID,
		IDVenda:        c.NFCe.IDVenda,
		Status:         c.NFCe.Status,
		Ambiente:       c.NFCe.Ambiente,
		ValorTotal:     c.NFCe.ValorTotal,
		ChaveAcesso:    c.NFCe.ChaveAcesso,
		URLConsulta:    c.NFCe.URLConsulta,
		Protocolo:      c.NFCe.Protocolo,
		MotivoRejeicao: c.NFCe.MotivoRejeicao,
		DataEmissao:    c.NFCe.DataEmissao,
		Troco:          c.Troco,
	}
	for _, it := range c.Itens {
		out.Itens = append(out.Itens, NFCeItemResponse{
			NomeProduto:   it.NomeProduto,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
			ValorTotal:    it.ValorTotal,
			NCM:           it.NCM,
			CFOP:          it.CFOP,
			UnidadeMedida: it.UnidadeMedida,
		})
	}
	for _, p := range c.Pagamentos {
		out.Pagamentos = append(out.Pagamentos, NFCePagamentoResponse{
			Forma:    p.Forma.Descricao(),
			MeioNFCe: p.MeioNFCe,
			Valor:    p.Valor,
		})
	}
	return out
}
