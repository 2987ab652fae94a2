// Package sefaz implementa o porto Emissor do caso de uso fiscal: um cliente
// HTTP para o serviço emissor de NFC-e e um emissor simulado para ambiente de
// desenvolvimento/homologação sem serviço externo.
package sefaz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tu-usuario/pdv-pro/internal/application/fiscal"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

var _ fiscal.Emissor = (*Client)(nil)

// Client envia o documento ao serviço emissor via HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constrói o cliente do emissor.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type emitirResponse struct {
	Autorizada  bool   `json:"autorizada"`
	ChaveAcesso string `json:"chave_acesso"`
	URLConsulta string `json:"url_consulta"`
	Protocolo   string `json:"protocolo"`
	Motivo      string `json:"motivo"`
}

// Emitir monta o XML da NFC-e, envia ao emissor e traduz a resposta.
func (c *Client) Emitir(ctx context.Context, loja *entity.Loja, doc *entity.NFCe, itens []*entity.NFCeItem) (*fiscal.Autorizacao, error) {
	payload, err := BuildNFCeXML(loja, doc, itens)
	if err != nil {
		return nil, fmt.Errorf("emissor: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/nfce/emitir", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("emissor: request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/xml")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("emissor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emissor: status inesperado %d", resp.StatusCode)
	}
	var out emitirResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("emissor: decode: %w", err)
	}
	return &fiscal.Autorizacao{
		ChaveAcesso: out.ChaveAcesso,
		URLConsulta: out.URLConsulta,
		Protocolo:   out.Protocolo,
		Rejeitada:   !out.Autorizada,
		Motivo:      out.Motivo,
	}, nil
}
