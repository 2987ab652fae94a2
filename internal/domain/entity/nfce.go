package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados da NFC-e. O core grava PENDENTE_GERACAO na finalização e
// CANCELAMENTO_PENDENTE na solicitação de cancelamento; os demais estados
// são avançados pelo emissor externo.
const (
	NFCePendenteGeracao      = "PENDENTE_GERACAO"
	NFCeAutorizada           = "AUTORIZADA"
	NFCeRejeitada            = "REJEITADA"
	NFCeCancelamentoPendente = "CANCELAMENTO_PENDENTE"
	NFCeCancelada            = "CANCELADA"
)

// Ambientes de emissão.
const (
	NFCeAmbienteProducao    = 1
	NFCeAmbienteHomologacao = 2
)

// NFCe é o registro do documento fiscal de uma venda concluída.
// No máximo um documento ativo por venda.
type NFCe struct {
	ID                         string
	IDVenda                    string
	IDLoja                     string
	Ambiente                   int
	Status                     string
	ValorTotal                 decimal.Decimal
	ChaveAcesso                string // 44 dígitos, preenchida pelo emissor
	URLConsulta                string // URL do QR Code de consulta
	Protocolo                  string // protocolo de autorização da SEFAZ
	MotivoRejeicao             string
	MotivoCancelamento         string
	DataSolicitacao            time.Time
	DataEmissao                *time.Time
	DataCancelamentoSolicitado *time.Time
}

// NFCeItem é o item congelado da NFC-e no momento da finalização, desacoplado
// de alterações posteriores no produto.
type NFCeItem struct {
	ID            string
	IDNFCe        string
	IDProduto     string
	NomeProduto   string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
	NCM           string
	CFOP          string
	UnidadeMedida string
}
