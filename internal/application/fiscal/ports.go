package fiscal

import (
	"context"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// Autorizacao é o retorno do emissor para um documento processado.
// Rejeitada=true com Motivo preenchido quando a SEFAZ recusou o documento.
type Autorizacao struct {
	ChaveAcesso string
	URLConsulta string
	Protocolo   string
	Rejeitada   bool
	Motivo      string
}

// Emissor transmite a NFC-e à SEFAZ (ou a um emissor intermediário) e devolve
// o resultado. Implementações: cliente HTTP e emissor simulado para
// homologação local.
type Emissor interface {
	Emitir(ctx context.Context, loja *entity.Loja, doc *entity.NFCe, itens []*entity.NFCeItem) (*Autorizacao, error)
}
