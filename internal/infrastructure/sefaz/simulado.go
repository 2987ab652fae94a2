package sefaz

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/tu-usuario/pdv-pro/internal/application/fiscal"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/nfce"
)

var _ fiscal.Emissor = (*EmissorSimulado)(nil)

// EmissorSimulado autoriza documentos localmente, sem SEFAZ: gera a chave de
// acesso real (modelo 65) e uma URL de consulta válida. Usado quando
// NFCE_EMISSOR_URL está vazio — desenvolvimento e homologação local.
type EmissorSimulado struct {
	uf         string
	serie      string
	consultaQR string
	numero     atomic.Int64
}

// NewEmissorSimulado constrói o emissor simulado.
func NewEmissorSimulado(uf, serie, consultaQR string) *EmissorSimulado {
	e := &EmissorSimulado{uf: uf, serie: serie, consultaQR: consultaQR}
	// Numeração por processo; reinício recomeça a sequência, o que é
	// aceitável porque a chave carrega o cNF aleatório.
	e.numero.Store(time.Now().Unix() % 1_000_000)
	return e
}

// Emitir gera chave, URL e protocolo simulados. Nunca rejeita.
func (e *EmissorSimulado) Emitir(ctx context.Context, loja *entity.Loja, doc *entity.NFCe, itens []*entity.NFCeItem) (*fiscal.Autorizacao, error) {
	agora := time.Now()
	chave, err := nfce.Chave(nfce.ChaveParams{
		UF:      e.uf,
		Emissao: agora,
		CNPJ:    loja.CNPJ,
		Serie:   e.serie,
		Numero:  e.numero.Add(1),
		Codigo:  rand.Int63n(100_000_000),
	})
	if err != nil {
		return nil, err
	}
	return &fiscal.Autorizacao{
		ChaveAcesso: chave,
		URLConsulta: nfce.URLConsulta(e.consultaQR, chave, doc.Ambiente, doc.ValorTotal),
		Protocolo:   fmt.Sprintf("1%s%014d", e.uf, agora.UnixNano()%100_000_000_000_000),
		Rejeitada:   false,
	}, nil
}
