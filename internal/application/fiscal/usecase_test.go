package fiscal

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
	"github.com/tu-usuario/pdv-pro/pkg/logger"
)

const cnpjTeste = "12345678000195"

type nfceRepoMem struct {
	docs  map[string]*entity.NFCe
	itens map[string]*entity.NFCeItem
}

var _ repository.NFCeRepository = (*nfceRepoMem)(nil)

func novoNFCeRepoMem() *nfceRepoMem {
	return &nfceRepoMem{docs: map[string]*entity.NFCe{}, itens: map[string]*entity.NFCeItem{}}
}

func (r *nfceRepoMem) Create(n *entity.NFCe, itens []*entity.NFCeItem) error {
	c := *n
	r.docs[n.ID] = &c
	for _, it := range itens {
		ci := *it
		r.itens[it.ID] = &ci
	}
	return nil
}

func (r *nfceRepoMem) GetByVenda(idVenda string) (*entity.NFCe, error) {
	for _, n := range r.docs {
		if n.IDVenda == idVenda {
			c := *n
			return &c, nil
		}
	}
	return nil, nil
}

func (r *nfceRepoMem) ListItens(idNFCe string) ([]*entity.NFCeItem, error) {
	var out []*entity.NFCeItem
	for _, it := range r.itens {
		if it.IDNFCe == idNFCe {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *nfceRepoMem) ListPendentes(limite int) ([]*entity.NFCe, error) {
	var out []*entity.NFCe
	for _, n := range r.docs {
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

func (r *nfceRepoMem) MarcarAutorizada(id, chaveAcesso, urlConsulta, protocolo string, quando time.Time) error {
	n := r.docs[id]
	// Espelha o guard de status do UPDATE real: só PENDENTE_GERACAO transita.
	if n.Status != entity.NFCePendenteGeracao {
		return nil
	}
	n.Status = entity.NFCeAutorizada
	n.ChaveAcesso = chaveAcesso
	n.URLConsulta = urlConsulta
	n.Protocolo = protocolo
	n.DataEmissao = &quando
	return nil
}

func (r *nfceRepoMem) MarcarRejeitada(id, motivo string) error {
	n := r.docs[id]
	n.Status = entity.NFCeRejeitada
	n.MotivoRejeicao = motivo
	return nil
}

func (r *nfceRepoMem) SolicitarCancelamento(id, motivo string, quando time.Time) error {
	n := r.docs[id]
	n.Status = entity.NFCeCancelamentoPendente
	n.MotivoCancelamento = motivo
	n.DataCancelamentoSolicitado = &quando
	return nil
}

func (r *nfceRepoMem) MarcarCancelada(id string) error {
	r.docs[id].Status = entity.NFCeCancelada
	return nil
}

type vendaRepoStub struct {
	vendas map[string]*entity.Venda
}

var _ repository.VendaRepository = (*vendaRepoStub)(nil)

func (r *vendaRepoStub) GetByID(id string) (*entity.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (r *vendaRepoStub) Create(*entity.Venda) error                      { return nil }
func (r *vendaRepoStub) GetForUpdate(_, _ string) (*entity.Venda, error) { return nil, nil }
func (r *vendaRepoStub) GetEmAberto(_, _ string) (*entity.Venda, error)  { return nil, nil }
func (r *vendaRepoStub) SomarTotais(string, decimal.Decimal) error       { return nil }
func (r *vendaRepoStub) AplicarDesconto(string, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *vendaRepoStub) ZerarDescontoETotal(string) error { return nil }
func (r *vendaRepoStub) Concluir(string, string, decimal.Decimal, decimal.Decimal, decimal.Decimal, time.Time) error {
	return nil
}
func (r *vendaRepoStub) Cancelar(string, string, time.Time) error { return nil }
func (r *vendaRepoStub) ListarUltimas(string, int) ([]repository.VendaResumo, error) {
	return nil, nil
}

type pagamentoRepoStub struct {
	pagamentos []*entity.Pagamento
}

var _ repository.PagamentoRepository = (*pagamentoRepoStub)(nil)

func (r *pagamentoRepoStub) Create(*entity.Pagamento) error { return nil }

func (r *pagamentoRepoStub) ListByVenda(idVenda string) ([]*entity.Pagamento, error) {
	var out []*entity.Pagamento
	for _, p := range r.pagamentos {
		if p.IDVenda == idVenda {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *pagamentoRepoStub) TotaisDesde(string, time.Time) (*repository.TotaisCaixa, error) {
	return &repository.TotaisCaixa{}, nil
}

type lojaRepoStub struct {
	loja *entity.Loja
}

var _ repository.LojaRepository = (*lojaRepoStub)(nil)

func (r *lojaRepoStub) GetByCNPJ(cnpj string) (*entity.Loja, error) {
	if r.loja != nil && r.loja.CNPJ == cnpj {
		return r.loja, nil
	}
	return nil, nil
}

func (r *lojaRepoStub) GetByID(id string) (*entity.Loja, error) {
	if r.loja != nil && r.loja.ID == id {
		return r.loja, nil
	}
	return nil, nil
}

// emissorStub devolve a autorização programada, ou erro.
type emissorStub struct {
	aut *Autorizacao
	err error
}

func (e *emissorStub) Emitir(ctx context.Context, loja *entity.Loja, doc *entity.NFCe, itens []*entity.NFCeItem) (*Autorizacao, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.aut, nil
}

func logTeste() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func docPendente(id, idVenda string, solicitadaEm time.Time) *entity.NFCe {
	return &entity.NFCe{
		ID:              id,
		IDVenda:         idVenda,
		IDLoja:          "loja-1",
		Ambiente:        entity.NFCeAmbienteHomologacao,
		Status:          entity.NFCePendenteGeracao,
		ValorTotal:      decimal.NewFromFloat(99.80),
		DataSolicitacao: solicitadaEm,
	}
}

func TestProcessarPendentesAutoriza(t *testing.T) {
	nfceRepo := novoNFCeRepoMem()
	nfceRepo.docs["n1"] = docPendente("n1", "v1", time.Now())
	lojas := &lojaRepoStub{loja: &entity.Loja{ID: "loja-1", CNPJ: cnpjTeste}}
	emissor := &emissorStub{aut: &Autorizacao{
		ChaveAcesso: "3525891234567800019565001000001234100000017",
		URLConsulta: "https://example.test/qrcode?p=x",
		Protocolo:   "135250000000001",
	}}

	uc := NewUseCase(emissor, nfceRepo, &vendaRepoStub{}, &pagamentoRepoStub{}, lojas, logTeste())
	n, err := uc.ProcessarPendentes(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	doc := nfceRepo.docs["n1"]
	require.Equal(t, entity.NFCeAutorizada, doc.Status)
	require.Equal(t, "135250000000001", doc.Protocolo)
	require.NotNil(t, doc.DataEmissao)
}

func TestMarcarAutorizadaSoTransitaDePendente(t *testing.T) {
	nfceRepo := novoNFCeRepoMem()
	nfceRepo.docs["n1"] = docPendente("n1", "v1", time.Now())

	// Duas transmissões do mesmo documento (dois processadores disparados em
	// paralelo): a segunda autorização não sobrescreve a primeira.
	require.NoError(t, nfceRepo.MarcarAutorizada("n1", "chave-a", "url-a", "prot-a", time.Now()))
	require.NoError(t, nfceRepo.MarcarAutorizada("n1", "chave-b", "url-b", "prot-b", time.Now()))

	doc := nfceRepo.docs["n1"]
	require.Equal(t, entity.NFCeAutorizada, doc.Status)
	require.Equal(t, "prot-a", doc.Protocolo)
	require.Equal(t, "chave-a", doc.ChaveAcesso)
}

func TestProcessarPendentesRejeitada(t *testing.T) {
	nfceRepo := novoNFCeRepoMem()
	nfceRepo.docs["n1"] = docPendente("n1", "v1", time.Now())
	lojas := &lojaRepoStub{loja: &entity.Loja{ID: "loja-1", CNPJ: cnpjTeste}}
	emissor := &emissorStub{aut: &Autorizacao{Rejeitada: true, Motivo: "Rejeição 215: falha no schema"}}

	uc := NewUseCase(emissor, nfceRepo, &vendaRepoStub{}, &pagamentoRepoStub{}, lojas, logTeste())
	n, err := uc.ProcessarPendentes(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, entity.NFCeRejeitada, nfceRepo.docs["n1"].Status)
	require.Contains(t, nfceRepo.docs["n1"].MotivoRejeicao, "215")
}

func TestProcessarPendentesFalhaNaoInterrompeOsDemais(t *testing.T) {
	nfceRepo := novoNFCeRepoMem()
	nfceRepo.docs["n1"] = docPendente("n1", "v1", time.Now().Add(-2*time.Minute))
	nfceRepo.docs["n2"] = docPendente("n2", "v2", time.Now().Add(-time.Minute))
	// n2 pertence a outra loja, inexistente: falha e permanece pendente.
	nfceRepo.docs["n2"].IDLoja = "loja-fantasma"
	lojas := &lojaRepoStub{loja: &entity.Loja{ID: "loja-1", CNPJ: cnpjTeste}}
	emissor := &emissorStub{aut: &Autorizacao{ChaveAcesso: "x", Protocolo: "y"}}

	uc := NewUseCase(emissor, nfceRepo, &vendaRepoStub{}, &pagamentoRepoStub{}, lojas, logTeste())
	n, err := uc.ProcessarPendentes(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, entity.NFCeAutorizada, nfceRepo.docs["n1"].Status)
	require.Equal(t, entity.NFCePendenteGeracao, nfceRepo.docs["n2"].Status)
}

func TestProcessarPendentesErroDoEmissorMantemPendente(t *testing.T) {
	nfceRepo := novoNFCeRepoMem()
	nfceRepo.docs["n1"] = docPendente("n1", "v1", time.Now())
	lojas := &lojaRepoStub{loja: &entity.Loja{ID: "loja-1", CNPJ: cnpjTeste}}
	emissor := &emissorStub{err: errors.New("timeout")}

	uc := NewUseCase(emissor, nfceRepo, &vendaRepoStub{}, &pagamentoRepoStub{}, lojas, logTeste())
	n, err := uc.ProcessarPendentes(context.Background(), 10)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, entity.NFCePendenteGeracao, nfceRepo.docs["n1"].Status)
}

func TestConsultarComTroco(t *testing.T) {
	nfceRepo := novoNFCeRepoMem()
	doc := docPendente("n1", "v1", time.Now())
	doc.Status = entity.NFCeAutorizada
	nfceRepo.docs["n1"] = doc
	nfceRepo.itens["i1"] = &entity.NFCeItem{ID: "i1", IDNFCe: "n1", NomeProduto: "Camiseta Básica"}

	vendas := &vendaRepoStub{vendas: map[string]*entity.Venda{
		"v1": {ID: "v1", CNPJLoja: cnpjTeste, Status: entity.VendaConcluida, ValorTotal: decimal.NewFromFloat(99.80)},
	}}
	pagamentos := &pagamentoRepoStub{pagamentos: []*entity.Pagamento{
		{ID: "p1", IDVenda: "v1", Forma: entity.FormaDinheiro, Valor: decimal.NewFromInt(100)},
	}}
	lojas := &lojaRepoStub{loja: &entity.Loja{ID: "loja-1", CNPJ: cnpjTeste}}

	uc := NewUseCase(&emissorStub{}, nfceRepo, vendas, pagamentos, lojas, logTeste())
	consulta, err := uc.Consultar(context.Background(), cnpjTeste, "v1")
	require.NoError(t, err)
	require.Equal(t, entity.NFCeAutorizada, consulta.NFCe.Status)
	require.Len(t, consulta.Itens, 1)
	require.Len(t, consulta.Pagamentos, 1)
	require.True(t, consulta.Troco.Equal(decimal.NewFromFloat(0.20)))
}

func TestConsultarVendaDeOutraLoja(t *testing.T) {
	vendas := &vendaRepoStub{vendas: map[string]*entity.Venda{
		"v1": {ID: "v1", CNPJLoja: "99999999000199", Status: entity.VendaConcluida},
	}}
	uc := NewUseCase(&emissorStub{}, novoNFCeRepoMem(), vendas, &pagamentoRepoStub{}, &lojaRepoStub{}, logTeste())

	_, err := uc.Consultar(context.Background(), cnpjTeste, "v1")
	require.ErrorIs(t, err, domain.ErrVendaNaoEncontrada)
}

func TestConsultarSemDocumento(t *testing.T) {
	vendas := &vendaRepoStub{vendas: map[string]*entity.Venda{
		"v1": {ID: "v1", CNPJLoja: cnpjTeste, Status: entity.VendaConcluida},
	}}
	uc := NewUseCase(&emissorStub{}, novoNFCeRepoMem(), vendas, &pagamentoRepoStub{}, &lojaRepoStub{}, logTeste())

	_, err := uc.Consultar(context.Background(), cnpjTeste, "v1")
	require.ErrorIs(t, err, domain.ErrNFCeNaoEncontrada)
}
