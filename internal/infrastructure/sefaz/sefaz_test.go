package sefaz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

func lojaTeste() *entity.Loja {
	return &entity.Loja{
		ID:                "loja-1",
		CNPJ:              "12345678000195",
		NomeFantasia:      "Loja Teste",
		RazaoSocial:       "Loja Teste LTDA",
		Endereco:          "Rua das Flores, 100",
		Cidade:            "São Paulo",
		UF:                "SP",
		InscricaoEstadual: "110042490114",
		AmbienteNFCe:      entity.NFCeAmbienteHomologacao,
	}
}

func documentoTeste() (*entity.NFCe, []*entity.NFCeItem) {
	doc := &entity.NFCe{
		ID:         "nfce-1",
		IDVenda:    "venda-1",
		IDLoja:     "loja-1",
		Ambiente:   entity.NFCeAmbienteHomologacao,
		Status:     entity.NFCePendenteGeracao,
		ValorTotal: decimal.NewFromFloat(99.80),
	}
	itens := []*entity.NFCeItem{
		{
			ID:            "item-1",
			IDNFCe:        "nfce-1",
			IDProduto:     "prod-1",
			NomeProduto:   "Camiseta Básica",
			Quantidade:    decimal.NewFromInt(2),
			ValorUnitario: decimal.NewFromFloat(49.90),
			ValorTotal:    decimal.NewFromFloat(99.80),
			NCM:           "61091000",
			CFOP:          "5102",
			UnidadeMedida: "UN",
		},
	}
	return doc, itens
}

func TestBuildNFCeXML(t *testing.T) {
	doc, itens := documentoTeste()

	payload, err := BuildNFCeXML(lojaTeste(), doc, itens)
	require.NoError(t, err)

	x := etree.NewDocument()
	require.NoError(t, x.ReadFromBytes(payload))
	root := x.Root()
	require.Equal(t, "NFe", root.Tag)

	inf := root.FindElement("infNFe")
	require.NotNil(t, inf)
	require.Equal(t, "4.00", inf.SelectAttrValue("versao", ""))
	require.Equal(t, "65", inf.FindElement("ide/mod").Text())
	require.Equal(t, "2", inf.FindElement("ide/tpAmb").Text())
	require.Equal(t, "12345678000195", inf.FindElement("emit/CNPJ").Text())

	dets := inf.FindElements("det")
	require.Len(t, dets, 1)
	require.Equal(t, "1", dets[0].SelectAttrValue("nItem", ""))
	require.Equal(t, "Camiseta Básica", dets[0].FindElement("prod/xProd").Text())
	require.Equal(t, "2.0000", dets[0].FindElement("prod/qCom").Text())
	require.Equal(t, "49.90", dets[0].FindElement("prod/vUnCom").Text())

	require.Equal(t, "99.80", inf.FindElement("total/ICMSTot/vNF").Text())
}

func TestBuildNFCeXMLSemItens(t *testing.T) {
	doc, _ := documentoTeste()

	_, err := BuildNFCeXML(lojaTeste(), doc, nil)
	require.Error(t, err)
}

func TestEmissorSimuladoAutoriza(t *testing.T) {
	e := NewEmissorSimulado("35", "1", "https://www.homologacao.nfce.fazenda.sp.gov.br/qrcode")
	doc, itens := documentoTeste()

	aut, err := e.Emitir(context.Background(), lojaTeste(), doc, itens)
	require.NoError(t, err)
	require.False(t, aut.Rejeitada)

	require.Len(t, aut.ChaveAcesso, 44)
	// cUF + AAMM + CNPJ + modelo 65.
	require.Equal(t, "35", aut.ChaveAcesso[:2])
	require.Equal(t, "12345678000195", aut.ChaveAcesso[6:20])
	require.Equal(t, "65", aut.ChaveAcesso[20:22])

	require.Contains(t, aut.URLConsulta, aut.ChaveAcesso)
	require.Contains(t, aut.URLConsulta, "|2|")
	require.NotEmpty(t, aut.Protocolo)
}

func TestEmissorSimuladoNumeracaoCrescente(t *testing.T) {
	e := NewEmissorSimulado("35", "1", "https://example.test/qrcode")
	doc, itens := documentoTeste()

	a1, err := e.Emitir(context.Background(), lojaTeste(), doc, itens)
	require.NoError(t, err)
	a2, err := e.Emitir(context.Background(), lojaTeste(), doc, itens)
	require.NoError(t, err)
	require.NotEqual(t, a1.ChaveAcesso, a2.ChaveAcesso)
}

func TestClientEmitirAutorizada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/nfce/emitir", r.URL.Path)
		require.Equal(t, "application/xml", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"autorizada": true,
			"chave_acesso": "3525891234567800019565001000001234100000017",
			"url_consulta": "https://example.test/qrcode?p=x",
			"protocolo": "135250000000001"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	doc, itens := documentoTeste()

	aut, err := c.Emitir(context.Background(), lojaTeste(), doc, itens)
	require.NoError(t, err)
	require.False(t, aut.Rejeitada)
	require.Equal(t, "135250000000001", aut.Protocolo)
}

func TestClientEmitirRejeitada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"autorizada": false, "motivo": "Rejeição 539: duplicidade de NF-e"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	doc, itens := documentoTeste()

	aut, err := c.Emitir(context.Background(), lojaTeste(), doc, itens)
	require.NoError(t, err)
	require.True(t, aut.Rejeitada)
	require.Contains(t, aut.Motivo, "539")
}

func TestClientEmitirStatusInesperado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	doc, itens := documentoTeste()

	_, err := c.Emitir(context.Background(), lojaTeste(), doc, itens)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "502"))
}
