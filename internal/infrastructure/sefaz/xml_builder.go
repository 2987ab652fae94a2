package sefaz

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// Namespace do leiaute NF-e/NFC-e 4.00.
const nsNFe = "http://www.portalfiscal.inf.br/nfe"

// BuildNFCeXML monta o XML da NFC-e (modelo 65, leiaute 4.00) a enviar ao
// serviço emissor. A chave de acesso, numeração e assinatura são atribuídas
// pelo emissor; por isso infNFe vai sem o atributo Id.
func BuildNFCeXML(loja *entity.Loja, doc *entity.NFCe, itens []*entity.NFCeItem) ([]byte, error) {
	if loja == nil || doc == nil {
		return nil, fmt.Errorf("sefaz: loja e documento são obrigatórios")
	}
	if len(itens) == 0 {
		return nil, fmt.Errorf("sefaz: documento sem itens")
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	nfe := x.CreateElement("NFe")
	nfe.CreateAttr("xmlns", nsNFe)
	inf := nfe.CreateElement("infNFe")
	inf.CreateAttr("versao", "4.00")

	ide := inf.CreateElement("ide")
	ide.CreateElement("mod").SetText("65")
	ide.CreateElement("tpAmb").SetText(strconv.Itoa(doc.Ambiente))
	ide.CreateElement("natOp").SetText("VENDA AO CONSUMIDOR")
	ide.CreateElement("dhEmi").SetText(time.Now().Format(time.RFC3339))

	emit := inf.CreateElement("emit")
	emit.CreateElement("CNPJ").SetText(loja.CNPJ)
	emit.CreateElement("xNome").SetText(loja.RazaoSocial)
	if loja.InscricaoEstadual != "" {
		emit.CreateElement("IE").SetText(loja.InscricaoEstadual)
	}
	ender := emit.CreateElement("enderEmit")
	if loja.Endereco != "" {
		ender.CreateElement("xLgr").SetText(loja.Endereco)
	}
	if loja.Cidade != "" {
		ender.CreateElement("xMun").SetText(loja.Cidade)
	}
	ender.CreateElement("UF").SetText(loja.UF)

	for i, it := range itens {
		det := inf.CreateElement("det")
		det.CreateAttr("nItem", strconv.Itoa(i+1))
		prod := det.CreateElement("prod")
		prod.CreateElement("cProd").SetText(it.IDProduto)
		prod.CreateElement("xProd").SetText(it.NomeProduto)
		if it.NCM != "" {
			prod.CreateElement("NCM").SetText(it.NCM)
		}
		if it.CFOP != "" {
			prod.CreateElement("CFOP").SetText(it.CFOP)
		}
		prod.CreateElement("uCom").SetText(it.UnidadeMedida)
		prod.CreateElement("qCom").SetText(it.Quantidade.StringFixed(4))
		prod.CreateElement("vUnCom").SetText(it.ValorUnitario.StringFixed(2))
		prod.CreateElement("vProd").SetText(it.ValorTotal.StringFixed(2))
	}

	total := inf.CreateElement("total")
	icmsTot := total.CreateElement("ICMSTot")
	icmsTot.CreateElement("vNF").SetText(doc.ValorTotal.StringFixed(2))

	x.Indent(2)
	return x.WriteToBytes()
}
