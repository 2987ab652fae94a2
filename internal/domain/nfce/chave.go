// Package nfce calcula a chave de acesso e a URL de consulta (QR Code) da
// NFC-e. Só a identificação do documento: XML, assinatura e transmissão são
// responsabilidade do emissor externo.
package nfce

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChaveParams parâmetros da chave de acesso (modelo 65, 44 dígitos).
type ChaveParams struct {
	UF      string    // código IBGE da UF, 2 dígitos
	Emissao time.Time // usa AAMM
	CNPJ    string    // 14 dígitos, só números
	Serie   string    // 3 dígitos
	Numero  int64     // número do documento (nNF, 9 dígitos)
	Codigo  int64     // código numérico (cNF, 8 dígitos)
}

// Modelo do documento fiscal: 65 = NFC-e.
const modeloNFCe = "65"

// Emissão normal.
const tipoEmissaoNormal = "1"

// Chave monta a chave de acesso de 44 dígitos:
// cUF(2) AAMM(4) CNPJ(14) mod(2) serie(3) nNF(9) tpEmis(1) cNF(8) DV(1).
// O dígito verificador é módulo 11 com pesos 2..9 da direita para a esquerda.
func Chave(p ChaveParams) (string, error) {
	cnpj := soDigitos(p.CNPJ)
	if len(cnpj) != 14 {
		return "", fmt.Errorf("chave de acesso: CNPJ deve ter 14 dígitos, tem %d", len(cnpj))
	}
	uf := soDigitos(p.UF)
	if len(uf) != 2 {
		return "", fmt.Errorf("chave de acesso: UF deve ter 2 dígitos")
	}
	base := uf +
		p.Emissao.Format("0601") + // AAMM
		cnpj +
		modeloNFCe +
		padEsquerda(soDigitos(p.Serie), 3) +
		fmt.Sprintf("%09d", p.Numero) +
		tipoEmissaoNormal +
		fmt.Sprintf("%08d", p.Codigo)
	if len(base) != 43 {
		return "", fmt.Errorf("chave de acesso: base com %d dígitos, esperado 43", len(base))
	}
	return base + digitoVerificador(base), nil
}

// digitoVerificador calcula o DV módulo 11 sobre os 43 dígitos da chave.
func digitoVerificador(base string) string {
	peso := 2
	soma := 0
	for i := len(base) - 1; i >= 0; i-- {
		soma += int(base[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}
	resto := soma % 11
	dv := 11 - resto
	if resto < 2 {
		dv = 0
	}
	return fmt.Sprintf("%d", dv)
}

// URLConsulta monta a URL do QR Code de consulta da NFC-e.
// Formato: <base>?p=<chave>|<versão>|<ambiente>|<valor sem separadores>.
func URLConsulta(baseURL, chave string, ambiente int, valorTotal decimal.Decimal) string {
	valor := strings.ReplaceAll(valorTotal.Round(2).StringFixed(2), ".", "")
	return fmt.Sprintf("%s?p=%s|2|%d|%s", baseURL, chave, ambiente, valor)
}

func padEsquerda(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

func soDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
