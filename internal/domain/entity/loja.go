package entity

import "time"

// Loja identifica a loja emitente. A identidade da loja (CNPJ) é parâmetro
// explícito em toda operação do core; nunca estado ambiente do processo.
type Loja struct {
	ID                string
	CNPJ              string // só dígitos
	NomeFantasia      string
	RazaoSocial       string
	Endereco          string
	Cidade            string
	UF                string
	InscricaoEstadual string
	AmbienteNFCe      int // 1 = produção, 2 = homologação
	CriadoEm          time.Time
}

// Perfis de usuário.
const (
	PerfilGerente  = "gerente"
	PerfilVendedor = "vendedor"
)

// Usuario é um operador do PDV vinculado a uma loja.
type Usuario struct {
	ID        string
	Usuario   string
	CNPJLoja  string
	SenhaHash string
	Perfil    string
	CriadoEm  time.Time
}
