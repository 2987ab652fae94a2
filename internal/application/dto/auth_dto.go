package dto

import (
	"github.com/tu-usuario/pdv-pro/internal/application/auth"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// LoginRequest entrada do login do operador.
type LoginRequest struct {
	CNPJLoja string `json:"cnpj_loja"`
	Usuario  string `json:"usuario"`
	Senha    string `json:"senha"`
}

// LoginResponse token emitido e identificação da loja.
type LoginResponse struct {
	Token        string `json:"token"`
	Usuario      string `json:"usuario"`
	Perfil       string `json:"perfil"`
	NomeFantasia string `json:"nome_fantasia"`
	CNPJLoja     string `json:"cnpj_loja"`
}

// CriarVendedorRequest entrada do cadastro de vendedor.
type CriarVendedorRequest struct {
	Nome string `json:"nome"`
}

// UsuarioResponse saída de operador.
type UsuarioResponse struct {
	ID      string `json:"id"`
	Usuario string `json:"usuario"`
	Perfil  string `json:"perfil"`
}

// NovoLoginResponse converte o resultado do login.
func NovoLoginResponse(r *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Token:        r.Token,
		Usuario:      r.Usuario,
		Perfil:       r.Perfil,
		NomeFantasia: r.Loja.NomeFantasia,
		CNPJLoja:     r.Loja.CNPJ,
	}
}

// NovaListaUsuarios converte a listagem de operadores.
func NovaListaUsuarios(usuarios []*entity.Usuario) []UsuarioResponse {
	out := make([]UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, UsuarioResponse{ID: u.ID, Usuario: u.Usuario, Perfil: u.Perfil})
	}
	return out
}
