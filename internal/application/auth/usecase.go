package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
	"github.com/tu-usuario/pdv-pro/pkg/jwt"
)

// TokenConfig parâmetros de emissão do JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase autentica operadores e administra os vendedores da loja.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	lojaRepo    repository.LojaRepository
	token       TokenConfig
}

// NewUseCase constrói o caso de uso.
func NewUseCase(usuarioRepo repository.UsuarioRepository, lojaRepo repository.LojaRepository, token TokenConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, lojaRepo: lojaRepo, token: token}
}

// LoginResult token emitido e dados do operador autenticado.
type LoginResult struct {
	Token   string
	Usuario string
	Perfil  string
	Loja    *entity.Loja
}

// Login autentica o operador da loja e emite o JWT com usuário, CNPJ e
// perfil. Usuário inexistente e senha errada retornam o mesmo erro.
func (uc *UseCase) Login(ctx context.Context, cnpjLoja, usuario, senha string) (*LoginResult, error) {
	cnpjLoja = soDigitos(cnpjLoja)
	usuario = strings.TrimSpace(usuario)
	if cnpjLoja == "" || usuario == "" || senha == "" {
		return nil, domain.ErrCredenciaisInvalidas
	}

	loja, err := uc.lojaRepo.GetByCNPJ(cnpjLoja)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrCredenciaisInvalidas
	}

	u, err := uc.usuarioRepo.GetByUsuario(cnpjLoja, usuario)
	if err != nil {
		return nil, err
	}
	if u == nil || u.SenhaHash == "" {
		return nil, domain.ErrCredenciaisInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(senha)); err != nil {
		return nil, domain.ErrCredenciaisInvalidas
	}

	token, err := jwt.Generate(uc.token.Secret, u.Usuario, cnpjLoja, u.Perfil, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Usuario: u.Usuario, Perfil: u.Perfil, Loja: loja}, nil
}

// CriarVendedor cadastra um vendedor da loja. Vendedor não tem senha: existe
// para atribuir vendas, não para autenticar — login é sempre do gerente.
func (uc *UseCase) CriarVendedor(ctx context.Context, cnpjLoja, nome string) (*entity.Usuario, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, domain.ErrEntradaInvalida
	}

	existente, err := uc.usuarioRepo.GetByUsuario(cnpjLoja, nome)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrUsuarioJaExiste
	}

	u := &entity.Usuario{
		ID:       uuid.New().String(),
		Usuario:  nome,
		CNPJLoja: cnpjLoja,
		Perfil:   entity.PerfilVendedor,
		CriadoEm: time.Now(),
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListarVendedores lista os operadores da loja.
func (uc *UseCase) ListarVendedores(ctx context.Context, cnpjLoja string) ([]*entity.Usuario, error) {
	return uc.usuarioRepo.ListByLoja(cnpjLoja)
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
