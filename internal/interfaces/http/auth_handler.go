package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/auth"
	"github.com/tu-usuario/pdv-pro/internal/application/dto"
)

// AuthHandler trata login e cadastro de vendedores.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login do operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in.CNPJLoja, in.Usuario, in.Senha)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovoLoginResponse(out))
}

// CriarVendedor godoc
// @Summary      Cadastrar vendedor
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarVendedorRequest  true  "Nome do vendedor"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendedores [post]
func (h *AuthHandler) CriarVendedor(c *fiber.Ctx) error {
	var in dto.CriarVendedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	u, err := h.uc.CriarVendedor(c.Context(), GetCNPJLoja(c), in.Nome)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UsuarioResponse{ID: u.ID, Usuario: u.Usuario, Perfil: u.Perfil})
}

// ListarVendedores godoc
// @Summary      Listar operadores da loja
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/vendedores [get]
func (h *AuthHandler) ListarVendedores(c *fiber.Ctx) error {
	usuarios, err := h.uc.ListarVendedores(c.Context(), GetCNPJLoja(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaListaUsuarios(usuarios))
}
