package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/pkg/jwt"
)

// Locals keys para o operador autenticado no Fiber.
const (
	LocalUsuario  = "usuario"
	LocalCNPJLoja = "cnpj_loja"
	LocalPerfil   = "perfil"
)

// AuthMiddleware valida o Bearer Token JWT e extrai usuário, CNPJ da loja e
// perfil para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		usuario, cnpjLoja, perfil, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUsuario, usuario)
		c.Locals(LocalCNPJLoja, cnpjLoja)
		c.Locals(LocalPerfil, perfil)
		return c.Next()
	}
}

// SomenteGerente exige perfil gerente (relatórios, cadastro de vendedor,
// ajuste de estoque, cancelamento posterior).
func SomenteGerente() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPerfil(c) != entity.PerfilGerente {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operação restrita ao gerente"})
		}
		return c.Next()
	}
}

// GetUsuario devolve o usuário do contexto (após o middleware de auth).
func GetUsuario(c *fiber.Ctx) string {
	v := c.Locals(LocalUsuario)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCNPJLoja devolve o CNPJ da loja do contexto (após o middleware de auth).
func GetCNPJLoja(c *fiber.Ctx) string {
	v := c.Locals(LocalCNPJLoja)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetPerfil devolve o perfil do contexto (após o middleware de auth).
func GetPerfil(c *fiber.Ctx) string {
	v := c.Locals(LocalPerfil)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
