package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/caixa"
	"github.com/tu-usuario/pdv-pro/internal/application/dto"
)

// CaixaHandler trata abertura, consulta e fechamento da sessão de caixa.
type CaixaHandler struct {
	uc *caixa.UseCase
}

// NewCaixaHandler constrói o handler.
func NewCaixaHandler(uc *caixa.UseCase) *CaixaHandler {
	return &CaixaHandler{uc: uc}
}

// Abrir godoc
// @Summary      Abrir caixa
// @Tags         caixa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AbrirCaixaRequest  true  "Fundo de troco"
// @Success      201   {object}  dto.CaixaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *fiber.Ctx) error {
	var in dto.AbrirCaixaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Abrir(c.Context(), GetCNPJLoja(c), GetUsuario(c), in.ValorAbertura)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NovoCaixaResponse(out))
}

// Aberto godoc
// @Summary      Consultar caixa aberto
// @Tags         caixa
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CaixaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/caixa/aberto [get]
func (h *CaixaHandler) Aberto(c *fiber.Ctx) error {
	out, err := h.uc.Aberto(c.Context(), GetCNPJLoja(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovoCaixaResponse(out))
}

// Fechar godoc
// @Summary      Fechar caixa
// @Tags         caixa
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumoCaixaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *fiber.Ctx) error {
	out, err := h.uc.Fechar(c.Context(), GetCNPJLoja(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovoResumoCaixaResponse(out))
}
