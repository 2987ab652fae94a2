package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/application/produto"
)

// ProdutoHandler trata a busca do PDV e o ajuste manual de estoque.
type ProdutoHandler struct {
	uc *produto.UseCase
}

// NewProdutoHandler constrói o handler.
func NewProdutoHandler(uc *produto.UseCase) *ProdutoHandler {
	return &ProdutoHandler{uc: uc}
}

// Buscar godoc
// @Summary      Buscar produtos por nome ou referência
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        termo   query  string  true   "Termo de busca"
// @Param        limite  query  int     false  "Quantidade"  default(20)
// @Success      200  {array}  dto.ProdutoResponse
// @Router       /api/produtos/buscar [get]
func (h *ProdutoHandler) Buscar(c *fiber.Ctx) error {
	out, err := h.uc.Buscar(c.Context(), GetCNPJLoja(c), c.Query("termo"), c.QueryInt("limite", 20))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}

// AjustarEstoque godoc
// @Summary      Ajustar estoque manualmente (gerente)
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.AjusteEstoqueRequest  true  "Delta do ajuste"
// @Success      200   {object}  dto.ProdutoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/estoque [post]
func (h *ProdutoHandler) AjustarEstoque(c *fiber.Ctx) error {
	var in dto.AjusteEstoqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AjustarEstoque(c.Context(), GetCNPJLoja(c), c.Params("id"), in.Delta)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(out)
}
