package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/application/fiscal"
)

// NFCeHandler consulta o documento fiscal de uma venda e dispara o
// processamento dos pendentes.
type NFCeHandler struct {
	uc *fiscal.UseCase
}

// NewNFCeHandler constrói o handler.
func NewNFCeHandler(uc *fiscal.UseCase) *NFCeHandler {
	return &NFCeHandler{uc: uc}
}

// Consultar godoc
// @Summary      Consultar NFC-e de uma venda
// @Tags         nfce
// @Security     Bearer
// @Produce      json
// @Param        idVenda  path  string  true  "ID da venda"
// @Success      200  {object}  dto.NFCeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/nfce/venda/{idVenda} [get]
func (h *NFCeHandler) Consultar(c *fiber.Ctx) error {
	out, err := h.uc.Consultar(c.Context(), GetCNPJLoja(c), c.Params("idVenda"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaNFCeResponse(out))
}

// ProcessarPendentes godoc
// @Summary      Transmitir NFC-e pendentes (gerente)
// @Tags         nfce
// @Security     Bearer
// @Produce      json
// @Param        limite  query  int  false  "Máximo por rodada"  default(20)
// @Success      200  {object}  map[string]int
// @Router       /api/nfce/processar [post]
func (h *NFCeHandler) ProcessarPendentes(c *fiber.Ctx) error {
	n, err := h.uc.ProcessarPendentes(c.Context(), c.QueryInt("limite", 20))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(fiber.Map{"processados": n})
}
