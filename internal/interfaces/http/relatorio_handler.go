package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/application/relatorio"
)

// RelatorioHandler relatórios do retaguarda (gerente).
type RelatorioHandler struct {
	uc *relatorio.UseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *relatorio.UseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// datas em query string no formato AAAA-MM-DD; fim é inclusivo (fim do dia).
func periodoDe(c *fiber.Ctx) (time.Time, time.Time, bool) {
	inicio, err := time.Parse("2006-01-02", c.Query("inicio"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	fim, err := time.Parse("2006-01-02", c.Query("fim"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return inicio, fim.Add(24*time.Hour - time.Nanosecond), true
}

// VendasPorPeriodo godoc
// @Summary      Relatório de vendas por período
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        inicio  query  string  true  "Data inicial (AAAA-MM-DD)"
// @Param        fim     query  string  true  "Data final (AAAA-MM-DD)"
// @Success      200  {array}  dto.VendaPeriodoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/vendas [get]
func (h *RelatorioHandler) VendasPorPeriodo(c *fiber.Ctx) error {
	inicio, fim, ok := periodoDe(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ENTRADA_INVALIDA", Message: "inicio e fim no formato AAAA-MM-DD"})
	}
	out, err := h.uc.VendasPorPeriodo(c.Context(), GetCNPJLoja(c), inicio, fim)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaListaVendasPeriodo(out))
}

// ResumoVendedores godoc
// @Summary      Resumo de vendas por vendedor no período
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        inicio  query  string  true  "Data inicial (AAAA-MM-DD)"
// @Param        fim     query  string  true  "Data final (AAAA-MM-DD)"
// @Success      200  {array}  dto.ResumoVendedorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/vendedores [get]
func (h *RelatorioHandler) ResumoVendedores(c *fiber.Ctx) error {
	inicio, fim, ok := periodoDe(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ENTRADA_INVALIDA", Message: "inicio e fim no formato AAAA-MM-DD"})
	}
	out, err := h.uc.ResumoVendedores(c.Context(), GetCNPJLoja(c), inicio, fim)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaListaResumoVendedores(out))
}
