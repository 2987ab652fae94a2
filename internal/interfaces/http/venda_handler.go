package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/application/venda"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
)

// VendaHandler trata o ciclo de vida da venda no PDV: iniciar, montar,
// finalizar, trocar e cancelar.
type VendaHandler struct {
	builder     *venda.BuilderUseCase
	finalizador *venda.FinalizadorUseCase
}

// NewVendaHandler constrói o handler.
func NewVendaHandler(builder *venda.BuilderUseCase, finalizador *venda.FinalizadorUseCase) *VendaHandler {
	return &VendaHandler{builder: builder, finalizador: finalizador}
}

// Iniciar godoc
// @Summary      Iniciar venda (ou retomar a EM_ABERTO do vendedor)
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VendaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vendas [post]
func (h *VendaHandler) Iniciar(c *fiber.Ctx) error {
	v, err := h.builder.Iniciar(c.Context(), GetCNPJLoja(c), GetUsuario(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaVendaResponse(v, nil))
}

// Carregar godoc
// @Summary      Carregar venda com itens
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.VendaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id} [get]
func (h *VendaHandler) Carregar(c *fiber.Ctx) error {
	v, itens, err := h.builder.Carregar(c.Context(), GetCNPJLoja(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaVendaResponse(v, itens))
}

// AdicionarItem godoc
// @Summary      Adicionar item à venda
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da venda"
// @Param        body  body  dto.AdicionarItemRequest  true  "Produto e quantidade"
// @Success      201   {object}  dto.ItemVendaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/itens [post]
func (h *VendaHandler) AdicionarItem(c *fiber.Ctx) error {
	var in dto.AdicionarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	var (
		item *entity.ItemVenda
		err  error
	)
	if in.IDProduto != "" {
		item, err = h.builder.AdicionarItem(c.Context(), GetCNPJLoja(c), c.Params("id"), in.IDProduto, in.Quantidade)
	} else {
		item, err = h.builder.AdicionarItemPorCodigo(c.Context(), GetCNPJLoja(c), c.Params("id"), in.Codigo, in.Quantidade)
	}
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemVendaResponse{
		ID:            item.ID,
		IDProduto:     item.IDProduto,
		Sequencial:    item.Sequencial,
		Quantidade:    item.Quantidade,
		PrecoUnitario: item.PrecoUnitario,
		ValorTotal:    item.ValorTotal,
	})
}

// RemoverItem godoc
// @Summary      Remover item da venda (estorna o estoque)
// @Tags         vendas
// @Security     Bearer
// @Param        id      path  string  true  "ID da venda"
// @Param        idItem  path  string  true  "ID do item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/itens/{idItem} [delete]
func (h *VendaHandler) RemoverItem(c *fiber.Ctx) error {
	if err := h.builder.RemoverItem(c.Context(), GetCNPJLoja(c), c.Params("id"), c.Params("idItem")); err != nil {
		return respondErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AplicarDesconto godoc
// @Summary      Aplicar desconto à venda
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID da venda"
// @Param        body  body  dto.DescontoRequest  true  "Tipo e valor"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/desconto [post]
func (h *VendaHandler) AplicarDesconto(c *fiber.Ctx) error {
	var in dto.DescontoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	tipo, err := venda.ParseTipoDesconto(in.Tipo)
	if err != nil {
		return respondErro(c, err)
	}
	if err := h.builder.AplicarDesconto(c.Context(), GetCNPJLoja(c), c.Params("id"), in.Valor, tipo); err != nil {
		return respondErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalizar godoc
// @Summary      Finalizar venda (pagamentos, conclusão e NFC-e)
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da venda"
// @Param        body  body  dto.FinalizarVendaRequest  true  "Pagamentos"
// @Success      200   {object}  dto.FinalizarVendaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/finalizar [post]
func (h *VendaHandler) Finalizar(c *fiber.Ctx) error {
	var in dto.FinalizarVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	pagamentos := make([]venda.PagamentoInput, 0, len(in.Pagamentos))
	for _, p := range in.Pagamentos {
		forma, err := entity.ParseFormaPagamento(p.Forma)
		if err != nil {
			return respondErro(c, err)
		}
		pagamentos = append(pagamentos, venda.PagamentoInput{Forma: forma, Valor: p.Valor})
	}
	out, err := h.finalizador.Finalizar(c.Context(), GetCNPJLoja(c), GetUsuario(c), c.Params("id"), venda.FinalizarInput{
		Pagamentos: pagamentos,
		Vendedor:   in.Vendedor,
		EmitirNFCe: in.EmitirNFCe,
	})
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FinalizarVendaResponse{
		Venda:     dto.NovaVendaResponse(out.Venda, nil),
		TotalPago: out.TotalPago,
		Troco:     out.Troco,
	})
}

// Troca godoc
// @Summary      Processar troca de produto
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TrocaRequest  true  "Produtos da troca"
// @Success      201   {object}  dto.VendaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendas/troca [post]
func (h *VendaHandler) Troca(c *fiber.Ctx) error {
	var in dto.TrocaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	input := venda.TrocaInput{
		IDProdutoEntrada:  in.IDProdutoEntrada,
		QuantidadeEntrada: in.QuantidadeEntrada,
		IDProdutoSaida:    in.IDProdutoSaida,
		QuantidadeSaida:   in.QuantidadeSaida,
		DiferencaEsperada: in.DiferencaEsperada,
	}
	if in.Forma != "" {
		forma, err := entity.ParseFormaPagamento(in.Forma)
		if err != nil {
			return respondErro(c, err)
		}
		input.Forma = forma
	}
	v, err := h.builder.ProcessarTroca(c.Context(), GetCNPJLoja(c), GetUsuario(c), input)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NovaVendaResponse(v, nil))
}

// Cancelar godoc
// @Summary      Cancelar venda corrente (estorna estoque; solicita cancelamento da NFC-e autorizada)
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.VendaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/cancelar [post]
func (h *VendaHandler) Cancelar(c *fiber.Ctx) error {
	v, err := h.finalizador.Cancelar(c.Context(), GetCNPJLoja(c), GetUsuario(c), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaVendaResponse(v, nil))
}

// CancelarConcluida godoc
// @Summary      Cancelar venda concluída a partir do histórico (gerente)
// @Tags         vendas
// @Security     Bearer
// @Param        id  path  string  true  "ID da venda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/cancelar-concluida [post]
func (h *VendaHandler) CancelarConcluida(c *fiber.Ctx) error {
	if err := h.finalizador.CancelarConcluida(c.Context(), GetCNPJLoja(c), c.Params("id")); err != nil {
		return respondErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UltimasVendas godoc
// @Summary      Listar últimas vendas da loja
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        limite  query  int  false  "Quantidade"  default(7)
// @Success      200  {array}  dto.VendaResumoResponse
// @Router       /api/vendas/ultimas [get]
func (h *VendaHandler) UltimasVendas(c *fiber.Ctx) error {
	limite := c.QueryInt("limite", 7)
	resumos, err := h.builder.UltimasVendas(c.Context(), GetCNPJLoja(c), limite)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.NovaListaResumos(resumos))
}
