package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/domain"
)

// respondErro traduz o erro de domínio para o status HTTP e o corpo padrão.
// Erros fora da taxonomia viram 500 com código INTERNO.
func respondErro(c *fiber.Ctx, err error) error {
	status := statusDe(err)
	body := dto.ErrorResponse{Code: domain.Code(err), Message: err.Error()}
	if status == fiber.StatusInternalServerError {
		// Detalhe de infraestrutura não vaza para o cliente.
		body.Message = "erro interno"
	}
	return c.Status(status).JSON(body)
}

func statusDe(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida),
		errors.Is(err, domain.ErrQuantidadeInvalida),
		errors.Is(err, domain.ErrValorAberturaInvalido),
		errors.Is(err, domain.ErrDescontoInvalido),
		errors.Is(err, domain.ErrFormaPagamentoInvalida),
		errors.Is(err, domain.ErrCodigoVazio):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrEstoqueInsuficiente),
		errors.Is(err, domain.ErrPagamentoInsuficiente),
		errors.Is(err, domain.ErrNenhumPagamento),
		errors.Is(err, domain.ErrVendaNaoAberta),
		errors.Is(err, domain.ErrVendaJaCancelada),
		errors.Is(err, domain.ErrVendaSemItens),
		errors.Is(err, domain.ErrVendaEmAberto),
		errors.Is(err, domain.ErrCaixaJaAberto),
		errors.Is(err, domain.ErrNenhumCaixaAberto),
		errors.Is(err, domain.ErrDiferencaNaoConfere),
		errors.Is(err, domain.ErrSemItensParaEstornar),
		errors.Is(err, domain.ErrNFCeJaEmitida),
		errors.Is(err, domain.ErrUsuarioJaExiste):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNaoEncontrado),
		errors.Is(err, domain.ErrProdutoNaoEncontrado),
		errors.Is(err, domain.ErrVendaNaoEncontrada),
		errors.Is(err, domain.ErrItemNaoEncontrado),
		errors.Is(err, domain.ErrProdutosTrocaNaoEncontrados),
		errors.Is(err, domain.ErrNFCeNaoEncontrada),
		errors.Is(err, domain.ErrUsuarioNaoEncontrado),
		errors.Is(err, domain.ErrLojaNaoEncontrada):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNaoAutorizado),
		errors.Is(err, domain.ErrCredenciaisInvalidas):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
