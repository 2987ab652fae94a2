package caixa

import (
	"context"

	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// TxRunner executa a função dentro de uma transação, com repositórios
// ligados a ela. Erro da função desfaz tudo.
type TxRunner interface {
	RunCaixa(ctx context.Context, fn func(
		caixaRepo repository.CaixaRepository,
		pagamentoRepo repository.PagamentoRepository,
	) error) error
}
