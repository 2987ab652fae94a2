package venda

import (
	"context"

	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação com os repositórios do
// PDV atados à tx. Qualquer erro retornado pela função provoca rollback
// completo: nenhuma operação deixa estoque, venda, pagamento ou NFC-e
// parcialmente gravados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		produtoRepo repository.ProdutoRepository,
		vendaRepo repository.VendaRepository,
		itemRepo repository.ItemVendaRepository,
		pagamentoRepo repository.PagamentoRepository,
		nfceRepo repository.NFCeRepository,
	) error) error
}
