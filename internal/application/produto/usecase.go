package produto

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
)

// TTL do cache da busca do modal do PDV.
const cacheTTL = 30 * time.Second

// Cache é o porto do cache da busca de produtos (Redis ou noop).
type Cache interface {
	Get(ctx context.Context, chave string) ([]dto.ProdutoResponse, bool, error)
	Set(ctx context.Context, chave string, produtos []dto.ProdutoResponse, ttl time.Duration) error
}

// UseCase busca de produtos e ajuste manual de estoque do retaguarda.
type UseCase struct {
	produtoRepo repository.ProdutoRepository
	lojaRepo    repository.LojaRepository
	cache       Cache
}

// NewUseCase constrói o caso de uso.
func NewUseCase(produtoRepo repository.ProdutoRepository, lojaRepo repository.LojaRepository, cache Cache) *UseCase {
	return &UseCase{produtoRepo: produtoRepo, lojaRepo: lojaRepo, cache: cache}
}

// Buscar lista produtos ativos por nome ou referência para o modal do PDV.
// Passa pelo cache; falha do cache degrada para a consulta direta.
func (uc *UseCase) Buscar(ctx context.Context, cnpjLoja, termo string, limite int) ([]dto.ProdutoResponse, error) {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if limite <= 0 || limite > 50 {
		limite = 20
	}
	loja, err := uc.lojaRepo.GetByCNPJ(cnpjLoja)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrLojaNaoEncontrada
	}

	chave := fmt.Sprintf("produtos:%s:%s:%d", loja.ID, strings.ToLower(termo), limite)
	if cacheado, ok, err := uc.cache.Get(ctx, chave); err == nil && ok {
		return cacheado, nil
	}

	produtos, err := uc.produtoRepo.Buscar(loja.ID, termo, limite)
	if err != nil {
		return nil, err
	}
	out := dto.NovaListaProdutos(produtos)
	_ = uc.cache.Set(ctx, chave, out, cacheTTL)
	return out, nil
}

// AjustarEstoque aplica um ajuste manual (inventário, quebra, recebimento).
// Delta zero é rejeitado; o CHECK do schema bloqueia saldo final negativo.
func (uc *UseCase) AjustarEstoque(ctx context.Context, cnpjLoja, idProduto string, delta decimal.Decimal) (dto.ProdutoResponse, error) {
	if delta.IsZero() {
		return dto.ProdutoResponse{}, domain.ErrEntradaInvalida
	}
	loja, err := uc.lojaRepo.GetByCNPJ(cnpjLoja)
	if err != nil {
		return dto.ProdutoResponse{}, err
	}
	if loja == nil {
		return dto.ProdutoResponse{}, domain.ErrLojaNaoEncontrada
	}

	p, err := uc.produtoRepo.GetByID(idProduto)
	if err != nil {
		return dto.ProdutoResponse{}, err
	}
	if p == nil || p.IDLoja != loja.ID {
		return dto.ProdutoResponse{}, domain.ErrProdutoNaoEncontrado
	}
	if err := uc.produtoRepo.AjustarEstoque(idProduto, delta); err != nil {
		return dto.ProdutoResponse{}, err
	}

	atualizado, err := uc.produtoRepo.GetByID(idProduto)
	if err != nil {
		return dto.ProdutoResponse{}, err
	}
	return dto.NovoProdutoResponse(atualizado), nil
}
