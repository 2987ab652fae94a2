package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pdv-pro/internal/application/auth"
	"github.com/tu-usuario/pdv-pro/internal/application/caixa"
	"github.com/tu-usuario/pdv-pro/internal/application/fiscal"
	"github.com/tu-usuario/pdv-pro/internal/application/produto"
	"github.com/tu-usuario/pdv-pro/internal/application/relatorio"
	"github.com/tu-usuario/pdv-pro/internal/application/venda"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CaixaUC     *caixa.UseCase
	Builder     *venda.BuilderUseCase
	Finalizador *venda.FinalizadorUseCase
	ProdutoUC   *produto.UseCase
	FiscalUC    *fiscal.UseCase
	RelatorioUC *relatorio.UseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Operadores
	protected.Get("/vendedores", authHandler.ListarVendedores)
	protected.Post("/vendedores", SomenteGerente(), authHandler.CriarVendedor)

	// Caixa
	caixaHandler := NewCaixaHandler(deps.CaixaUC)
	cx := protected.Group("/caixa")
	cx.Post("/abrir", caixaHandler.Abrir)
	cx.Get("/aberto", caixaHandler.Aberto)
	cx.Post("/fechar", caixaHandler.Fechar)

	// Vendas
	vendaHandler := NewVendaHandler(deps.Builder, deps.Finalizador)
	vendas := protected.Group("/vendas")
	vendas.Post("/", vendaHandler.Iniciar)
	vendas.Get("/ultimas", vendaHandler.UltimasVendas)
	vendas.Post("/troca", vendaHandler.Troca)
	vendas.Get("/:id", vendaHandler.Carregar)
	vendas.Post("/:id/itens", vendaHandler.AdicionarItem)
	vendas.Delete("/:id/itens/:idItem", vendaHandler.RemoverItem)
	vendas.Post("/:id/desconto", vendaHandler.AplicarDesconto)
	vendas.Post("/:id/finalizar", vendaHandler.Finalizar)
	vendas.Post("/:id/cancelar", vendaHandler.Cancelar)
	vendas.Post("/:id/cancelar-concluida", SomenteGerente(), vendaHandler.CancelarConcluida)

	// Produtos
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos := protected.Group("/produtos")
	produtos.Get("/buscar", produtoHandler.Buscar)
	produtos.Post("/:id/estoque", SomenteGerente(), produtoHandler.AjustarEstoque)

	// NFC-e
	nfceHandler := NewNFCeHandler(deps.FiscalUC)
	nfce := protected.Group("/nfce")
	nfce.Get("/venda/:idVenda", nfceHandler.Consultar)
	nfce.Post("/processar", SomenteGerente(), nfceHandler.ProcessarPendentes)

	// Relatórios (gerente)
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	relatorios := protected.Group("/relatorios", SomenteGerente())
	relatorios.Get("/vendas", relatorioHandler.VendasPorPeriodo)
	relatorios.Get("/vendedores", relatorioHandler.ResumoVendedores)
}
