package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/pdv-pro/internal/application/auth"
	"github.com/tu-usuario/pdv-pro/internal/application/caixa"
	"github.com/tu-usuario/pdv-pro/internal/application/fiscal"
	"github.com/tu-usuario/pdv-pro/internal/application/produto"
	"github.com/tu-usuario/pdv-pro/internal/application/relatorio"
	"github.com/tu-usuario/pdv-pro/internal/application/venda"
	"github.com/tu-usuario/pdv-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/pdv-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/pdv-pro/internal/infrastructure/sefaz"
	httpRouter "github.com/tu-usuario/pdv-pro/internal/interfaces/http"
	"github.com/tu-usuario/pdv-pro/pkg/config"
	"github.com/tu-usuario/pdv-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migração do banco")
	}

	produtoRepo := postgres.NewProdutoRepository(pool)
	vendaRepo := postgres.NewVendaRepository(pool)
	itemRepo := postgres.NewItemVendaRepository(pool)
	pagamentoRepo := postgres.NewPagamentoRepository(pool)
	caixaRepo := postgres.NewCaixaRepository(pool)
	nfceRepo := postgres.NewNFCeRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	lojaRepo := postgres.NewLojaRepository(pool)
	relatorioRepo := postgres.NewRelatorioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache da busca de produtos: Redis quando configurado, senão noop.
	var produtoCache produto.Cache = cache.NoopProdutoCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisProdutoCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis indisponível, cache de produtos desativado")
		} else {
			produtoCache = redisCache
			defer redisCache.Close()
		}
	}

	// Emissor de NFC-e: serviço HTTP quando configurado, senão simulado
	// (autoriza localmente com chave real de homologação).
	var emissor fiscal.Emissor
	if cfg.NFCe.EmissorURL != "" {
		emissor = sefaz.NewClient(cfg.NFCe.EmissorURL)
	} else {
		log.Info().Msg("NFCE_EMISSOR_URL vazio, usando emissor simulado")
		emissor = sefaz.NewEmissorSimulado(cfg.NFCe.UF, cfg.NFCe.Serie, cfg.NFCe.ConsultaQR)
	}

	authUC := auth.NewUseCase(usuarioRepo, lojaRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	caixaUC := caixa.NewUseCase(txRunner, caixaRepo)
	builderUC := venda.NewBuilderUseCase(txRunner, vendaRepo, itemRepo, caixaRepo, lojaRepo)
	finalizadorUC := venda.NewFinalizadorUseCase(txRunner, lojaRepo)
	produtoUC := produto.NewUseCase(produtoRepo, lojaRepo, produtoCache)
	fiscalUC := fiscal.NewUseCase(emissor, nfceRepo, vendaRepo, pagamentoRepo, lojaRepo, log)
	relatorioUC := relatorio.NewUseCase(relatorioRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CaixaUC:     caixaUC,
		Builder:     builderUC,
		Finalizador: finalizadorUC,
		ProdutoUC:   produtoUC,
		FiscalUC:    fiscalUC,
		RelatorioUC: relatorioUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	// Transmissão periódica das NFC-e pendentes.
	emissorCtx, cancelEmissor := context.WithCancel(ctx)
	defer cancelEmissor()
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-emissorCtx.Done():
				return
			case <-ticker.C:
				if _, err := fiscalUC.ProcessarPendentes(emissorCtx, 20); err != nil {
					log.Error().Err(err).Msg("processamento de NFC-e pendentes")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	cancelEmissor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
