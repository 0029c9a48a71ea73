package router

import (
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/config"
	"github.com/Cxldas/Sistema-de-estoque/internal/handler"
	"github.com/Cxldas/Sistema-de-estoque/internal/middleware"
	"github.com/Cxldas/Sistema-de-estoque/internal/repository"
	"github.com/Cxldas/Sistema-de-estoque/internal/service"
	"github.com/Cxldas/Sistema-de-estoque/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New assembles the full engine: repositories over the injected db, services
// over repositories, handlers over services, and the route tree on top.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Order matters: request id before logging, recovery before handlers
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	movimentacaoRepo := repository.NewMovimentacaoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg, dispatcher)
	produtoSvc := service.NewProdutoService(produtoRepo, cfg.LimiarBaixoEstoque)
	movimentacaoSvc := service.NewMovimentacaoService(produtoRepo, movimentacaoRepo)
	relatorioSvc := service.NewRelatorioService(produtoRepo, movimentacaoRepo, cfg.LimiarBaixoEstoque)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	movimentacoesH := handler.NewMovimentacoesHandler(movimentacaoSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Registrar)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/forgot-password", authH.EsqueciSenha)
		auth.POST("/reset-password", authH.RedefinirSenha)
	}

	// Protected routes: token resolves to a live user record on every request
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, usuarioRepo)
	protected := api.Group("", jwtMW)
	{
		protected.GET("/auth/me", authH.Me)

		// User management, admin only
		usuarios := protected.Group("/usuarios", middleware.RequireAdmin())
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Criar)
			usuarios.DELETE("/:id", usuariosH.Excluir)
		}

		// Catalog routes take any authenticated user, no role restriction
		produtos := protected.Group("/produtos")
		{
			produtos.GET("", produtosH.Listar)
			produtos.GET("/baixo-estoque", produtosH.BaixoEstoque)
			produtos.GET("/:id", produtosH.ObterPorID)
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Excluir)
		}

		movimentacoes := protected.Group("/movimentacoes")
		{
			movimentacoes.GET("", movimentacoesH.Listar)
			movimentacoes.POST("", movimentacoesH.Registrar)
			movimentacoes.GET("/historico/:produto_id", movimentacoesH.Historico)
		}

		relatorios := protected.Group("/relatorios")
		{
			relatorios.GET("/dashboard", relatoriosH.Dashboard)
			relatorios.GET("/export", relatoriosH.ExportCSV)
			relatorios.GET("/export-pdf", relatoriosH.ExportPDF)
		}
	}

	// Swagger UI is only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
