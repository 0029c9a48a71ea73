package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/config"
	"github.com/Cxldas/Sistema-de-estoque/internal/dto"
	"github.com/Cxldas/Sistema-de-estoque/internal/handler"
	"github.com/Cxldas/Sistema-de-estoque/internal/middleware"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"
	"github.com/Cxldas/Sistema-de-estoque/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	// Same wire format as cmd/server: preco as a JSON number, not a string.
	decimal.MarshalJSONWithoutQuotes = true
}

// ── In-memory repositories ───────────────────────────────────────────────────

type memUsuarioRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.Usuario
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) FindByResetToken(_ context.Context, token string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUsuarioRepo) SetResetToken(_ context.Context, id uuid.UUID, token string, expira time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpira = &expira
	return nil
}

func (r *memUsuarioRepo) RedefinirSenha(_ context.Context, id uuid.UUID, senhaHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.SenhaHash = senhaHash
	u.ResetToken = nil
	u.ResetTokenExpira = nil
	return nil
}

func (r *memUsuarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

type memProdutoRepo struct {
	mu       sync.Mutex
	produtos map[uuid.UUID]*model.Produto
}

func (r *memProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.produtos[p.ID] = p
	return nil
}

func (r *memProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProdutoRepo) List(_ context.Context) ([]model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *memProdutoRepo) Updates(_ context.Context, id uuid.UUID, campos map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, v := range campos {
		switch col {
		case "nome":
			p.Nome = v.(string)
		case "categoria":
			p.Categoria = v.(string)
		case "preco":
			p.Preco = v.(decimal.Decimal)
		case "quantidade":
			p.Quantidade = v.(int)
		case "validade":
			s := v.(string)
			p.Validade = &s
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *memProdutoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.produtos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.produtos, id)
	return nil
}

func (r *memProdutoRepo) ListAbaixoDe(_ context.Context, limiar int) ([]model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Quantidade < limiar {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProdutoRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.produtos)), nil
}

func (r *memProdutoRepo) CountAbaixoDe(_ context.Context, limiar int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.produtos {
		if p.Quantidade < limiar {
			n++
		}
	}
	return n, nil
}

func (r *memProdutoRepo) ValorTotal(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.produtos {
		total = total.Add(p.Preco.Mul(decimal.NewFromInt(int64(p.Quantidade))))
	}
	return total, nil
}

func (r *memProdutoRepo) CountPorCategoria(_ context.Context) ([]dto.CategoriaCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, p := range r.produtos {
		counts[p.Categoria]++
	}
	out := make([]dto.CategoriaCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, dto.CategoriaCount{Categoria: cat, Count: n})
	}
	return out, nil
}

func (r *memProdutoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *memProdutoRepo) DebitarEstoqueTx(_ *gorm.DB, id uuid.UUID, qtd int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok || p.Quantidade < qtd {
		return 0, nil
	}
	p.Quantidade -= qtd
	return 1, nil
}

func (r *memProdutoRepo) CreditarEstoqueTx(_ *gorm.DB, id uuid.UUID, qtd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantidade += qtd
	return nil
}

func (r *memProdutoRepo) DB() *gorm.DB { return nil }

type memMovimentacaoRepo struct {
	mu   sync.Mutex
	movs []model.Movimentacao
}

func (r *memMovimentacaoRepo) CreateTx(_ *gorm.DB, m *model.Movimentacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	r.movs = append(r.movs, *m)
	return nil
}

func (r *memMovimentacaoRepo) List(_ context.Context) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Movimentacao, len(r.movs))
	copy(out, r.movs)
	return out, nil
}

func (r *memMovimentacaoRepo) ListByProduto(_ context.Context, produtoID uuid.UUID) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Movimentacao
	for _, m := range r.movs {
		if m.ProdutoID == produtoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovimentacaoRepo) Recentes(_ context.Context, limit int) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Movimentacao, len(r.movs))
	copy(out, r.movs)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memMovimentacaoRepo) CountPorTipoDesde(_ context.Context, desde time.Time) ([]dto.TipoCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, m := range r.movs {
		if !m.Data.Before(desde) {
			counts[m.Tipo]++
		}
	}
	out := make([]dto.TipoCount, 0, len(counts))
	for tipo, n := range counts {
		out = append(out, dto.TipoCount{Tipo: tipo, Count: n})
	}
	return out, nil
}

// ── Test application ─────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

type testApp struct {
	router   *gin.Engine
	usuarios *memUsuarioRepo
	produtos *memProdutoRepo
}

// newTestApp wires real services and handlers over in-memory repositories,
// mirroring the route layout from internal/router.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 24,
		ResetTokenMinutes:  60,
		BcryptCost:         bcrypt.MinCost,
		LimiarBaixoEstoque: 5,
	}
	usuarios := &memUsuarioRepo{users: map[uuid.UUID]*model.Usuario{}}
	produtos := &memProdutoRepo{produtos: map[uuid.UUID]*model.Produto{}}
	movs := &memMovimentacaoRepo{}

	authSvc := service.NewAuthService(usuarios, cfg, nil)
	prodSvc := service.NewProdutoService(produtos, cfg.LimiarBaixoEstoque)
	movSvc := service.NewMovimentacaoService(produtos, movs)
	relSvc := service.NewRelatorioService(produtos, movs, cfg.LimiarBaixoEstoque)

	authH := handler.NewAuthHandler(authSvc)
	prodH := handler.NewProdutosHandler(prodSvc)
	movH := handler.NewMovimentacoesHandler(movSvc)
	relH := handler.NewRelatoriosHandler(relSvc)
	usersH := handler.NewUsuariosHandler(authSvc)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authH.Registrar)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/forgot-password", authH.EsqueciSenha)
	api.POST("/auth/reset-password", authH.RedefinirSenha)

	protected := api.Group("", middleware.JWTAuth(cfg.JWTSecret, usuarios))
	protected.GET("/auth/me", authH.Me)

	adm := protected.Group("/usuarios", middleware.RequireAdmin())
	adm.GET("", usersH.Listar)
	adm.POST("", usersH.Criar)
	adm.DELETE("/:id", usersH.Excluir)

	protected.GET("/produtos", prodH.Listar)
	protected.GET("/produtos/baixo-estoque", prodH.BaixoEstoque)
	protected.GET("/produtos/:id", prodH.ObterPorID)
	protected.POST("/produtos", prodH.Criar)
	protected.PUT("/produtos/:id", prodH.Atualizar)
	protected.DELETE("/produtos/:id", prodH.Excluir)

	protected.GET("/movimentacoes", movH.Listar)
	protected.POST("/movimentacoes", movH.Registrar)
	protected.GET("/movimentacoes/historico/:produto_id", movH.Historico)

	protected.GET("/relatorios/dashboard", relH.Dashboard)
	protected.GET("/relatorios/export", relH.ExportCSV)

	return &testApp{router: r, usuarios: usuarios, produtos: produtos}
}

func (a *testApp) seedUsuario(t *testing.T, nome, email, senha string, tipo model.TipoUsuario) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		ID: uuid.New(), Nome: nome, Email: email,
		SenhaHash: string(hash), Tipo: tipo, CreatedAt: time.Now().UTC(),
	}
	a.usuarios.users[u.ID] = u
	return u
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, email, senha string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "senha": senha})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// ── Auth endpoints ───────────────────────────────────────────────────────────

func TestAPI_RegisterELogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome": "Maria", "email": "maria@example.com", "senha": "segredo1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user dto.UsuarioResponse
	decodeJSON(t, w, &user)
	assert.Equal(t, "funcionario", user.Tipo)
	assert.NotContains(t, w.Body.String(), "senha")

	token := app.login(t, "maria@example.com", "segredo1")

	me := app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "maria@example.com")
}

func TestAPI_RegisterEmailDuplicado(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "segredo1", model.TipoFuncionario)

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome": "Maria 2", "email": "maria@example.com", "senha": "outra123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email já cadastrado")
}

func TestAPI_RegisterPayloadInvalido(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome": "M", "email": "nao-e-email", "senha": "abc",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Erro de validação")
}

func TestAPI_LoginRespostaUniforme(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "correta1", model.TipoFuncionario)

	senhaErrada := app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "maria@example.com", "senha": "errada99",
	})
	emailErrado := app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "outra@example.com", "senha": "correta1",
	})

	assert.Equal(t, http.StatusUnauthorized, senhaErrada.Code)
	assert.Equal(t, http.StatusUnauthorized, emailErrado.Code)
	// Byte-identical bodies: no way to tell which credential failed
	assert.Equal(t, senhaErrada.Body.String(), emailErrado.Body.String())
	assert.Contains(t, senhaErrada.Body.String(), "Email ou senha incorretos")
}

func TestAPI_FluxoResetDeSenha(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "antiga12", model.TipoFuncionario)

	w := app.do(t, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "maria@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var forgot dto.ForgotPasswordResponse
	decodeJSON(t, w, &forgot)
	require.NotEmpty(t, forgot.ResetToken)

	w = app.do(t, http.MethodPost, "/api/auth/reset-password", "", gin.H{
		"token": forgot.ResetToken, "nova_senha": "nova1234",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Senha resetada com sucesso")

	app.login(t, "maria@example.com", "nova1234")
}

func TestAPI_ResetTokenInvalido(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/reset-password", "", gin.H{
		"token": uuid.NewString(), "nova_senha": "nova1234",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Token inválido")
}

// ── Authorization ────────────────────────────────────────────────────────────

func TestAPI_ProtegidoSemToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/produtos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_UsuariosSomenteAdmin(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Func", "func@example.com", "senha123", model.TipoFuncionario)
	app.seedUsuario(t, "Chefe", "chefe@example.com", "senha123", model.TipoAdmin)

	tokenFunc := app.login(t, "func@example.com", "senha123")
	w := app.do(t, http.MethodGet, "/api/usuarios", tokenFunc, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Acesso negado. Apenas administradores.")

	tokenAdmin := app.login(t, "chefe@example.com", "senha123")
	w = app.do(t, http.MethodGet, "/api/usuarios", tokenAdmin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ── Produtos ─────────────────────────────────────────────────────────────────

func TestAPI_ProdutoCRUD(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	w := app.do(t, http.MethodPost, "/api/produtos", token, gin.H{
		"nome": "Arroz 5kg", "categoria": "Alimentos", "preco": 25.90, "quantidade": 20,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var criado dto.ProdutoResponse
	decodeJSON(t, w, &criado)
	// preco travels as a JSON number
	assert.Contains(t, w.Body.String(), `"preco":25.9`)

	w = app.do(t, http.MethodPut, "/api/produtos/"+criado.ID, token, gin.H{"preco": 27.50})
	require.Equal(t, http.StatusOK, w.Code)
	var atualizado dto.ProdutoResponse
	decodeJSON(t, w, &atualizado)
	assert.Equal(t, "Arroz 5kg", atualizado.Nome)
	assert.True(t, atualizado.Preco.Equal(decimal.RequireFromString("27.5")))

	w = app.do(t, http.MethodDelete, "/api/produtos/"+criado.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Produto deletado com sucesso")

	w = app.do(t, http.MethodGet, "/api/produtos/"+criado.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Produto não encontrado")
}

func TestAPI_ProdutoIDMalformadoEh404(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	w := app.do(t, http.MethodGet, "/api/produtos/nao-e-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ── Movimentações ────────────────────────────────────────────────────────────

func TestAPI_MovimentacaoSaidaInsuficiente(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	w := app.do(t, http.MethodPost, "/api/produtos", token, gin.H{
		"nome": "Arroz 5kg", "categoria": "Alimentos", "preco": 25.90, "quantidade": 20,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var produto dto.ProdutoResponse
	decodeJSON(t, w, &produto)

	// Withdrawing more than available is a 400, not a 422 or 500
	w = app.do(t, http.MethodPost, "/api/movimentacoes", token, gin.H{
		"produto_id": produto.ID, "tipo": "saida", "quantidade": 25,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantidade insuficiente em estoque")

	// Stock untouched by the failed attempt
	w = app.do(t, http.MethodGet, "/api/produtos/"+produto.ID, token, nil)
	var depois dto.ProdutoResponse
	decodeJSON(t, w, &depois)
	assert.Equal(t, 20, depois.Quantidade)

	// A feasible saida succeeds and carries the snapshots
	w = app.do(t, http.MethodPost, "/api/movimentacoes", token, gin.H{
		"produto_id": produto.ID, "tipo": "saida", "quantidade": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var mov dto.MovimentacaoResponse
	decodeJSON(t, w, &mov)
	assert.Equal(t, "Arroz 5kg", mov.ProdutoNome)
	assert.Equal(t, "Maria", mov.UsuarioNome)

	w = app.do(t, http.MethodGet, "/api/produtos/"+produto.ID, token, nil)
	decodeJSON(t, w, &depois)
	assert.Equal(t, 15, depois.Quantidade)
}

func TestAPI_MovimentacaoTipoInvalido(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	w := app.do(t, http.MethodPost, "/api/movimentacoes", token, gin.H{
		"produto_id": uuid.NewString(), "tipo": "transferencia", "quantidade": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Tipo de movimentação inválido. Use 'entrada' ou 'saida'")
}

func TestAPI_MovimentacaoQuantidadeNaoPositiva(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	w := app.do(t, http.MethodPost, "/api/movimentacoes", token, gin.H{
		"produto_id": uuid.NewString(), "tipo": "entrada", "quantidade": -3,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// ── Relatórios ───────────────────────────────────────────────────────────────

func TestAPI_Dashboard(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	for _, p := range []gin.H{
		{"nome": "Arroz 5kg", "categoria": "Alimentos", "preco": 25.90, "quantidade": 10},
		{"nome": "Sabão", "categoria": "Limpeza", "preco": 3.20, "quantidade": 2},
	} {
		require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/produtos", token, p).Code)
	}

	w := app.do(t, http.MethodGet, "/api/relatorios/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash dto.DashboardResponse
	decodeJSON(t, w, &dash)
	assert.Equal(t, int64(2), dash.TotalProducts)
	assert.Equal(t, int64(1), dash.LowStockCount)
	assert.True(t, dash.TotalValue.Equal(decimal.RequireFromString("265.40")), "total_value = %s", dash.TotalValue)
}

func TestAPI_ExportCSVHeaders(t *testing.T) {
	app := newTestApp(t)
	app.seedUsuario(t, "Maria", "maria@example.com", "senha123", model.TipoFuncionario)
	token := app.login(t, "maria@example.com", "senha123")

	w := app.do(t, http.MethodGet, "/api/relatorios/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio_estoque.csv")
	assert.Contains(t, w.Body.String(), "ID,Nome,Categoria,Preço,Quantidade,Validade,Criado em")
}
