package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// janela is one client's sliding window: attempt count and when it resets.
type janela struct {
	mu    sync.Mutex
	count int
	reset time.Time
}

// limiter tracks per-IP windows for a single route class. Both the global
// API limiter and the login limiter are instances of it.
type limiter struct {
	mu       sync.Mutex
	clientes map[string]*janela
	limite   int
	duracao  time.Duration
}

func newLimiter(limite int, duracao time.Duration) *limiter {
	l := &limiter{
		clientes: make(map[string]*janela),
		limite:   limite,
		duracao:  duracao,
	}
	registrarLimiter(l)
	return l
}

// permitir counts one attempt from ip and reports whether it is within the
// window budget.
func (l *limiter) permitir(ip string) bool {
	l.mu.Lock()
	j, ok := l.clientes[ip]
	if !ok {
		j = &janela{}
		l.clientes[ip] = j
	}
	l.mu.Unlock()

	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	if now.After(j.reset) {
		j.count = 0
		j.reset = now.Add(l.duracao)
	}
	j.count++
	return j.count <= l.limite
}

func (l *limiter) purgar(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removidos := 0
	for ip, j := range l.clientes {
		j.mu.Lock()
		if now.After(j.reset) {
			delete(l.clientes, ip)
			removidos++
		}
		j.mu.Unlock()
	}
	return removidos
}

// LoginRateLimiter caps login attempts at 20 per minute per IP. Together
// with bcrypt's verification cost this keeps credential stuffing slow.
func LoginRateLimiter() gin.HandlerFunc {
	l := newLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if !l.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Muitas tentativas de login. Tente novamente em 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to the whole API.
func RateLimiter(limite int, duracao time.Duration) gin.HandlerFunc {
	l := newLimiter(limite, duracao)
	return func(c *gin.Context) {
		if !l.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Muitas solicitações. Tente novamente em instantes."))
			return
		}
		c.Next()
	}
}

// ── Purge loop ────────────────────────────────────────────────────────────────
// Expired windows are dropped periodically so IPs that never return do not
// grow the maps forever.

var (
	limitersMu sync.Mutex
	limiters   []*limiter
	purgeOnce  sync.Once
)

func registrarLimiter(l *limiter) {
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	purgeOnce.Do(func() { go purgeLoop() })
}

func purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for now := range ticker.C {
		limitersMu.Lock()
		ativos := make([]*limiter, len(limiters))
		copy(ativos, limiters)
		limitersMu.Unlock()

		total := 0
		for _, l := range ativos {
			total += l.purgar(now)
		}
		if total > 0 {
			log.Debug().Int("janelas_removidas", total).Msg("rate limiter purged")
		}
	}
}
