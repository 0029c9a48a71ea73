package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Cxldas/Sistema-de-estoque/internal/apierror"
	"github.com/Cxldas/Sistema-de-estoque/internal/model"
	"github.com/Cxldas/Sistema-de-estoque/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const UsuarioKey = "usuario"

// JWTAuth validates the Bearer token on every protected route. The token
// payload carries only the subject id; the user record is re-fetched on each
// request so role and name changes take effect immediately and deleted users
// lose access at once.
func JWTAuth(secret string, usuarios repository.UsuarioRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCode("nao_autenticado", "Autenticação necessária"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCode("token_expirado", "Token expirado"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCode("token_invalido", "Token inválido"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCode("token_invalido", "Token inválido"))
			return
		}
		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCode("token_invalido", "Token inválido"))
			return
		}

		user, err := usuarios.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewCode("usuario_nao_encontrado", "Usuário não encontrado"))
			return
		}

		c.Set(UsuarioKey, user)
		c.Next()
	}
}

// RequireAdmin rejects requests whose resolved user is not an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUsuario(c)
		if user == nil || user.Tipo != model.TipoAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.NewCode("acesso_negado", "Acesso negado. Apenas administradores."))
			return
		}
		c.Next()
	}
}

// GetUsuario retrieves the resolved user from the Gin context, or nil when
// the request did not pass through JWTAuth.
func GetUsuario(c *gin.Context) *model.Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.Usuario)
	return user
}
