package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Cxldas/Sistema-de-estoque/internal/apierror"
	"github.com/Cxldas/Sistema-de-estoque/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Teach the validator to treat decimal.Decimal as a number, otherwise
	// numeric tags on preco panic with "Bad field type decimal.Decimal".
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondErro maps service sentinel errors to their fixed HTTP status and
// machine-usable code. Unknown errors become an opaque 500.
func respondErro(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailJaCadastrado):
		c.JSON(http.StatusBadRequest, apierror.NewCode("email_ja_cadastrado", err.Error()))
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.NewCode("credenciais_invalidas", err.Error()))
	case errors.Is(err, service.ErrTokenInvalido):
		c.JSON(http.StatusBadRequest, apierror.NewCode("token_invalido", err.Error()))
	case errors.Is(err, service.ErrTokenExpirado):
		c.JSON(http.StatusBadRequest, apierror.NewCode("token_expirado", err.Error()))
	case errors.Is(err, service.ErrTipoUsuarioInvalido):
		c.JSON(http.StatusBadRequest, apierror.NewCode("tipo_usuario_invalido", err.Error()))
	case errors.Is(err, service.ErrUsuarioNaoEncontrado):
		c.JSON(http.StatusNotFound, apierror.NewCode("usuario_nao_encontrado", err.Error()))
	case errors.Is(err, service.ErrProdutoNaoEncontrado):
		c.JSON(http.StatusNotFound, apierror.NewCode("produto_nao_encontrado", err.Error()))
	case errors.Is(err, service.ErrEstoqueInsuficiente):
		c.JSON(http.StatusBadRequest, apierror.NewCode("estoque_insuficiente", err.Error()))
	case errors.Is(err, service.ErrTipoInvalido):
		c.JSON(http.StatusBadRequest, apierror.NewCode("tipo_invalido", err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}
