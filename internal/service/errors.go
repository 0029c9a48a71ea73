package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map each one to a
// fixed HTTP status and machine-usable code; the messages mirror the public
// API contract and are safe to surface to clients.
var (
	ErrEmailJaCadastrado    = errors.New("Email já cadastrado")
	ErrCredenciaisInvalidas = errors.New("Email ou senha incorretos")
	ErrTokenInvalido        = errors.New("Token inválido")
	ErrTokenExpirado        = errors.New("Token expirado")
	ErrTipoUsuarioInvalido  = errors.New("Tipo de usuário inválido. Use 'admin' ou 'funcionario'")
	ErrUsuarioNaoEncontrado = errors.New("Usuário não encontrado")
	ErrProdutoNaoEncontrado = errors.New("Produto não encontrado")
	ErrEstoqueInsuficiente  = errors.New("Quantidade insuficiente em estoque")
	ErrTipoInvalido         = errors.New("Tipo de movimentação inválido. Use 'entrada' ou 'saida'")
)
