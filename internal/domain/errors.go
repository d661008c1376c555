package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado        = errors.New("recurso não encontrado")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrEmailJaCadastrado    = errors.New("o e-mail já está cadastrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrNaoAutorizado        = errors.New("não autorizado")
	ErrAcessoNegado         = errors.New("acesso negado")
	ErrConflito             = errors.New("conflito com o estado atual")
	ErrSemTabelaVigente     = errors.New("nenhuma tabela de preço vigente para o cliente")
	ErrPedidoMinimo         = errors.New("total do pedido abaixo do pedido mínimo")
	ErrCarrinhoVazio        = errors.New("carrinho vazio")
)
