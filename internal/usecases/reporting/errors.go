package reporting

import "errors"

// Erros do motor de relatórios. São propagados sem modificação até o handler,
// que os converte para o envelope de erro da API.
var (
	// ErrInvalidWindow indica datas malformadas ou intervalo invertido.
	ErrInvalidWindow = errors.New("janela de datas inválida")

	// ErrUpstreamFetch indica que uma das três buscas de registros falhou.
	// A requisição inteira é abortada; não há retentativa nem resultado parcial.
	ErrUpstreamFetch = errors.New("falha ao carregar registros do armazenamento")
)
