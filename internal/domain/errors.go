package domain

import "errors"

// Erros de domínio (sem dependências externas).
// Cada sentinela tem um código estável via Code() para o chamador ramificar
// ou localizar sem depender do texto da mensagem.

// Validação: entrada com forma/faixa inválida. Sem retry.
var (
	ErrEntradaInvalida        = errors.New("entrada inválida")
	ErrQuantidadeInvalida     = errors.New("quantidade deve ser maior que zero")
	ErrValorAberturaInvalido  = errors.New("valor de abertura não pode ser negativo")
	ErrDescontoInvalido       = errors.New("desconto deve ser maior que zero")
	ErrFormaPagamentoInvalida = errors.New("forma de pagamento desconhecida")
	ErrCodigoVazio            = errors.New("código de barras ou referência vazio")
)

// Conflito: estado atual não permite a operação. O chamador decide de novo.
var (
	ErrEstoqueInsuficiente   = errors.New("estoque insuficiente")
	ErrPagamentoInsuficiente = errors.New("valor pago menor que o total da venda")
	ErrNenhumPagamento       = errors.New("nenhum valor de pagamento foi informado")
	ErrVendaNaoAberta        = errors.New("venda não está em aberto")
	ErrVendaJaCancelada      = errors.New("venda já cancelada")
	ErrVendaSemItens         = errors.New("venda sem itens")
	ErrVendaEmAberto         = errors.New("já existe venda em aberto para o vendedor")
	ErrCaixaJaAberto         = errors.New("já existe caixa aberto para a loja")
	ErrNenhumCaixaAberto     = errors.New("nenhum caixa aberto")
	ErrDiferencaNaoConfere   = errors.New("diferença de valor da troca não confere")
	ErrSemItensParaEstornar  = errors.New("venda concluída sem itens para estornar")
	ErrNFCeJaEmitida         = errors.New("NFC-e já emitida para a venda")
	ErrUsuarioJaExiste       = errors.New("usuário já cadastrado na loja")
)

// Não encontrado: recurso ausente ou não pertencente à loja.
var (
	ErrNaoEncontrado               = errors.New("recurso não encontrado")
	ErrProdutoNaoEncontrado        = errors.New("produto não encontrado")
	ErrVendaNaoEncontrada          = errors.New("venda não encontrada")
	ErrItemNaoEncontrado           = errors.New("item não encontrado")
	ErrProdutosTrocaNaoEncontrados = errors.New("um ou ambos os produtos da troca não foram encontrados")
	ErrNFCeNaoEncontrada           = errors.New("NFC-e não encontrada")
	ErrUsuarioNaoEncontrado        = errors.New("usuário não encontrado")
	ErrLojaNaoEncontrada           = errors.New("loja não encontrada")
)

// Autenticação/autorização.
var (
	ErrNaoAutorizado        = errors.New("não autorizado")
	ErrCredenciaisInvalidas = errors.New("usuário ou senha inválidos")
)

// Code devolve o identificador estável do erro para a camada de apresentação.
// Erros fora da taxonomia devolvem "INTERNO" (falha de infraestrutura, já
// revertida por rollback).
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEntradaInvalida):
		return "ENTRADA_INVALIDA"
	case errors.Is(err, ErrQuantidadeInvalida):
		return "QUANTIDADE_INVALIDA"
	case errors.Is(err, ErrValorAberturaInvalido):
		return "VALOR_INVALIDO"
	case errors.Is(err, ErrDescontoInvalido):
		return "DESCONTO_INVALIDO"
	case errors.Is(err, ErrFormaPagamentoInvalida):
		return "FORMA_PAGAMENTO_INVALIDA"
	case errors.Is(err, ErrCodigoVazio):
		return "CODIGO_VAZIO"
	case errors.Is(err, ErrEstoqueInsuficiente):
		return "ESTOQUE_INSUFICIENTE"
	case errors.Is(err, ErrPagamentoInsuficiente):
		return "PAGAMENTO_INSUFICIENTE"
	case errors.Is(err, ErrNenhumPagamento):
		return "NENHUM_PAGAMENTO"
	case errors.Is(err, ErrVendaNaoAberta):
		return "VENDA_NAO_ABERTA"
	case errors.Is(err, ErrVendaJaCancelada):
		return "VENDA_JA_CANCELADA"
	case errors.Is(err, ErrVendaSemItens):
		return "VENDA_SEM_ITENS"
	case errors.Is(err, ErrVendaEmAberto):
		return "VENDA_EM_ABERTO"
	case errors.Is(err, ErrCaixaJaAberto):
		return "CAIXA_JA_ABERTO"
	case errors.Is(err, ErrNenhumCaixaAberto):
		return "NENHUM_CAIXA_ABERTO"
	case errors.Is(err, ErrDiferencaNaoConfere):
		return "DIFERENCA_NAO_CONFERE"
	case errors.Is(err, ErrSemItensParaEstornar):
		return "SEM_ITENS_PARA_ESTORNAR"
	case errors.Is(err, ErrNFCeJaEmitida):
		return "NFCE_JA_EMITIDA"
	case errors.Is(err, ErrUsuarioJaExiste):
		return "USUARIO_JA_EXISTE"
	case errors.Is(err, ErrProdutoNaoEncontrado):
		return "PRODUTO_NAO_ENCONTRADO"
	case errors.Is(err, ErrVendaNaoEncontrada):
		return "VENDA_NAO_ENCONTRADA"
	case errors.Is(err, ErrItemNaoEncontrado):
		return "ITEM_NAO_ENCONTRADO"
	case errors.Is(err, ErrProdutosTrocaNaoEncontrados):
		return "PRODUTOS_TROCA_NAO_ENCONTRADOS"
	case errors.Is(err, ErrNFCeNaoEncontrada):
		return "NFCE_NAO_ENCONTRADA"
	case errors.Is(err, ErrUsuarioNaoEncontrado):
		return "USUARIO_NAO_ENCONTRADO"
	case errors.Is(err, ErrLojaNaoEncontrada):
		return "LOJA_NAO_ENCONTRADA"
	case errors.Is(err, ErrNaoEncontrado):
		return "NAO_ENCONTRADO"
	case errors.Is(err, ErrNaoAutorizado):
		return "NAO_AUTORIZADO"
	case errors.Is(err, ErrCredenciaisInvalidas):
		return "CREDENCIAIS_INVALIDAS"
	default:
		return "INTERNO"
	}
}
