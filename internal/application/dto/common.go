package dto

// ErrorResponse corpo de erro HTTP. Code é o identificador estável do erro
// de domínio (ex.: ESTOQUE_INSUFICIENTE); Message é a mensagem exibível.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
