package dto

// ErrorResponse cuerpo de error HTTP. Code es un identificador estable y
// verificable por máquina; Message es legible para humanos. Nunca se exponen
// stack traces ni identificadores internos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
