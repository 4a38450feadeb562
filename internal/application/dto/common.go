package dto

// DateLayout formato de fechas (sin hora) en requests y responses.
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Errors  []FieldErrorResponse `json:"errors,omitempty"`
}

// FieldErrorResponse error de validación de un campo.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// LogCountResponse eventos retenidos y capacidad del buffer.
type LogCountResponse struct {
	Count    int `json:"count"`
	Capacity int `json:"capacity"`
}

// CountResponse respuesta de conteo.
type CountResponse struct {
	Count int `json:"count"`
}
