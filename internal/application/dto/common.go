package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail error de validación de un campo del request.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
