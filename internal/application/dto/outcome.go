package dto

// OutcomeStatus resultado de una operación que modifica datos.
// Los fallos no son un estado: se devuelven como error.
type OutcomeStatus string

const (
	StatusSuccess        OutcomeStatus = "success"
	StatusPartialSuccess OutcomeStatus = "partial_success"
)

// Outcome éxito, o éxito parcial con advertencia: la mutación principal quedó aplicada
// y un paso dependiente (pedido, comisión, registro) falló sin revertirse.
type Outcome struct {
	Status  OutcomeStatus `json:"status"`
	Message string        `json:"message,omitempty"`
	Warning string        `json:"warning,omitempty"`
}

// Success construye un resultado exitoso.
func Success(message string) Outcome {
	return Outcome{Status: StatusSuccess, Message: message}
}

// Partial construye un éxito parcial con advertencia.
func Partial(message, warning string) Outcome {
	return Outcome{Status: StatusPartialSuccess, Message: message, Warning: warning}
}

// IsPartial indica si el resultado trae advertencia.
func (o Outcome) IsPartial() bool { return o.Status == StatusPartialSuccess }
