package apiErrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Códigos de error de la API. El código decide el status HTTP; el
// mensaje viaja al cliente en el cuerpo.
const (
	// Errores de validación de entrada
	ErrInvalidFormat       = "VAL_001" // Formato de dato inválido (fecha, período, número)
	ErrMissingRequiredData = "VAL_002" // Dato obligatorio ausente
	ErrInvalidValue        = "VAL_003" // Valor fuera del conjunto permitido

	// Errores de recurso inexistente
	ErrSaleNotFound = "NF_001" // Venta no encontrada
	ErrFileNotFound = "NF_002" // Archivo no encontrado

	// Errores del servidor
	ErrInternalServer    = "SRV_001" // Error interno
	ErrDatabaseOperation = "SRV_002" // Operación de base de datos
	ErrFileOperation     = "SRV_003" // Lectura/escritura de archivos
)

// Mapeo de códigos de error a status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidValue:        http.StatusBadRequest,
	ErrSaleNotFound:        http.StatusNotFound,
	ErrFileNotFound:        http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrFileOperation:       http.StatusInternalServerError,
}

// APIError es el error que ve el cliente: sólo el mensaje, como espera
// el formulario web. El código queda para los logs.
type APIError struct {
	Error string `json:"error"`
}

// StatusFor devuelve el status HTTP asociado a un código de error.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escribe el error estandarizado en la respuesta HTTP.
func WriteError(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(APIError{Error: message})
}

// Error es un error de operación con código de API. Los servicios lo
// devuelven y el handler lo traduce a status HTTP en el borde.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New crea un error de API con código y mensaje para el cliente.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Write resuelve el error de una operación a una respuesta HTTP. Los
// errores sin código se tratan como internos y exponen el mensaje crudo.
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.Code, apiErr.Message)
		return
	}
	WriteError(w, ErrInternalServer, err.Error())
}
