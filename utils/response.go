package utils

import (
	"encoding/json"
	"io"
)

// Result codes carried in JSONResponse.Code.
const (
	CodeOK         = 0
	CodeUsage      = 40000
	CodeValidation = 40001
	CodeNotFound   = 40401
	CodeInternal   = 50000
)

// JSONResponse defines the uniform structure for command output.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes one indented JSON response to w.
func Respond(w io.Writer, code int, message string, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success writes a standard success response.
func Success(w io.Writer, data interface{}) error {
	return Respond(w, CodeOK, "success", data)
}

// Error writes a standard error response.
func Error(w io.Writer, code int, message string) error {
	return Respond(w, code, message, nil)
}
