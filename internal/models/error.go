package models

import (
	"time"
)

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Message       string            `json:"message"`
	Code          int               `json:"code"`
	InvalidFields map[string]string `json:"invalidFields,omitempty"`
	DateTime      time.Time         `json:"dateTime"`
}
