package services

// Result is the envelope every expected business outcome travels in.
// Failures of this tier are values, never errors.
type Result struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Ok(status int, message string, data interface{}) *Result {
	return &Result{Status: status, Success: true, Message: message, Data: data}
}

func Fail(status int, message string) *Result {
	return &Result{Status: status, Success: false, Message: message}
}
