package client

import "fmt"

const (
	networkErrorMessage = "Failed to connect to the server"
	genericErrorMessage = "Something went wrong. Please try again."
)

// NetworkError means the request never got an HTTP answer
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return networkErrorMessage }

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx answer. Message is the server's own text when
// the body carried one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// Unauthorized reports whether the server rejected the session
func (e *ServerError) Unauthorized() bool { return e.Status == 401 }

// ValidationError is raised locally; the request is never sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
