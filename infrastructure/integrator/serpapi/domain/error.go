package serpdomain

import "fmt"

// StatusError é uma resposta HTTP de erro da SerpAPI
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("serpapi respondeu com status %d: %s", e.StatusCode, e.Message)
}

// Temporary indica erro do lado do provedor, que pode ser repetido
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500
}

// ProviderError é um erro de negócio devolvido no campo "error" com status 200
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "serpapi: " + e.Message
}
