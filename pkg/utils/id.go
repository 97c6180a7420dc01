package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	idLength   = 12
)

// GenerateID gera identificadores curtos para uso em URLs, sem caracteres ambíguos (0/O, 1/l/I)
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
