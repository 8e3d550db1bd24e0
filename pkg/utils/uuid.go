package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// GenerateID gera o identificador curto dos lotes de importação
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// IsGeneratedID indica se s tem o formato produzido por GenerateID
func IsGeneratedID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
