package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID genera un sufijo corto para nombres de archivo de boletas,
// para que dos subidas en el mismo segundo no colisionen.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
