package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDigits convierte un texto a entero conservando sólo los dígitos.
// Separadores de miles, símbolos de moneda, signos y decimales se
// descartan ("$ 1.000" -> 1000, "1,500" -> 1500). Si no queda ningún
// dígito el valor se considera inválido.
func ParseDigits(text string) (int64, error) {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return 0, fmt.Errorf("valor no numérico: %q", text)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("valor no numérico: %q", text)
	}

	return n, nil
}
