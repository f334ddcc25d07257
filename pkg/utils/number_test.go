package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDigits(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int64
		wantErr bool
	}{
		{name: "entero simple", text: "12500", want: 12500},
		{name: "separador de miles con coma", text: "1,000", want: 1000},
		{name: "separador de miles con punto", text: "5.000", want: 5000},
		{name: "símbolo de moneda y espacios", text: "$ 12.500 ", want: 12500},
		{name: "signo descartado", text: "-300", want: 300},
		{name: "decimales descartados", text: "10.50", want: 1050},
		{name: "cero", text: "0", want: 0},
		{name: "vacío", text: "", wantErr: true},
		{name: "sólo espacios", text: "   ", wantErr: true},
		{name: "sin dígitos", text: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDigits(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
