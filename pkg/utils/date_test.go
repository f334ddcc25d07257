package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-05-17")
	assert.NoError(t, err)

	for _, invalid := range []string{"", "17-05-2024", "2024-5-7", "2024-05-32", "mañana"} {
		_, err := ParseDate(invalid)
		assert.Error(t, err, "debería rechazar %q", invalid)
	}
}

func TestMonthRange(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		month    string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{
			name:     "mes pasado completo",
			month:    "2024-02",
			wantFrom: "2024-02-01",
			wantTo:   "2024-02-29", // bisiesto
		},
		{
			name:     "mes en curso recortado a hoy",
			month:    "2024-05",
			wantFrom: "2024-05-01",
			wantTo:   "2024-05-17",
		},
		{
			name:     "mes futuro no se recorta",
			month:    "2024-07",
			wantFrom: "2024-07-01",
			wantTo:   "2024-07-31",
		},
		{
			name:    "mes 13 inválido",
			month:   "2024-13",
			wantErr: true,
		},
		{
			name:    "formato inválido",
			month:   "05-2024",
			wantErr: true,
		},
		{
			name:    "vacío",
			month:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := MonthRange(tt.month, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from.Format("2006-01-02"))
			assert.Equal(t, tt.wantTo, to.Format("2006-01-02"))
		})
	}
}

func TestMonthRangeUltimoDiaDelMesEnCurso(t *testing.T) {
	// Hoy es el último día del mes: el recorte no debe mover el límite
	now := time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)

	_, to, err := MonthRange("2024-04", now)
	assert.NoError(t, err)
	assert.Equal(t, "2024-04-30", to.Format("2006-01-02"))
}
