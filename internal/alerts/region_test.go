package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"semicolon with states", "Fulton, GA; DeKalb, GA; Cobb, GA", []string{"Fulton", "DeKalb", "Cobb"}},
		{"semicolon only", "Fulton; DeKalb", []string{"Fulton", "DeKalb"}},
		{"commas only", "Fulton, DeKalb, Cobb", []string{"Fulton", "DeKalb", "Cobb"}},
		{"empty", "", []string{}},
		{"separators only", " ; , ;", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreaTokens(tt.in))
		})
	}
}

func TestCountyList(t *testing.T) {
	assert.Equal(t, "Fulton, DeKalb", CountyList("Fulton, GA; DeKalb, GA"))
	assert.Equal(t, "Unknown", CountyList(""))
}

func TestNewRegion_SkipsBlankOffices(t *testing.T) {
	r := NewRegion(nil)
	assert.False(t, r.Contains("NWS Peachtree City GA", ""))
}
