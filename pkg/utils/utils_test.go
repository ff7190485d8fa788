package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.5, "12.50"},
		{999, "999.00"},
		{1234.5, "1.23k"},
		{2_500_000, "2.50M"},
		{7e9, "7.00G"},
		{1.5e12, "1.50T"},
		{3e15, "3000000000000000"},
		{-2500, "-2.50k"},
		{999.994, "999.99"},
		{999.995, "1.00k"},
		{999.999, "1.00k"},
		{-999.999, "-1.00k"},
		{999_999.996, "1.00M"},
		{-0.001, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatQuantity(tt.in), "%v", tt.in)
	}
}

func TestGenerateCycleID(t *testing.T) {
	id := GenerateCycleID(42)

	assert.Regexp(t, regexp.MustCompile(`^cycle-42-[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, GenerateCycleID(42))
}
