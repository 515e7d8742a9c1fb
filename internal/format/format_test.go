package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		want  string
	}{
		{"zero", 0, "0원"},
		{"below ten thousand", 1500, "1500원"},
		{"exactly one man", 10000, "1만원"},
		{"man with remainder", 35000000, "3500만원"},
		{"eok and man", 120000000, "1억 2000만원"},
		{"eok only", 900000000, "9억원"},
		{"skips zero groups", 100000001, "1억 1원"},
		{"all groups", 1234567890123, "1조 2345억 6789만 123원"},
		{"exactly one jo", 1000000000000, "1조원"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

func TestFormatPriceNegative(t *testing.T) {
	assert.Equal(t, "", FormatPrice(-100))
}

func TestFormatArea(t *testing.T) {
	tests := []struct {
		name string
		m2   float64
		want string
	}{
		{"typical apartment", 84.5, "약 25.56평"},
		{"round number", 100, "약 30.25평"},
		{"small area", 10, "약 3.03평"},
		{"zero", 0, ""},
		{"negative", -5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatArea(tt.m2))
		})
	}
}
