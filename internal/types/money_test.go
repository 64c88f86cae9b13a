package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		want  string
	}{
		{name: "whole value", price: decimal.NewFromInt(150), want: "R$ 150,00"},
		{name: "cents", price: decimal.RequireFromString("150.5"), want: "R$ 150,50"},
		{name: "zero", price: decimal.Zero, want: "R$ 0,00"},
		{name: "no thousands grouping", price: decimal.NewFromInt(12500), want: "R$ 12500,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(tt.price))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain decimal", raw: "150.50", want: "150.5"},
		{name: "integer", raw: "200", want: "200"},
		{name: "rounded to two decimals", raw: "10.999", want: "11"},
		{name: "empty collapses to sentinel", raw: "", want: "0"},
		{name: "whitespace collapses to sentinel", raw: "   ", want: "0"},
		{name: "garbage collapses to sentinel", raw: "abc", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", got, tt.want)
		})
	}
}

func TestIsSentinelPrice(t *testing.T) {
	assert.True(t, IsSentinelPrice(decimal.Zero))
	assert.True(t, IsSentinelPrice(ParsePrice("")))
	assert.True(t, IsSentinelPrice(ParsePrice("0.00")))
	assert.False(t, IsSentinelPrice(decimal.RequireFromString("0.01")))
}
