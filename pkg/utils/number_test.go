package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		numer    *float64
		denom    *float64
		expected *float64
	}{
		{name: "Divisão normal", numer: floatPtr(60), denom: floatPtr(15), expected: floatPtr(4)},
		{name: "Denominador zero produz ausente", numer: floatPtr(60), denom: floatPtr(0), expected: nil},
		{name: "Numerador ausente produz ausente", numer: nil, denom: floatPtr(15), expected: nil},
		{name: "Denominador ausente produz ausente", numer: floatPtr(60), denom: nil, expected: nil},
		{name: "Numerador zero produz zero", numer: floatPtr(0), denom: floatPtr(15), expected: floatPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDiv(tt.numer, tt.denom)

			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, *tt.expected, *result)
			}
		})
	}
}

func TestSafeSub(t *testing.T) {
	tests := []struct {
		name     string
		a        *float64
		b        *float64
		expected *float64
	}{
		{name: "Subtração normal", a: floatPtr(60), b: floatPtr(15), expected: floatPtr(45)},
		{name: "Resultado negativo é permitido", a: floatPtr(10), b: floatPtr(15), expected: floatPtr(-5)},
		{name: "Operando ausente produz ausente", a: nil, b: floatPtr(15), expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeSub(tt.a, tt.b)

			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, *tt.expected, *result)
			}
		})
	}
}

func TestRoundPtr(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected *float64
	}{
		{name: "Arredonda para duas casas", input: floatPtr(33.3333), expected: floatPtr(33.33)},
		{name: "Arredonda para cima", input: floatPtr(0.006), expected: floatPtr(0.01)},
		{name: "Ausente permanece ausente, nunca vira zero", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundPtr(tt.input)

			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, *tt.expected, *result)
			}
		})
	}
}
