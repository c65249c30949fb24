package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDiv divide numerador por denominador retornando nil quando qualquer
// operando está ausente ou o denominador é zero. Nunca produz infinito.
func SafeDiv(numer, denom *float64) *float64 {
	if numer == nil || denom == nil || *denom == 0 {
		return nil
	}

	result := *numer / *denom
	return &result
}

// SafeSub subtrai b de a retornando nil quando qualquer operando está ausente.
func SafeSub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}

	result := *a - *b
	return &result
}

// RoundPtr arredonda um valor opcional para duas casas decimais.
// Valores ausentes permanecem ausentes, nunca viram zero.
func RoundPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}

	rounded := RoundWithTwoDecimalPlace(*f)
	return &rounded
}
