package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundWithTwoDecimalPlace arredonda para duas casas. NaN e infinitos são mantidos.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}

	return math.Round(f*100) / 100
}

// FloatPtr converte um número para ponteiro, retornando nil para NaN e infinitos.
// Usado na fronteira JSON, onde NaN não é representável.
func FloatPtr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// FormatAmount formata um valor para exibição com espaço como separador de
// milhar e vírgula decimal: 1234567.891 -> "1 234 567,89". NaN vira "".
// O resultado é só para exibição e nunca deve ser convertido de volta em número.
func FormatAmount(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}

	s := strconv.FormatFloat(math.Abs(f), 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if f < 0 && s != "0.00" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)

	return b.String()
}

// FormatMonth formata o mês para exibição; meses inválidos viram ""
func FormatMonth(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
