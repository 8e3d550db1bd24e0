package domain

// Segment classifica uma linha pela sua margem sobre a venda
type Segment string

const (
	SegmentHigh   Segment = "High"
	SegmentMedium Segment = "Medium"
	SegmentLow    Segment = "Low"
)

// Limites (em %) de margem sobre a venda para cada segmento
const (
	HighMarginThreshold   = 30.0
	MediumMarginThreshold = 15.0
)

// Segments lista os segmentos do maior para o menor
var Segments = []Segment{SegmentHigh, SegmentMedium, SegmentLow}

// Classify mapeia a margem sobre a venda para um segmento.
// NaN cai em SegmentLow, já que toda comparação com NaN é falsa.
func Classify(marginPctOfSales float64) Segment {
	if marginPctOfSales >= HighMarginThreshold {
		return SegmentHigh
	}
	if marginPctOfSales >= MediumMarginThreshold {
		return SegmentMedium
	}
	return SegmentLow
}

// IsValid indica se o valor é um dos segmentos conhecidos
func (s Segment) IsValid() bool {
	switch s {
	case SegmentHigh, SegmentMedium, SegmentLow:
		return true
	}
	return false
}

func (s Segment) String() string {
	return string(s)
}
