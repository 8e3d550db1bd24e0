// Package charts desenha os gráficos do relatório de margem em PNG.
package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
)

// Kind identifica um dos gráficos disponíveis
type Kind string

const (
	KindMonthlyMargin     Kind = "monthly-margin"
	KindSubcategoryMargin Kind = "subcategory-margin"
	KindSegmentMargin     Kind = "segment-margin"
)

// Kinds lista os gráficos na ordem em que são exibidos
var Kinds = []Kind{KindMonthlyMargin, KindSubcategoryMargin, KindSegmentMargin}

var (
	ErrNotEnoughData = errors.New("dados insuficientes para o gráfico")
	ErrUnknownChart  = errors.New("gráfico desconhecido")
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 600

	minBarSlot = 48
)

// ParseKind valida o nome de um gráfico
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownChart, "%q", name)
}

// FileName é o nome sugerido para o PNG do gráfico
func (k Kind) FileName() string {
	return string(k) + ".png"
}

type Renderer struct {
	Width  int
	Height int
}

func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// Render desenha o gráfico pedido a partir das séries já agregadas
func (r *Renderer) Render(w io.Writer, kind Kind, data *domain.ChartData) error {
	switch kind {
	case KindMonthlyMargin:
		return r.MonthlyMargin(w, data.MonthlyMargin)
	case KindSubcategoryMargin:
		return r.Bars(w, "Mean margin % of sales by subcategory", data.SubcategoryMargin)
	case KindSegmentMargin:
		return r.Bars(w, "Mean margin % of sales by segment", data.SegmentMarginRatio)
	default:
		return errors.Wrapf(ErrUnknownChart, "%q", kind)
	}
}

// MonthlyMargin desenha a linha da margem total por mês, com o eixo x fixo de 1 a 12
func (r *Renderer) MonthlyMargin(w io.Writer, points []domain.MonthValue) error {
	if len(points) == 0 {
		return errors.Wrap(ErrNotEnoughData, string(KindMonthlyMargin))
	}

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, float64(p.Month))
		ys = append(ys, p.Value)
	}

	style := chart.Style{
		StrokeColor: chart.ColorBlue,
		StrokeWidth: 2,
		DotColor:    chart.ColorBlue,
		DotWidth:    4,
	}
	// um único ponto não forma linha
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	monthTicks := make([]chart.Tick, 0, 12)
	for m := 1; m <= 12; m++ {
		monthTicks = append(monthTicks, chart.Tick{Value: float64(m), Label: strconv.Itoa(m)})
	}

	ch := chart.Chart{
		Title:      "Margin amount by month",
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Month",
			Range: &chart.ContinuousRange{Min: 1, Max: 12},
			Ticks: monthTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Margin",
			Range: paddedRange(ys),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Margin", XValues: xs, YValues: ys, Style: style},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "erro ao desenhar gráfico mensal")
	}
	return nil
}

// Bars desenha uma barra por categoria. Categorias com valor NaN são omitidas.
func (r *Renderer) Bars(w io.Writer, title string, values []domain.CategoryValue) error {
	bars := make([]chart.Value, 0, len(values))
	ys := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			continue
		}
		bars = append(bars, chart.Value{Label: v.Label, Value: v.Value})
		ys = append(ys, v.Value)
	}

	if len(bars) == 0 {
		return errors.Wrap(ErrNotEnoughData, title)
	}

	width := max(r.Width, len(bars)*minBarSlot+80)

	bc := chart.BarChart{
		Title:        title,
		Width:        width,
		Height:       r.Height,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:     max(8, min(60, (width-80)/len(bars)-10)),
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Name:           "%",
			Range:          paddedRange(append(ys, 0)),
			ValueFormatter: percentFormatter,
		},
		Bars: bars,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return errors.Wrapf(err, "erro ao desenhar gráfico %q", title)
	}
	return nil
}

// paddedRange cobre os valores com uma folga de 10%, evitando intervalo vazio
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}

	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}
