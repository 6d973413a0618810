// Package analytics derives grouped counts, sums and chart-ready series
// from the raw collections. Every function is pure and total: empty
// collections, absent optional fields and dangling client references
// degrade to zero/empty outputs, never to a panic.
package analytics

import (
	"github.com/ordenate/backend/internal/core/domain"
)

// None is the sentinel returned by MostFrequent over an empty histogram.
const None = "-"

// Bucket is one category of a histogram.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Histogram is an ordered list of category counts. Order is either the
// fixed category order passed to CountByString or first-encountered
// insertion order for open-ended fields.
type Histogram []Bucket

// Total is the sum of all bucket counts.
func (h Histogram) Total() int {
	total := 0
	for _, b := range h {
		total += b.Count
	}
	return total
}

// MostFrequent returns the label with the highest count. Ties resolve to
// the bucket occurring first; an empty histogram yields the None sentinel.
func (h Histogram) MostFrequent() string {
	best := None
	bestCount := 0
	for _, b := range h {
		if b.Count > bestCount {
			best = b.Label
			bestCount = b.Count
		}
	}
	return best
}

// ChartSeries converts the histogram to chart points with percentage
// labels relative to the histogram total.
func (h Histogram) ChartSeries() []domain.ChartPoint {
	total := h.Total()
	points := make([]domain.ChartPoint, 0, len(h))
	for _, b := range h {
		points = append(points, domain.ChartPoint{
			Label:   b.Label,
			Value:   b.Count,
			Percent: Percent(b.Count, total),
		})
	}
	return points
}

// CountByString builds a histogram over the values produced by accessor.
// Records with an empty value are skipped. With a fixedOrder, every listed
// category is emitted even at count zero and unlisted values are appended
// in first-encountered order; without one, only observed values appear.
func CountByString[T any](items []T, accessor func(T) string, fixedOrder []string) Histogram {
	index := make(map[string]int, len(fixedOrder))
	hist := make(Histogram, 0, len(fixedOrder))
	for _, label := range fixedOrder {
		index[label] = len(hist)
		hist = append(hist, Bucket{Label: label})
	}
	for _, item := range items {
		value := accessor(item)
		if value == "" {
			continue
		}
		at, ok := index[value]
		if !ok {
			at = len(hist)
			index[value] = at
			hist = append(hist, Bucket{Label: value})
		}
		hist[at].Count++
	}
	return hist
}

// StatusHistogram counts clients per status in the fixed chart order
// {Ativo, Em avaliação, Inativo}; zero categories are still emitted.
func StatusHistogram(clients []domain.Client) Histogram {
	return CountByString(clients, func(c domain.Client) string { return c.Status }, domain.StatusOrder)
}

// GenderHistogram counts clients per gender; only observed values are
// emitted since the field is open-ended.
func GenderHistogram(clients []domain.Client) Histogram {
	return CountByString(clients, func(c domain.Client) string { return c.Gender }, nil)
}

// EmotionalStateHistogram counts notes per tagged emotional state.
func EmotionalStateHistogram(notes []domain.Note) Histogram {
	return CountByString(notes, func(n domain.Note) string { return n.EmotionalState }, nil)
}

// TrendHistogram counts notes per tagged behavioral trend.
func TrendHistogram(notes []domain.Note) Histogram {
	return CountByString(notes, func(n domain.Note) string { return n.Trend }, nil)
}

// UrgencyHistogram counts notes per urgency level in the fixed ascending
// order, emitting zero categories.
func UrgencyHistogram(notes []domain.Note) Histogram {
	return CountByString(notes, func(n domain.Note) string { return n.Urgency }, domain.UrgencyOrder)
}

// EngagementHistogram counts notes per engagement type.
func EngagementHistogram(notes []domain.Note) Histogram {
	return CountByString(notes, func(n domain.Note) string { return n.EngagementType }, nil)
}

// Percent computes the rounded integer percentage part/total, 0 when the
// total is zero.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}

// CountStatus counts clients with the given status.
func CountStatus(clients []domain.Client, status string) int {
	count := 0
	for _, c := range clients {
		if c.Status == status {
			count++
		}
	}
	return count
}
