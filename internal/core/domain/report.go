package domain

// ReportKind selects which report the assembler builds.
type ReportKind string

const (
	ReportWeekly  ReportKind = "semanal"
	ReportMonthly ReportKind = "mensal"
)

// ChartPoint is one bucket of a chart-ready series. Percent is already
// computed by the aggregation layer; renderers must not derive figures.
type ChartPoint struct {
	Label   string `json:"label"`
	Value   int    `json:"value"`
	Percent int    `json:"percent"`
}

// ReportTable is a small tabular body for a report section.
type ReportTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ReportSection is one ordered section of an assembled report. Exactly one
// of Paragraphs, Table or Chart is expected to be populated, but renderers
// tolerate any combination.
type ReportSection struct {
	Heading    string       `json:"heading"`
	Paragraphs []string     `json:"paragraphs,omitempty"`
	Table      *ReportTable `json:"table,omitempty"`
	Chart      []ChartPoint `json:"chart,omitempty"`
}

// Report is a fully assembled document, ready for a document renderer.
type Report struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Period   string          `json:"period"`
	Sections []ReportSection `json:"sections"`
}

// PersonaNote is a truncated note as it appears on a persona report.
type PersonaNote struct {
	Date           string `json:"date"`
	Text           string `json:"text"`
	EmotionalState string `json:"emotionalState,omitempty"`
	Trend          string `json:"trend,omitempty"`
}

// PersonaIndicator is the most frequent value of one note-tag category.
type PersonaIndicator struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Persona is the single-client report document: demographics, rollup
// statistics and recent note history.
type Persona struct {
	ClientID    string             `json:"clientId"`
	Name        string             `json:"name"`
	Status      string             `json:"status"`
	Group       string             `json:"group"`
	Gender      string             `json:"gender"`
	AgeYears    int                `json:"ageYears"` // -1 when birth date is absent
	Since       string             `json:"since"`
	Contact     string             `json:"contact"`
	Plan        string             `json:"plan"`
	Indicators  []PersonaIndicator `json:"indicators"`
	NoteCount   int                `json:"noteCount"`
	EventCount  int                `json:"eventCount"`
	Revenue     string             `json:"revenue"` // formatted BRL display string
	RecentNotes []PersonaNote      `json:"recentNotes"`
}

// Snapshot is a point-in-time copy of all collections, handed to the pure
// filter/aggregation layers. Slices are copies; mutating them does not
// affect the store.
type Snapshot struct {
	Clients      []Client
	Notes        []Note
	Events       []Event
	Transactions []Transaction
}
