// Package filtering contains the pure predicate/sort functions that narrow
// the raw collections for a view. Functions never mutate their inputs and
// independent predicates compose commutatively.
package filtering

import (
	"sort"
	"strings"

	"github.com/ordenate/backend/internal/core/domain"
)

// SentinelAll bypasses an equality filter when used as its value.
const SentinelAll = "Todos"

// SortKey selects the client sort field.
type SortKey string

const (
	SortByName      SortKey = "nome"
	SortByCreatedAt SortKey = "data"
	SortByStatus    SortKey = "status"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortSpec describes the requested ordering of a client view.
type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSort is applied when a criteria carries no sort specification:
// most recently created first.
var DefaultSort = SortSpec{Key: SortByCreatedAt, Direction: Desc}

// ClientCriteria is the search-view criteria: a free-text term matched
// against several fields, optional status/gender equality filters (the
// "Todos" sentinel bypasses them) and a sort specification.
type ClientCriteria struct {
	Term   string
	Status string
	Gender string
	Sort   SortSpec
}

// SearchClients runs the full view pipeline: equality filters, then
// free-text search, then a stable sort. The result is a new slice.
func SearchClients(clients []domain.Client, criteria ClientCriteria) []domain.Client {
	out := make([]domain.Client, 0, len(clients))
	term := strings.ToLower(strings.TrimSpace(criteria.Term))
	for _, c := range clients {
		if !matchesEquality(c, criteria.Status, criteria.Gender) {
			continue
		}
		if term != "" && !matchesTerm(c, term) {
			continue
		}
		out = append(out, c)
	}
	SortClients(out, criteria.Sort)
	return out
}

func matchesEquality(c domain.Client, status, gender string) bool {
	if status != "" && status != SentinelAll && c.Status != status {
		return false
	}
	if gender != "" && gender != SentinelAll && c.Gender != gender {
		return false
	}
	return true
}

// matchesTerm reports whether any of the searchable fields contains the
// already-lowercased term.
func matchesTerm(c domain.Client, term string) bool {
	for _, field := range []string{
		c.Name, c.Email, c.Phone, c.Mobile, c.Gender, c.Group, c.NationalID, c.SecondaryID,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// SortClients sorts in place with a stable sort so that equal keys keep
// their prior relative order across re-renders. A missing CreatedAt sorts
// as the Unix epoch, i.e. oldest.
func SortClients(clients []domain.Client, spec SortSpec) {
	if spec.Key == "" {
		spec = DefaultSort
	}
	if spec.Direction == "" {
		spec.Direction = Asc
	}
	sort.SliceStable(clients, func(i, j int) bool {
		var less bool
		switch spec.Key {
		case SortByName:
			less = strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
		case SortByStatus:
			less = clients[i].Status < clients[j].Status
		default:
			less = createdAtMillis(clients[i]) < createdAtMillis(clients[j])
		}
		if spec.Direction == Desc {
			return !less && !equalKey(clients[i], clients[j], spec.Key)
		}
		return less
	})
}

func equalKey(a, b domain.Client, key SortKey) bool {
	switch key {
	case SortByName:
		return strings.EqualFold(a.Name, b.Name)
	case SortByStatus:
		return a.Status == b.Status
	default:
		return createdAtMillis(a) == createdAtMillis(b)
	}
}

func createdAtMillis(c domain.Client) int64 {
	if c.CreatedAt.IsZero() {
		return 0
	}
	return c.CreatedAt.UnixMilli()
}

// CrossFilter is the dashboard's set of simultaneously active equality
// filters, applied as a logical AND. An empty field is inactive.
type CrossFilter struct {
	Status string `json:"status,omitempty"`
	Gender string `json:"genero,omitempty"`
}

// CrossFilterField names a toggleable cross-filter dimension.
type CrossFilterField string

const (
	FieldStatus CrossFilterField = "status"
	FieldGender CrossFilterField = "genero"
)

// Toggle returns the filter state after clicking value on field. Clicking
// the already-active value clears that dimension (click-to-toggle, not
// click-to-set).
func (f CrossFilter) Toggle(field CrossFilterField, value string) CrossFilter {
	switch field {
	case FieldStatus:
		if f.Status == value {
			f.Status = ""
		} else {
			f.Status = value
		}
	case FieldGender:
		if f.Gender == value {
			f.Gender = ""
		} else {
			f.Gender = value
		}
	}
	return f
}

// Active reports whether any dimension is filtering.
func (f CrossFilter) Active() bool {
	return f.Status != "" || f.Gender != ""
}

// Apply narrows clients to those matching every active dimension. The
// result is a new slice in the original order.
func (f CrossFilter) Apply(clients []domain.Client) []domain.Client {
	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Gender != "" && c.Gender != f.Gender {
			continue
		}
		out = append(out, c)
	}
	return out
}
