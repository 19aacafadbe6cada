package dex

import (
	"strconv"
	"strings"
)

// QueryKind classifies search text.
type QueryKind int

const (
	// QueryEmpty means there is nothing to search for.
	QueryEmpty QueryKind = iota
	// QueryAnomaly routes to the anomalous record.
	QueryAnomaly
	// QueryID resolves by numeric id.
	QueryID
	// QueryName resolves by name.
	QueryName
)

// String implements fmt.Stringer.
func (k QueryKind) String() string {
	switch k {
	case QueryEmpty:
		return "empty"
	case QueryAnomaly:
		return "anomaly"
	case QueryID:
		return "id"
	case QueryName:
		return "name"
	default:
		return "unknown"
	}
}

// Query is parsed search text.
type Query struct {
	Kind QueryKind
	ID   int
	Name string
}

// anomalyTokens route a search to the anomalous record.
//
//nolint:gochecknoglobals // Fixed lookup table.
var anomalyTokens = map[string]bool{
	"missingno": true,
	"0":         true,
	"000":       true,
}

// ParseQuery classifies free-text search input. Text is trimmed and
// lower-cased; an optional leading '#' is accepted before a number. Only a
// whole integer counts as an id, so "25abc" and "1.5" are names. Integers
// outside [1, maxID] and anything non-numeric fall through to a name lookup.
func ParseQuery(text string, maxID int) Query {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return Query{Kind: QueryEmpty}
	}
	if anomalyTokens[q] {
		return Query{Kind: QueryAnomaly}
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(q, "#")); err == nil && n >= 1 && n <= maxID {
		return Query{Kind: QueryID, ID: n}
	}
	return Query{Kind: QueryName, Name: q}
}
