package importer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ImportRequest is the JSON envelope accepted by the import endpoint.
type ImportRequest struct {
	Games []RawRecord `json:"games"`
}

// RawRecord is one loosely-typed input record. Historical exports spelled
// fields several ways, so every field is captured under all known aliases and
// resolved during normalization. Values are kept as raw JSON because scores
// arrive as numbers or numeric strings and dates in a handful of formats.
type RawRecord struct {
	Date        json.RawMessage `json:"date"`
	SessionDate json.RawMessage `json:"session_date"`

	Location json.RawMessage `json:"location"`

	Player       json.RawMessage `json:"player"`
	PlayerName   json.RawMessage `json:"player_name"`
	Opponent     json.RawMessage `json:"opponent"`
	OpponentName json.RawMessage `json:"opponent_name"`

	MyScore       json.RawMessage `json:"my_score"`
	PlayerScore   json.RawMessage `json:"player_score"`
	OppScore      json.RawMessage `json:"opp_score"`
	OpponentScore json.RawMessage `json:"opponent_score"`

	Round    json.RawMessage `json:"round"`
	Sequence json.RawMessage `json:"sequence"`
}

// firstSet returns the first candidate that is present and not JSON null.
func firstSet(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		if len(c) > 0 && string(c) != "null" {
			return c
		}
	}
	return nil
}

// stringValue coerces a raw JSON value to a string. Numbers are accepted and
// formatted, since some exports emitted bare numbers where strings belong.
// Returns false for absent, null, or non-scalar values.
func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return strconv.FormatInt(int64(n), 10), true
		}
		return strconv.FormatFloat(n, 'g', -1, 64), true
	}

	return "", false
}

// intValue coerces a raw JSON value to an integer, truncating toward zero.
// Accepts JSON numbers and numeric strings. Non-finite values and anything
// unparseable are rejected.
func intValue(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return truncToInt(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return truncToInt(n)
	}

	return 0, false
}

func truncToInt(n float64) (int, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return int(math.Trunc(n)), true
}
