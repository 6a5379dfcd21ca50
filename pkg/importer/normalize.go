package importer

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// UnknownLocation is substituted when a record carries no location, so later
// grouping keys are always defined. A session literally named "Unknown" is
// indistinguishable from one with no location; kept for compatibility with
// historical exports.
const UnknownLocation = "Unknown"

// Rejection reasons surfaced as per-record diagnostics.
var (
	ErrMissingDate  = errors.New("missing or unparseable date")
	ErrMissingName  = errors.New("missing player name")
	ErrMissingScore = errors.New("missing or invalid score")
)

// NormalizedRecord is a fully-typed candidate produced from one RawRecord.
type NormalizedRecord struct {
	Date          string // yyyy-mm-dd
	Location      string
	Player        string
	Opponent      string
	PlayerScore   int
	OpponentScore int
	SeqHint       *int
}

// dateLayouts are tried in order after the ISO fast path fails.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006.01.02",
}

// Normalize coerces one raw record into typed fields or rejects it with a
// reason. Malformed fields never panic; they simply fail validation. A record
// with no score is a placeholder, not a zero-score result, and is rejected.
func Normalize(rec RawRecord) (NormalizedRecord, error) {
	var n NormalizedRecord

	rawDate, ok := stringValue(firstSet(rec.Date, rec.SessionDate))
	if !ok {
		return n, ErrMissingDate
	}
	date, ok := normalizeDate(rawDate)
	if !ok {
		return n, ErrMissingDate
	}

	player, ok := normalizeName(firstSet(rec.Player, rec.PlayerName))
	if !ok {
		return n, ErrMissingName
	}
	opponent, ok := normalizeName(firstSet(rec.Opponent, rec.OpponentName))
	if !ok {
		return n, ErrMissingName
	}

	playerScore, ok := intValue(firstSet(rec.MyScore, rec.PlayerScore))
	if !ok {
		return n, ErrMissingScore
	}
	opponentScore, ok := intValue(firstSet(rec.OppScore, rec.OpponentScore))
	if !ok {
		return n, ErrMissingScore
	}

	n.Date = date
	n.Player = player
	n.Opponent = opponent
	n.PlayerScore = playerScore
	n.OpponentScore = opponentScore

	n.Location = UnknownLocation
	if loc, ok := normalizeName(rec.Location); ok {
		n.Location = loc
	}

	if hint, ok := intValue(firstSet(rec.Round, rec.Sequence)); ok {
		n.SeqHint = &hint
	}

	return n, nil
}

// normalizeDate returns an ISO yyyy-mm-dd date. An already-ISO string passes
// through unchanged; anything else is parsed against the known layouts and
// reformatted from its calendar fields.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// normalizeName trims and collapses internal whitespace runs to single
// spaces. Returns false when nothing remains.
func normalizeName(raw json.RawMessage) (string, bool) {
	s, ok := stringValue(raw)
	if !ok {
		return "", false
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	return strings.Join(fields, " "), true
}
