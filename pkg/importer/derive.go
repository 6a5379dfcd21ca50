package importer

import (
	"fmt"
	"sort"
)

// SessionKey identifies a session by its natural key.
type SessionKey struct {
	Date     string
	Location string
}

// Record is one canonical game annotated with the entity keys the loader
// needs: its session and its per-session round number.
type Record struct {
	CanonicalGame
	Session     SessionKey
	RoundNumber int
}

// Derived holds everything the loader writes: entity sets in deterministic
// creation order plus the annotated record list. Skipped carries diagnostics
// for records excluded here (self matches).
type Derived struct {
	Players  []string
	Sessions []SessionKey
	Records  []Record
	Skipped  []string
}

// Derive computes the distinct players, sessions, and round numbers implied
// by an ordered, deduplicated game list. It is a pure function of its input:
// round numbers are a per-session counter walked in the given order, so they
// come out gap-free and 1-based. Self matches are dropped with a diagnostic
// and consume no round number, no player, and no session.
func Derive(ordered []CanonicalGame) Derived {
	var d Derived

	playerSet := make(map[string]struct{})
	sessionSet := make(map[SessionKey]struct{})
	roundCounter := make(map[SessionKey]int)

	for _, g := range ordered {
		if g.SelfMatch() {
			d.Skipped = append(d.Skipped,
				fmt.Sprintf("record %d: self-match for %q on %s skipped", g.Src, g.Player1, g.Date))
			continue
		}

		key := SessionKey{Date: g.Date, Location: g.Location}
		playerSet[g.Player1] = struct{}{}
		playerSet[g.Player2] = struct{}{}
		sessionSet[key] = struct{}{}

		roundCounter[key]++
		d.Records = append(d.Records, Record{
			CanonicalGame: g,
			Session:       key,
			RoundNumber:   roundCounter[key],
		})
	}

	d.Players = make([]string, 0, len(playerSet))
	for name := range playerSet {
		d.Players = append(d.Players, name)
	}
	sort.Strings(d.Players)

	d.Sessions = make([]SessionKey, 0, len(sessionSet))
	for key := range sessionSet {
		d.Sessions = append(d.Sessions, key)
	}
	sort.Slice(d.Sessions, func(i, j int) bool {
		if d.Sessions[i].Date != d.Sessions[j].Date {
			return d.Sessions[i].Date < d.Sessions[j].Date
		}
		return d.Sessions[i].Location < d.Sessions[j].Location
	})

	return d
}
