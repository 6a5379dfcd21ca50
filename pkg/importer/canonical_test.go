package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize_PerspectiveSwap(t *testing.T) {
	// The same match reported from each side collapses to one canonical tuple.
	fromBob := NormalizedRecord{
		Date: "2026-02-12", Location: "Unknown",
		Player: "bob", Opponent: "Alice",
		PlayerScore: 5, OpponentScore: 7,
	}
	fromAlice := NormalizedRecord{
		Date: "2026-02-12", Location: "Unknown",
		Player: "Alice", Opponent: "bob",
		PlayerScore: 7, OpponentScore: 5,
	}

	a := Canonicalize(fromBob, 0)
	b := Canonicalize(fromAlice, 1)

	assert.Equal(t, a.key(), b.key())
	assert.Equal(t, "Alice", a.Player1)
	assert.Equal(t, "bob", a.Player2)
	assert.Equal(t, 7, a.Score1)
	assert.Equal(t, 5, a.Score2)
}

func TestCanonicalize_AlreadyOrdered(t *testing.T) {
	n := NormalizedRecord{
		Date: "2026-02-12", Location: "Hall",
		Player: "Ann", Opponent: "Zed",
		PlayerScore: 3, OpponentScore: 9,
	}

	g := Canonicalize(n, 0)
	assert.Equal(t, "Ann", g.Player1)
	assert.Equal(t, "Zed", g.Player2)
	assert.Equal(t, 3, g.Score1)
	assert.Equal(t, 9, g.Score2)
}

func TestCanonicalize_SelfMatchRetained(t *testing.T) {
	n := NormalizedRecord{
		Date: "2026-02-12", Location: "Hall",
		Player: "Ann", Opponent: "Ann",
		PlayerScore: 3, OpponentScore: 3,
	}

	g := Canonicalize(n, 5)
	assert.True(t, g.SelfMatch())
	assert.Equal(t, 5, g.Src)
}
