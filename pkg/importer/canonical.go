package importer

// CanonicalGame is the immutable canonical form of one match. Player1 always
// sorts lexicographically at or before Player2, with each score attached to
// its original owner, so the same match reported from either side collapses
// to identical field values. Src is the index of the raw record that first
// produced this game, carried only for diagnostics.
type CanonicalGame struct {
	Date     string
	Location string
	Player1  string
	Player2  string
	Score1   int
	Score2   int
	SeqHint  *int
	Src      int
}

// Canonicalize maps a normalized record to its canonical form, swapping the
// name pair and score pair together when the opponent sorts first. Self
// matches (player == opponent) pass through here and are filtered during
// entity derivation.
func Canonicalize(n NormalizedRecord, src int) CanonicalGame {
	g := CanonicalGame{
		Date:     n.Date,
		Location: n.Location,
		Player1:  n.Player,
		Player2:  n.Opponent,
		Score1:   n.PlayerScore,
		Score2:   n.OpponentScore,
		SeqHint:  n.SeqHint,
		Src:      src,
	}
	if n.Opponent < n.Player {
		g.Player1, g.Player2 = n.Opponent, n.Player
		g.Score1, g.Score2 = n.OpponentScore, n.PlayerScore
	}
	return g
}

// SelfMatch reports whether both sides are the same player.
func (g CanonicalGame) SelfMatch() bool {
	return g.Player1 == g.Player2
}

// dedupKey identifies a game for exact-duplicate removal. SeqHint and Src are
// deliberately excluded: two reports of the same match may disagree on both.
type dedupKey struct {
	Date     string
	Location string
	Player1  string
	Player2  string
	Score1   int
	Score2   int
}

func (g CanonicalGame) key() dedupKey {
	return dedupKey{g.Date, g.Location, g.Player1, g.Player2, g.Score1, g.Score2}
}
