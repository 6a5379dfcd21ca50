package models

// Player is one participant, unique by normalized name. Players are derived
// fresh on every import; identifier values are not stable across imports.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session is one real-world gathering, unique per (date, location).
// Date is an ISO-8601 calendar date string (yyyy-mm-dd).
type Session struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

// Round belongs to a session. RoundNumber is a 1-based per-session sequence
// assigned in deterministic import order, not taken from any input field.
type Round struct {
	ID          int64 `json:"id"`
	SessionID   int64 `json:"session_id"`
	RoundNumber int   `json:"round_number"`
}

// Game is one two-player result belonging to exactly one round.
// Player1ID != Player2ID always holds for stored games.
type Game struct {
	ID           int64 `json:"id"`
	RoundID      int64 `json:"round_id"`
	Player1ID    int64 `json:"player1_id"`
	Player2ID    int64 `json:"player2_id"`
	Player1Score int   `json:"player1_score"`
	Player2Score int   `json:"player2_score"`
}

// LeaderboardRow is one aggregated line of the leaderboard projection.
type LeaderboardRow struct {
	Name   string `json:"name"`
	Games  int    `json:"games"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
	Points int    `json:"points"`
}

// PlayerGame is one line of a player's game history, joined across
// sessions and rounds and oriented from the player's perspective.
type PlayerGame struct {
	Date          string `json:"date"`
	Location      string `json:"location"`
	RoundNumber   int    `json:"round_number"`
	Opponent      string `json:"opponent"`
	PlayerScore   int    `json:"player_score"`
	OpponentScore int    `json:"opponent_score"`
}
