package model

import (
	json "github.com/goccy/go-json"
)

// RecordSummary is a user's standing in one single-player mode: the current
// personal best and its leaderboard positions. Rank is -1 when the user is
// not on the leaderboard.
type RecordSummary struct {
	Record    *GameRecord `json:"record"`
	Rank      int         `json:"rank"`
	LocalRank int         `json:"rank_local"`
	// Best is the career best of the QUICK PLAY modes, which reset weekly;
	// nil for the other modes.
	Best *RecordSummary `json:"best,omitempty"`
}

// ZenSummary is a user's ZEN progress.
type ZenSummary struct {
	Level int     `json:"level"`
	Score float64 `json:"score"`
}

// UserSummaries is the per-mode personal-best overview of a user, fetched
// in a single call.
type UserSummaries struct {
	Sprint   RecordSummary `json:"40l"`
	Blitz    RecordSummary `json:"blitz"`
	Zenith   RecordSummary `json:"zenith"`
	ZenithEx RecordSummary `json:"zenithex"`
	// League is empty (StandingUnranked with zero fields) for banned
	// users, who come back as an empty object.
	League RankStanding `json:"league"`
	Zen    ZenSummary   `json:"zen"`
	// Achievements stays raw; this library does not model the
	// achievement system.
	Achievements json.RawMessage `json:"achievements"`
}
