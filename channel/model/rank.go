package model

import (
	json "github.com/goccy/go-json"
)

// StandingKind is the discriminant of a RankStanding.
type StandingKind int

const (
	// StandingUnranked means the player has no rank and is not in placements.
	StandingUnranked StandingKind = iota
	// StandingPlacement means the player is still playing placement games.
	StandingPlacement
	// StandingRanked means the player holds a letter rank.
	StandingRanked
)

func (k StandingKind) String() string {
	switch k {
	case StandingPlacement:
		return "placement"
	case StandingRanked:
		return "ranked"
	default:
		return "unranked"
	}
}

func (k StandingKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// RankPolicy decides the winner when a player carries a real letter rank
// and a stale in-placement games counter at the same time. The upstream has
// been observed leaving the counter behind after a player ranks up, so the
// default is that the rank wins; the opposite reading is available for
// callers who trust the counter instead.
type RankPolicy int

const (
	TierWins RankPolicy = iota
	PlacementWins
)

// placementGames is the number of rated games a player must finish before
// the server assigns a letter rank.
const placementGames = 10

// RankStanding is a player's competitive standing: ranked, still in
// placements, or unranked. Exactly one Kind is active; rank-only fields are
// meaningful only when Kind is StandingRanked.
type RankStanding struct {
	Kind StandingKind `json:"kind"`

	// Tier is the letter rank, or the `z` sentinel when not ranked.
	Tier     Rank    `json:"rank"`
	BestTier Rank    `json:"bestrank,omitempty"`
	Rating   float64 `json:"rating"`
	Standing int     `json:"standing"`
	// StandingLocal is the position in the player's country leaderboard,
	// or -1 if not applicable.
	StandingLocal  int     `json:"standing_local"`
	Percentile     float64 `json:"percentile"`
	PercentileTier Rank    `json:"percentile_rank,omitempty"`

	// GamesPlayed doubles as the placement counter: below ten games the
	// player has no rank yet.
	GamesPlayed int `json:"gamesplayed"`
	GamesWon    int `json:"gameswon"`

	Glicko OptionalFloat `json:"glicko"`
	RD     OptionalFloat `json:"rd"`
	APM    OptionalFloat `json:"apm"`
	PPS    OptionalFloat `json:"pps"`
	VS     OptionalFloat `json:"vs"`

	// Decaying reports whether the rating deviation is rising because the
	// player has not played recently.
	Decaying bool `json:"decaying"`
}

// PlacementGamesPlayed returns how many placement games the player has
// finished, or 0 when the player is past placements.
func (s *RankStanding) PlacementGamesPlayed() int {
	if s.Kind != StandingPlacement {
		return 0
	}
	return s.GamesPlayed
}

// DeriveKind reclassifies the standing from its fields under the given
// policy. For a freshly decoded value this returns s.Kind.
func (s *RankStanding) DeriveKind(policy RankPolicy) StandingKind {
	return classify(s.Tier, s.GamesPlayed, policy)
}

func classify(tier Rank, gamesPlayed int, policy RankPolicy) StandingKind {
	inPlacement := gamesPlayed > 0 && gamesPlayed < placementGames
	hasTier := tier != "" && !tier.Unranked()
	switch {
	case hasTier && inPlacement:
		if policy == PlacementWins {
			return StandingPlacement
		}
		return StandingRanked
	case hasTier:
		return StandingRanked
	case inPlacement:
		return StandingPlacement
	default:
		return StandingUnranked
	}
}

// leagueWire is the flat league object of the current schema.
type leagueWire struct {
	GamesPlayed    int           `json:"gamesplayed"`
	GamesWon       int           `json:"gameswon"`
	Rating         float64       `json:"rating"`
	Rank           Rank          `json:"rank"`
	BestRank       Rank          `json:"bestrank"`
	Standing       int           `json:"standing"`
	StandingLocal  int           `json:"standing_local"`
	Percentile     float64       `json:"percentile"`
	PercentileRank Rank          `json:"percentile_rank"`
	Glicko         OptionalFloat `json:"glicko"`
	RD             OptionalFloat `json:"rd"`
	APM            OptionalFloat `json:"apm"`
	PPS            OptionalFloat `json:"pps"`
	VS             OptionalFloat `json:"vs"`
	Decaying       bool          `json:"decaying"`
}

// DecodeRankStanding decodes a league object into a RankStanding under the
// given policy. The current flat shape is tried first; the legacy shape,
// which nests the same object one level deeper under a "league" key, is
// accepted as a fallback so older cached documents keep decoding.
func DecodeRankStanding(raw []byte, policy RankPolicy) (*RankStanding, error) {
	var probe struct {
		Rank        *Rank           `json:"rank"`
		GamesPlayed *int            `json:"gamesplayed"`
		League      json.RawMessage `json:"league"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, decodeErr("league", err)
	}
	if probe.Rank == nil && probe.GamesPlayed == nil && len(probe.League) > 0 && string(probe.League) != "null" {
		raw = probe.League
	}

	var w leagueWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, decodeErr("league", err)
	}
	s := &RankStanding{
		Kind:           classify(w.Rank, w.GamesPlayed, policy),
		Tier:           w.Rank,
		BestTier:       w.BestRank,
		Rating:         w.Rating,
		Standing:       w.Standing,
		StandingLocal:  w.StandingLocal,
		Percentile:     w.Percentile,
		PercentileTier: w.PercentileRank,
		GamesPlayed:    w.GamesPlayed,
		GamesWon:       w.GamesWon,
		Glicko:         w.Glicko,
		RD:             w.RD,
		APM:            w.APM,
		PPS:            w.PPS,
		VS:             w.VS,
		Decaying:       w.Decaying,
	}
	return s, nil
}

// UnmarshalJSON decodes with the default TierWins policy. Use
// DecodeRankStanding to pick a policy explicitly.
func (s *RankStanding) UnmarshalJSON(b []byte) error {
	decoded, err := DecodeRankStanding(b, TierWins)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
