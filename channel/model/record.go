package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// PlayerRef is a minimal reference to the user who set a record.
type PlayerRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ClearCounts is the line-clear breakdown of a record. The newer five-wide
// labels (pentas, tspinpentas) sit alongside the original set so both old
// and new replays decode.
type ClearCounts struct {
	Singles          int `json:"singles"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	Quads            int `json:"quads"`
	Pentas           int `json:"pentas"`
	RealTSpins       int `json:"realtspins"`
	MiniTSpins       int `json:"minitspins"`
	MiniTSpinSingles int `json:"minitspinsingles"`
	MiniTSpinDoubles int `json:"minitspindoubles"`
	TSpinSingles     int `json:"tspinsingles"`
	TSpinDoubles     int `json:"tspindoubles"`
	TSpinTriples     int `json:"tspintriples"`
	TSpinQuads       int `json:"tspinquads"`
	TSpinPentas      int `json:"tspinpentas"`
	AllClears        int `json:"allclear"`
}

// Finesse describes input efficiency over a record.
type Finesse struct {
	Combo         int `json:"combo"`
	Faults        int `json:"faults"`
	PerfectPieces int `json:"perfectpieces"`
}

// SprintStats are the mode-specific statistics of a 40 LINES record.
type SprintStats struct {
	// FinalTime is the clear time in milliseconds.
	FinalTime    float64     `json:"finaltime"`
	PiecesPlaced int         `json:"piecesplaced"`
	Inputs       int         `json:"inputs"`
	Holds        int         `json:"holds"`
	Lines        int         `json:"lines"`
	Clears       ClearCounts `json:"clears"`
	Finesse      *Finesse    `json:"finesse"`
}

// PPS returns the pieces placed per second.
func (s *SprintStats) PPS() float64 {
	if s.FinalTime <= 0 {
		return 0
	}
	return float64(s.PiecesPlaced) / (s.FinalTime / 1000)
}

// KPP returns the key presses per piece.
func (s *SprintStats) KPP() float64 {
	if s.PiecesPlaced == 0 {
		return 0
	}
	return float64(s.Inputs) / float64(s.PiecesPlaced)
}

// BlitzStats are the statistics of the score-attack modes (BLITZ and ZEN).
type BlitzStats struct {
	Score        int         `json:"score"`
	Level        int         `json:"level"`
	Lines        int         `json:"lines"`
	PiecesPlaced int         `json:"piecesplaced"`
	Inputs       int         `json:"inputs"`
	FinalTime    float64     `json:"finaltime"`
	Clears       ClearCounts `json:"clears"`
	Finesse      *Finesse    `json:"finesse"`
}

// SPP returns the score per piece.
func (s *BlitzStats) SPP() float64 {
	if s.PiecesPlaced == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.PiecesPlaced)
}

// VersusStats are the statistics of the multiplayer-shaped modes
// (TETRA LEAGUE and QUICK PLAY).
type VersusStats struct {
	APM OptionalFloat `json:"apm"`
	PPS OptionalFloat `json:"pps"`
	VS  OptionalFloat `json:"vsscore"`
	// Altitude is the height reached in a QUICK PLAY climb.
	Altitude  OptionalFloat `json:"altitude"`
	Kills     int           `json:"kills"`
	LinesSent int           `json:"garbagesent"`
	Score     int           `json:"score"`
}

// GameRecord is a completed play result. The mode discriminant selects
// which stats field is populated; records with a mode this library does not
// recognize keep their raw stats in Raw instead of failing to decode.
type GameRecord struct {
	ID       string
	ReplayID string
	Mode     GameMode
	PlayedAt Timestamp
	Holder   *PlayerRef
	// PersonalBest reports whether the record is the holder's current PB.
	PersonalBest bool
	Rank         int

	Sprint *SprintStats
	Blitz  *BlitzStats
	Versus *VersusStats
	// Raw is the undecoded stats object, set whenever the record carried
	// one, so callers can reach fields this library does not model.
	Raw json.RawMessage

	// Prisecter is the pagination key of this entry when the record came
	// from a leaderboard.
	Prisecter *Prisecter
}

// recordWire covers both the current shape (stats under results.stats) and
// the legacy one (stats under endcontext).
type recordWire struct {
	ID       string     `json:"_id"`
	ReplayID string     `json:"replayid"`
	Mode     GameMode   `json:"gamemode"`
	TS       Timestamp  `json:"ts"`
	User     *PlayerRef `json:"user"`
	PB       bool       `json:"pb"`
	Rank     int        `json:"rank"`
	Results  *struct {
		Stats     json.RawMessage `json:"stats"`
		Aggregate json.RawMessage `json:"aggregatestats"`
	} `json:"results"`
	EndContext json.RawMessage `json:"endcontext"`
	Prisecter  *Prisecter      `json:"p"`
}

func (r *GameRecord) UnmarshalJSON(b []byte) error {
	var w recordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return decodeErr("record", err)
	}
	stats := w.EndContext
	var aggregate json.RawMessage
	if w.Results != nil {
		stats = w.Results.Stats
		aggregate = w.Results.Aggregate
	}
	*r = GameRecord{
		ID:           w.ID,
		ReplayID:     w.ReplayID,
		Mode:         w.Mode,
		PlayedAt:     w.TS,
		Holder:       w.User,
		PersonalBest: w.PB,
		Rank:         w.Rank,
		Raw:          stats,
		Prisecter:    w.Prisecter,
	}
	if len(stats) == 0 {
		// Nothing to dispatch on; keep the shared fields only.
		return nil
	}
	switch w.Mode {
	case ModeSprint:
		r.Sprint = &SprintStats{}
		if err := json.Unmarshal(stats, r.Sprint); err != nil {
			return decodeErr("results.stats", err)
		}
	case ModeBlitz, ModeZen:
		r.Blitz = &BlitzStats{}
		if err := json.Unmarshal(stats, r.Blitz); err != nil {
			return decodeErr("results.stats", err)
		}
	case ModeLeague, ModeZenith, ModeZenithEx:
		r.Versus = &VersusStats{}
		if err := json.Unmarshal(stats, r.Versus); err != nil {
			return decodeErr("results.stats", err)
		}
		if len(aggregate) > 0 {
			if err := json.Unmarshal(aggregate, r.Versus); err != nil {
				return decodeErr("results.aggregatestats", err)
			}
		}
	default:
		// Unrecognized mode: the raw stats stay reachable via Raw.
	}
	return nil
}

// ReplayURL returns the public URL of the record's replay.
func (r *GameRecord) ReplayURL() string {
	return fmt.Sprintf("https://tetr.io/#R:%s", r.ReplayID)
}
