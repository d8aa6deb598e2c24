package model

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// OptionalFloat is a float64 that the API may send as a number or null,
// or omit entirely. Null and absent both leave it unset.
type OptionalFloat struct {
	Value float64
	Set   bool
}

// Float returns an OptionalFloat holding v.
func Float(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Set: true}
}

// Or returns the held value, or def if unset.
func (f OptionalFloat) Or(def float64) float64 {
	if !f.Set {
		return def
	}
	return f.Value
}

func (f *OptionalFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = OptionalFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = OptionalFloat{Value: v, Set: true}
	return nil
}

func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// MilliTime is an epoch-millisecond timestamp, as used by the cache
// metadata. Absent and null leave it zero; a negative or non-numeric
// value is a decode error, not a silent zero.
type MilliTime struct {
	time.Time
}

func (t *MilliTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("epoch timestamp: %w", err)
	}
	if ms < 0 {
		return fmt.Errorf("epoch timestamp: negative value %d", ms)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

func (t MilliTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UnixMilli())
}

// Timestamp is an RFC 3339 timestamp string, as used by the `ts` fields.
// Null and absent leave it zero; a malformed string is a decode error.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = parsed.UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// LaxTimestamp is a Timestamp for fields the upstream sometimes emits as a
// non-string (badge award dates have been observed as booleans). Any
// non-string value decodes to the zero time instead of failing.
type LaxTimestamp struct {
	Timestamp
}

func (t *LaxTimestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Time = time.Time{}
		return nil
	}
	return t.Timestamp.UnmarshalJSON(b)
}

// Rank is a TETRA LEAGUE letter rank. The set is open: values the server
// adds later decode verbatim and report Known() == false.
type Rank string

const (
	RankD      Rank = "d"
	RankDPlus  Rank = "d+"
	RankCMinus Rank = "c-"
	RankC      Rank = "c"
	RankCPlus  Rank = "c+"
	RankBMinus Rank = "b-"
	RankB      Rank = "b"
	RankBPlus  Rank = "b+"
	RankAMinus Rank = "a-"
	RankA      Rank = "a"
	RankAPlus  Rank = "a+"
	RankSMinus Rank = "s-"
	RankS      Rank = "s"
	RankSPlus  Rank = "s+"
	RankSS     Rank = "ss"
	RankU      Rank = "u"
	RankX      Rank = "x"
	RankXPlus  Rank = "x+"

	// RankUnranked is the `z` sentinel the server uses for players
	// without a rank.
	RankUnranked Rank = "z"
)

var knownRanks = map[Rank]struct{}{
	RankD: {}, RankDPlus: {}, RankCMinus: {}, RankC: {}, RankCPlus: {},
	RankBMinus: {}, RankB: {}, RankBPlus: {}, RankAMinus: {}, RankA: {},
	RankAPlus: {}, RankSMinus: {}, RankS: {}, RankSPlus: {}, RankSS: {},
	RankU: {}, RankX: {}, RankXPlus: {}, RankUnranked: {},
}

// Known reports whether the rank is one this library recognizes.
func (r Rank) Known() bool {
	_, ok := knownRanks[r]
	return ok
}

// Unranked reports whether the rank is the `z` sentinel.
func (r Rank) Unranked() bool {
	return r == RankUnranked
}

// IconURL returns the URL of the rank's icon.
func (r Rank) IconURL() string {
	return fmt.Sprintf("https://tetr.io/res/league-ranks/%s.png", string(r))
}

// GameMode identifies a play format. Unknown modes decode verbatim.
type GameMode string

const (
	ModeSprint   GameMode = "40l"
	ModeBlitz    GameMode = "blitz"
	ModeZenith   GameMode = "zenith"
	ModeZenithEx GameMode = "zenithex"
	ModeLeague   GameMode = "league"
	ModeZen      GameMode = "zen"
)

// Known reports whether the mode is one this library recognizes.
func (m GameMode) Known() bool {
	switch m {
	case ModeSprint, ModeBlitz, ModeZenith, ModeZenithEx, ModeLeague, ModeZen:
		return true
	}
	return false
}

// CacheStatus reports how the upstream served a request.
type CacheStatus string

const (
	CacheHit     CacheStatus = "hit"
	CacheMiss    CacheStatus = "miss"
	CacheAwaited CacheStatus = "awaited"
)

// Known reports whether the status is one this library recognizes.
func (s CacheStatus) Known() bool {
	switch s {
	case CacheHit, CacheMiss, CacheAwaited:
		return true
	}
	return false
}

// Role is a user account role. Unknown roles decode verbatim.
type Role string

const (
	RoleAnon    Role = "anon"
	RoleUser    Role = "user"
	RoleBot     Role = "bot"
	RoleHalfMod Role = "halfmod"
	RoleMod     Role = "mod"
	RoleAdmin   Role = "admin"
	RoleSysop   Role = "sysop"
	RoleBanned  Role = "banned"
	RoleHidden  Role = "hidden"
)

// Known reports whether the role is one this library recognizes.
func (r Role) Known() bool {
	switch r {
	case RoleAnon, RoleUser, RoleBot, RoleHalfMod, RoleMod, RoleAdmin, RoleSysop, RoleBanned, RoleHidden:
		return true
	}
	return false
}
