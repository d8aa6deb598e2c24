package model

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Prisecter is the triple-float sort key the upstream attaches to every
// leaderboard entry. Its token form is passed back verbatim as a pagination
// bound; only the upstream interprets it.
type Prisecter struct {
	Pri float64 `json:"pri"`
	Sec float64 `json:"sec"`
	Ter float64 `json:"ter"`
}

// Token renders the prisecter as a `pri:sec:ter` cursor token.
func (p Prisecter) Token() string {
	return strings.Join([]string{
		strconv.FormatFloat(p.Pri, 'f', -1, 64),
		strconv.FormatFloat(p.Sec, 'f', -1, 64),
		strconv.FormatFloat(p.Ter, 'f', -1, 64),
	}, ":")
}

// EntryError flags a single leaderboard entry that failed to decode.
type EntryError struct {
	Index  int
	Path   string
	Reason string
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry %d (%s): %s", e.Index, e.Path, e.Reason)
}

// LeaderboardPage is one page of a paginated collection. A malformed entry
// is recorded in Failed and skipped; it never fails the whole page. Entry
// order is the upstream's order.
type LeaderboardPage[T any] struct {
	Entries []T
	Failed  []EntryError

	// NextCursor continues the scroll past the last entry of this page
	// (the `after` bound); PrevCursor scrolls back past the first (the
	// `before` bound). Empty when the page had no entries.
	NextCursor string
	PrevCursor string
}

func (p *LeaderboardPage[T]) UnmarshalJSON(b []byte) error {
	var shell struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(b, &shell); err != nil {
		return decodeErr("entries", err)
	}
	*p = LeaderboardPage[T]{}
	for i, raw := range shell.Entries {
		var entry T
		if err := json.Unmarshal(raw, &entry); err != nil {
			p.Failed = append(p.Failed, EntryError{
				Index:  i,
				Path:   fmt.Sprintf("entries[%d]", i),
				Reason: err.Error(),
			})
			continue
		}
		p.Entries = append(p.Entries, entry)
	}
	if len(shell.Entries) > 0 {
		p.PrevCursor = cursorOf(shell.Entries[0])
		p.NextCursor = cursorOf(shell.Entries[len(shell.Entries)-1])
	}
	return nil
}

// cursorOf pulls the pagination key out of a raw entry. Entries without one
// yield an empty cursor; the caller simply cannot paginate past them.
func cursorOf(raw json.RawMessage) string {
	var probe struct {
		P *Prisecter `json:"p"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.P == nil {
		return ""
	}
	return probe.P.Token()
}

// LeaderboardUser is an entry of the TETRA LEAGUE user leaderboard.
type LeaderboardUser struct {
	ID          string        `json:"_id"`
	Username    string        `json:"username"`
	Role        Role          `json:"role"`
	CreatedAt   Timestamp     `json:"ts"`
	XP          float64       `json:"xp"`
	Country     string        `json:"country"`
	Supporter   bool          `json:"supporter"`
	League      PartialLeague `json:"league"`
	GamesPlayed int           `json:"gamesplayed"`
	GamesWon    int           `json:"gameswon"`
	GameTime    float64       `json:"gametime"`
	Prisecter   Prisecter     `json:"p"`
}

// PartialLeague is the league summary embedded in leaderboard entries. It
// is smaller than the full league object on a user profile.
type PartialLeague struct {
	GamesPlayed int           `json:"gamesplayed"`
	GamesWon    int           `json:"gameswon"`
	TR          float64       `json:"tr"`
	GXE         OptionalFloat `json:"gxe"`
	Rank        Rank          `json:"rank"`
	BestRank    Rank          `json:"bestrank"`
	Glicko      OptionalFloat `json:"glicko"`
	RD          OptionalFloat `json:"rd"`
	APM         OptionalFloat `json:"apm"`
	PPS         OptionalFloat `json:"pps"`
	VS          OptionalFloat `json:"vs"`
	Decaying    bool          `json:"decaying"`
}

// XPUser is an entry of the XP leaderboard.
type XPUser struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	CreatedAt   Timestamp `json:"ts"`
	Country     string    `json:"country"`
	Supporter   bool      `json:"supporter"`
	XP          float64   `json:"xp"`
	PlayTime    float64   `json:"gametime"`
	GamesPlayed int       `json:"gamesplayed"`
	GamesWon    int       `json:"gameswon"`
	Prisecter   Prisecter `json:"p"`
}
