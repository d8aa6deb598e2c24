package channel

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hexfall/tetra-channel/channel/model"
)

// maxPageLimit is the largest page size the upstream accepts.
const maxPageLimit = 100

// SearchCriteria narrows a leaderboard query: page size, country filter and
// an opaque pagination cursor. Cursors come from a previously decoded page
// and are passed through verbatim.
type SearchCriteria struct {
	// Limit is the amount of entries to return, at most 100.
	// Zero means the upstream default (25).
	Limit int
	// Country is an ISO 3166-1 code to filter to. Only supported by the
	// rank leaderboard.
	Country string
	// After continues the scroll downwards from a page's NextCursor.
	After string
	// Before continues upwards from a page's PrevCursor and reverses the
	// search order. Mutually exclusive with After.
	Before string
}

// collection capabilities, used to validate criteria before a request.
type collection struct {
	name          string
	countryFilter bool
}

var (
	leagueCollection  = collection{name: "league leaderboard", countryFilter: true}
	xpCollection      = collection{name: "xp leaderboard"}
	recordsCollection = collection{name: "records leaderboard"}
	userRecords       = collection{name: "user records"}
)

func (c *SearchCriteria) validate(col collection) error {
	if c == nil {
		return nil
	}
	if c.Limit < 0 || c.Limit > maxPageLimit {
		return requestErr("limit", "must be between 0 and %d (0 = upstream default), got %d", maxPageLimit, c.Limit)
	}
	if c.After != "" && c.Before != "" {
		return requestErr("after", "cannot paginate in both directions at once")
	}
	if c.Country != "" && !col.countryFilter {
		return requestErr("country", "not supported for the %s", col.name)
	}
	return nil
}

func (c *SearchCriteria) query() url.Values {
	q := url.Values{}
	if c == nil {
		return q
	}
	if c.Limit > 0 {
		q.Set("limit", strconv.Itoa(c.Limit))
	}
	if c.Country != "" {
		q.Set("country", strings.ToUpper(c.Country))
	}
	if c.After != "" {
		q.Set("after", c.After)
	}
	if c.Before != "" {
		q.Set("before", c.Before)
	}
	return q
}

// RecordScope selects which record stream of a user to list.
type RecordScope string

const (
	// RecordsTop lists the user's best records, best first.
	RecordsTop RecordScope = "top"
	// RecordsRecent lists the user's latest records, newest first.
	RecordsRecent RecordScope = "recent"
	// RecordsProgression lists the records that were a new personal best
	// when set.
	RecordsProgression RecordScope = "progression"
)

func (s RecordScope) validate() error {
	switch s {
	case RecordsTop, RecordsRecent, RecordsProgression:
		return nil
	}
	return requestErr("scope", "unknown record scope %q", string(s))
}

// RecordsLeaderboardID names a record leaderboard: a game mode with either
// global scope or a single country.
type RecordsLeaderboardID struct {
	Mode    model.GameMode
	Country string
}

func (id RecordsLeaderboardID) String() string {
	if id.Country != "" {
		return fmt.Sprintf("%s_country_%s", id.Mode, strings.ToUpper(id.Country))
	}
	return fmt.Sprintf("%s_global", id.Mode)
}

func (id RecordsLeaderboardID) validate() error {
	if id.Mode == "" {
		return requestErr("mode", "game mode is required")
	}
	return nil
}

// SocialConnection identifies an account on an external service for the
// user search endpoint.
type SocialConnection struct {
	Service string
	ID      string
}

// Discord builds a SocialConnection for a Discord account ID.
func Discord(id string) SocialConnection {
	return SocialConnection{Service: "discord", ID: id}
}

func (s SocialConnection) query() string {
	return s.Service + ":" + s.ID
}

func (s SocialConnection) validate() error {
	if s.Service == "" || s.ID == "" {
		return requestErr("connection", "service and account ID are required")
	}
	return nil
}

// NewsStream selects a news feed: the global one or a single user's.
type NewsStream struct {
	stream string
}

// GlobalStream is the site-wide news feed.
func GlobalStream() NewsStream {
	return NewsStream{stream: "global"}
}

// UserStream is the news feed of a single user, by internal user ID.
func UserStream(userID string) NewsStream {
	return NewsStream{stream: "user_" + userID}
}

func (s NewsStream) validate() error {
	if s.stream == "" || s.stream == "user_" {
		return requestErr("stream", "news stream is required")
	}
	return nil
}
