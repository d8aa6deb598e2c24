package model

import (
	"fmt"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaderboardEntry(i int, tr float64) string {
	return fmt.Sprintf(`{
		"_id": "u%d", "username": "player%d", "role": "user",
		"xp": 50000, "country": "PL", "gamesplayed": 100, "gameswon": 60,
		"league": {"gamesplayed": 100, "gameswon": 60, "tr": %f, "rank": "u", "glicko": 2400.0, "rd": 61.0},
		"p": {"pri": %f, "sec": 0, "ter": 0}
	}`, i, i, tr, tr)
}

func TestLeaderboardPageDecodesPartially(t *testing.T) {
	entries := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		entries = append(entries, leaderboardEntry(i, 24000-float64(i)))
	}
	// One malformed entry in the middle must not fail the page.
	entries = append(entries[:5], append([]string{`{"_id": "broken", "league": 42}`}, entries[5:]...)...)
	raw := fmt.Sprintf(`{"entries": [%s]}`, strings.Join(entries, ","))

	var page LeaderboardPage[LeaderboardUser]
	require.NoError(t, json.Unmarshal([]byte(raw), &page))

	assert.Len(t, page.Entries, 10)
	require.Len(t, page.Failed, 1)
	assert.Equal(t, 5, page.Failed[0].Index)
	assert.Equal(t, "entries[5]", page.Failed[0].Path)
	assert.NotEmpty(t, page.Failed[0].Reason)

	// Order of the surviving entries is the upstream order.
	assert.Equal(t, "player0", page.Entries[0].Username)
	assert.Equal(t, "player9", page.Entries[9].Username)
}

func TestLeaderboardPageCursors(t *testing.T) {
	raw := fmt.Sprintf(`{"entries": [%s, %s]}`,
		leaderboardEntry(1, 25000.5), leaderboardEntry(2, 24000))

	var page LeaderboardPage[LeaderboardUser]
	require.NoError(t, json.Unmarshal([]byte(raw), &page))

	assert.Equal(t, "25000.5:0:0", page.PrevCursor)
	assert.Equal(t, "24000:0:0", page.NextCursor)
}

func TestLeaderboardPageEmpty(t *testing.T) {
	var page LeaderboardPage[LeaderboardUser]
	require.NoError(t, json.Unmarshal([]byte(`{"entries": []}`), &page))

	assert.Empty(t, page.Entries)
	assert.Empty(t, page.Failed)
	assert.Empty(t, page.NextCursor)
	assert.Empty(t, page.PrevCursor)
}

func TestLeaderboardPageOfRecords(t *testing.T) {
	raw := `{"entries": [
		{"_id": "r1", "replayid": "rr1", "gamemode": "40l",
		 "results": {"stats": {"finaltime": 50000}},
		 "p": {"pri": 50000, "sec": 1, "ter": 2}}
	]}`
	var page LeaderboardPage[GameRecord]
	require.NoError(t, json.Unmarshal([]byte(raw), &page))

	require.Len(t, page.Entries, 1)
	require.NotNil(t, page.Entries[0].Prisecter)
	assert.Equal(t, "50000:1:2", page.NextCursor)
}

func TestPrisecterToken(t *testing.T) {
	p := Prisecter{Pri: 12345.678, Sec: 0, Ter: 0}
	assert.Equal(t, "12345.678:0:0", p.Token())
}
