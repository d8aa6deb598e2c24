package channel_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfall/tetra-channel/channel"
	"github.com/hexfall/tetra-channel/channel/model"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *channel.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return channel.New(channel.Config{BaseURL: srv.URL, SessionID: "sess-1"}, testLogger())
}

func TestUserInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/hexa", r.URL.Path)
		assert.Equal(t, "sess-1", r.Header.Get("X-Session-ID"))
		w.Write([]byte(`{"success": true, "cache": {"status": "hit", "cached_at": 1700000000000, "cached_until": 1700000060000}, "data": {"_id": "u1", "username": "hexa", "role": "user", "league": {"rank": "z", "gamesplayed": 0}}}`))
	})

	env, err := client.UserInfo(context.Background(), "HEXA")
	require.NoError(t, err)
	assert.Equal(t, "hexa", env.Data.Username)
	assert.Equal(t, model.StandingUnranked, env.Data.League.Kind)
	require.NotNil(t, env.Cache)
	assert.Equal(t, model.CacheHit, env.Cache.Status)
}

func TestUserInfoNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "error": {"msg": "No such user!"}}`))
	})

	_, err := client.UserInfo(context.Background(), "ghost")
	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestTransportErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse all connections
	client := channel.New(channel.Config{BaseURL: srv.URL}, testLogger())

	_, err := client.ServerStats(context.Background())
	var transportErr *channel.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestUserSummaries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/hexa/summaries", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {
			"40l": {"record": {"_id": "rec1", "gamemode": "40l", "results": {"stats": {"finaltime": 32001}}}, "rank": 412, "rank_local": 9},
			"blitz": {"record": null, "rank": -1, "rank_local": -1},
			"zenith": {"record": null, "rank": -1, "rank_local": -1},
			"zenithex": {"record": null, "rank": -1, "rank_local": -1},
			"league": {"rank": "s", "gamesplayed": 120, "rating": 18500.5},
			"zen": {"level": 42, "score": 812345}
		}}`))
	})

	env, err := client.UserSummaries(context.Background(), "HEXA")
	require.NoError(t, err)
	require.NotNil(t, env.Data.Sprint.Record)
	assert.Equal(t, 412, env.Data.Sprint.Rank)
	assert.Nil(t, env.Data.Blitz.Record)
	assert.Equal(t, model.StandingRanked, env.Data.League.Kind)
}

func TestUserRecordsPathAndCursor(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/hexa/records/40l/top", r.URL.Path)
		assert.Equal(t, "12345.678:0:0", r.URL.Query().Get("after"), "cursor must pass through verbatim")
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"success": true, "data": {"entries": []}}`))
	})

	env, err := client.UserRecords(context.Background(), "hexa", model.ModeSprint, channel.RecordsTop,
		&channel.SearchCriteria{Limit: 3, After: "12345.678:0:0"})
	require.NoError(t, err)
	assert.Empty(t, env.Data.Entries)
}

func TestUserLeaderboardPartialPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/by/league", r.URL.Path)
		assert.Equal(t, "PL", r.URL.Query().Get("country"))
		w.Write([]byte(`{"success": true, "data": {"entries": [
			{"_id": "u1", "username": "a", "league": {"rank": "x", "tr": 25000}, "p": {"pri": 25000, "sec": 0, "ter": 0}},
			{"_id": "u2", "username": "b", "league": "gone"}
		]}}`))
	})

	env, err := client.UserLeaderboard(context.Background(), &channel.SearchCriteria{Country: "pl"})
	require.NoError(t, err)
	assert.Len(t, env.Data.Entries, 1)
	assert.Len(t, env.Data.Failed, 1)
	assert.Equal(t, "25000:0:0", env.Data.PrevCursor)
}

func TestRecordLeaderboard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records/40l_global", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"success": true, "data": {"entries": [
			{"_id": "rec1", "gamemode": "40l", "results": {"stats": {"finaltime": 18500.1}}, "p": {"pri": 18500.1, "sec": 0, "ter": 0}}
		]}}`))
	})

	env, err := client.RecordLeaderboard(context.Background(),
		channel.RecordsLeaderboardID{Mode: model.ModeSprint},
		&channel.SearchCriteria{Limit: 10})
	require.NoError(t, err)
	require.Len(t, env.Data.Entries, 1)
	require.NotNil(t, env.Data.Entries[0].Sprint)
	assert.Equal(t, 18500.1, env.Data.Entries[0].Sprint.FinalTime)
	assert.Equal(t, "18500.1:0:0", env.Data.NextCursor)
}

func TestSearchUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/search/discord:88888888", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"user": {"_id": "u1", "username": "hexa"}}}`))
	})

	env, err := client.SearchUser(context.Background(), channel.Discord("88888888"))
	require.NoError(t, err)
	require.NotNil(t, env.Data.User)
	assert.Equal(t, "hexa", env.Data.User.Username)
}

func TestLatestNews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/global", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"success": true, "data": {"news": [
			{"_id": "n1", "stream": "global", "type": "badge", "data": {"username": "hexa", "type": "sg", "label": "SG"}, "ts": "2024-01-01T00:00:00Z"}
		]}}`))
	})

	env, err := client.LatestNews(context.Background(), channel.GlobalStream(), 5)
	require.NoError(t, err)
	require.Len(t, env.Data.News, 1)
	assert.Equal(t, model.NewsBadge, env.Data.News[0].Type)
}

func TestParameterValidation(t *testing.T) {
	// The handler must never be reached: validation fails first.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"empty user", func() error {
			_, err := client.UserInfo(ctx, "")
			return err
		}},
		{"limit out of range", func() error {
			_, err := client.UserLeaderboard(ctx, &channel.SearchCriteria{Limit: 101})
			return err
		}},
		{"both cursors", func() error {
			_, err := client.UserLeaderboard(ctx, &channel.SearchCriteria{After: "1:0:0", Before: "2:0:0"})
			return err
		}},
		{"country on xp leaderboard", func() error {
			_, err := client.XPLeaderboard(ctx, &channel.SearchCriteria{Country: "PL"})
			return err
		}},
		{"unknown record scope", func() error {
			_, err := client.UserRecords(ctx, "hexa", model.ModeSprint, channel.RecordScope("best"), nil)
			return err
		}},
		{"records leaderboard without mode", func() error {
			_, err := client.RecordLeaderboard(ctx, channel.RecordsLeaderboardID{}, nil)
			return err
		}},
		{"missing search connection", func() error {
			_, err := client.SearchUser(ctx, channel.SocialConnection{})
			return err
		}},
		{"news limit", func() error {
			_, err := client.LatestNews(ctx, channel.GlobalStream(), 9000)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var reqErr *channel.RequestError
			require.ErrorAs(t, err, &reqErr)
		})
	}
}

func TestRecordLeaderboardID(t *testing.T) {
	assert.Equal(t, "40l_global", channel.RecordsLeaderboardID{Mode: model.ModeSprint}.String())
	assert.Equal(t, "blitz_country_PL", channel.RecordsLeaderboardID{Mode: model.ModeBlitz, Country: "pl"}.String())
}
