// Package channel is a typed client for the TETRA CHANNEL API, the public
// statistics and leaderboard interface of TETR.IO.
package channel

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/hexfall/tetra-channel/channel/model"
)

// DefaultBaseURL is the production TETRA CHANNEL endpoint.
const DefaultBaseURL = "https://ch.tetr.io/api"

// Config is the immutable client configuration. Every request reads it;
// nothing writes it after New.
type Config struct {
	// BaseURL overrides the API endpoint. Empty means DefaultBaseURL.
	BaseURL string
	// SessionID, when set, is sent as the X-Session-ID header so the
	// upstream can group this client's requests.
	SessionID string
}

// Client issues requests against the TETRA CHANNEL API. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	rc     *resty.Client
	logger *logrus.Logger
}

// New creates a Client. A nil logger falls back to a default logrus logger.
func New(cfg Config, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeader("Accept", "application/json")
	if cfg.SessionID != "" {
		rc.SetHeader("X-Session-ID", cfg.SessionID)
	}
	return &Client{rc: rc, logger: logger}
}

// fetch performs a GET against path and decodes the enveloped payload.
func fetch[T any](ctx context.Context, c *Client, path string, query url.Values) (*model.Envelope[T], error) {
	req := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Error("channel - request failed")
		return nil, &TransportError{Err: err}
	}

	env, err := model.DecodeEnvelope[T](resp.StatusCode(), resp.Body())
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode(),
		}).Warn("channel - response rejected")
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"path":   path,
		"status": resp.StatusCode(),
	}).Debug("channel - response decoded")
	return env, nil
}

// UserInfo fetches the detailed profile of a user, by username or internal
// user ID.
func (c *Client) UserInfo(ctx context.Context, user string) (*model.Envelope[model.User], error) {
	if user == "" {
		return nil, requestErr("user", "username or user ID is required")
	}
	path := "/users/" + url.PathEscape(strings.ToLower(user))
	return fetch[model.User](ctx, c, path, nil)
}

// UserSummaries fetches the per-mode personal-best overview of a user in a
// single call.
func (c *Client) UserSummaries(ctx context.Context, user string) (*model.Envelope[model.UserSummaries], error) {
	if user == "" {
		return nil, requestErr("user", "username or user ID is required")
	}
	path := "/users/" + url.PathEscape(strings.ToLower(user)) + "/summaries"
	return fetch[model.UserSummaries](ctx, c, path, nil)
}

// UserRecords fetches one page of a user's records in the given game mode
// and scope.
func (c *Client) UserRecords(ctx context.Context, user string, mode model.GameMode, scope RecordScope, criteria *SearchCriteria) (*model.Envelope[model.LeaderboardPage[model.GameRecord]], error) {
	if user == "" {
		return nil, requestErr("user", "username or user ID is required")
	}
	if mode == "" {
		return nil, requestErr("mode", "game mode is required")
	}
	if err := scope.validate(); err != nil {
		return nil, err
	}
	if err := criteria.validate(userRecords); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/users/%s/records/%s/%s",
		url.PathEscape(strings.ToLower(user)), url.PathEscape(string(mode)), string(scope))
	return fetch[model.LeaderboardPage[model.GameRecord]](ctx, c, path, criteria.query())
}

// UserLeaderboard fetches one page of the TETRA LEAGUE user leaderboard,
// sorted by rating.
func (c *Client) UserLeaderboard(ctx context.Context, criteria *SearchCriteria) (*model.Envelope[model.LeaderboardPage[model.LeaderboardUser]], error) {
	if err := criteria.validate(leagueCollection); err != nil {
		return nil, err
	}
	return fetch[model.LeaderboardPage[model.LeaderboardUser]](ctx, c, "/users/by/league", criteria.query())
}

// XPLeaderboard fetches one page of the XP leaderboard.
func (c *Client) XPLeaderboard(ctx context.Context, criteria *SearchCriteria) (*model.Envelope[model.LeaderboardPage[model.XPUser]], error) {
	if err := criteria.validate(xpCollection); err != nil {
		return nil, err
	}
	return fetch[model.LeaderboardPage[model.XPUser]](ctx, c, "/users/by/xp", criteria.query())
}

// RecordLeaderboard fetches one page of a record leaderboard.
func (c *Client) RecordLeaderboard(ctx context.Context, id RecordsLeaderboardID, criteria *SearchCriteria) (*model.Envelope[model.LeaderboardPage[model.GameRecord]], error) {
	if err := id.validate(); err != nil {
		return nil, err
	}
	if err := criteria.validate(recordsCollection); err != nil {
		return nil, err
	}
	path := "/records/" + url.PathEscape(id.String())
	return fetch[model.LeaderboardPage[model.GameRecord]](ctx, c, path, criteria.query())
}

// SearchUser looks up the user owning an external account, e.g. a Discord
// ID.
func (c *Client) SearchUser(ctx context.Context, connection SocialConnection) (*model.Envelope[model.SearchedUser], error) {
	if err := connection.validate(); err != nil {
		return nil, err
	}
	path := "/users/search/" + url.PathEscape(connection.query())
	return fetch[model.SearchedUser](ctx, c, path, nil)
}

// ServerStats fetches global statistics about the service.
func (c *Client) ServerStats(ctx context.Context) (*model.Envelope[model.ServerStats], error) {
	return fetch[model.ServerStats](ctx, c, "/general/stats", nil)
}

// ServerActivity fetches the user activity snapshot of the last two days.
func (c *Client) ServerActivity(ctx context.Context) (*model.Envelope[model.ServerActivity], error) {
	return fetch[model.ServerActivity](ctx, c, "/general/activity", nil)
}

// LatestNews fetches the latest news items of a stream. A zero limit means
// the upstream default (25).
func (c *Client) LatestNews(ctx context.Context, stream NewsStream, limit int) (*model.Envelope[model.LatestNews], error) {
	if err := stream.validate(); err != nil {
		return nil, err
	}
	if limit < 0 || limit > maxPageLimit {
		return nil, requestErr("limit", "must be between 0 and %d (0 = upstream default), got %d", maxPageLimit, limit)
	}
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/news/" + url.PathEscape(stream.stream)
	return fetch[model.LatestNews](ctx, c, path, query)
}
