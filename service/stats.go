// Package service composes the channel client into the aggregate views the
// relay serves.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hexfall/tetra-channel/channel"
	"github.com/hexfall/tetra-channel/channel/model"
)

// StatsService contains methods to assemble player and server views from
// the TETRA CHANNEL API. It keeps no state between calls.
type StatsService struct {
	channel *channel.Client
	logger  *logrus.Logger
}

// NewStatsService creates a new service around the given client.
func NewStatsService(client *channel.Client, logger *logrus.Logger) *StatsService {
	return &StatsService{
		channel: client,
		logger:  logger,
	}
}

// PlayerOverview is a player profile together with the current standing and
// single-player personal bests.
type PlayerOverview struct {
	User       model.User         `json:"user"`
	Standing   model.RankStanding `json:"standing"`
	SprintBest *model.GameRecord  `json:"sprint_best,omitempty"`
	BlitzBest  *model.GameRecord  `json:"blitz_best,omitempty"`
	Cache      *model.CacheData   `json:"cache,omitempty"`
}

// PlayerOverview fetches a user's profile and their 40 LINES and BLITZ
// personal bests. A missing personal best is not an error; a missing user
// is.
func (s *StatsService) PlayerOverview(ctx context.Context, username string) (*PlayerOverview, error) {
	env, err := s.channel.UserInfo(ctx, username)
	if err != nil {
		wrappedErr := fmt.Errorf("svc: PlayerOverview - failed to fetch user %q: %w", username, err)
		s.logger.WithError(wrappedErr).Error("svc: PlayerOverview - user lookup failed")
		return nil, wrappedErr
	}

	overview := &PlayerOverview{
		User:     *env.Data,
		Standing: env.Data.League,
		Cache:    env.Cache,
	}

	one := &channel.SearchCriteria{Limit: 1}
	overview.SprintBest = s.bestRecord(ctx, username, model.ModeSprint, one)
	overview.BlitzBest = s.bestRecord(ctx, username, model.ModeBlitz, one)
	return overview, nil
}

// bestRecord returns the user's top record of a mode, or nil when there is
// none or the fetch failed. Failures are logged and swallowed so one
// missing mode does not lose the whole overview.
func (s *StatsService) bestRecord(ctx context.Context, username string, mode model.GameMode, criteria *channel.SearchCriteria) *model.GameRecord {
	env, err := s.channel.UserRecords(ctx, username, mode, channel.RecordsTop, criteria)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"username": username,
			"mode":     mode,
		}).Warn("svc: bestRecord - record fetch failed, continuing without it")
		return nil
	}
	if len(env.Data.Entries) == 0 {
		return nil
	}
	return &env.Data.Entries[0]
}

// RecordHistory fetches one page of a user's records in the given mode and
// scope. Entries the upstream sent malformed are dropped from the page and
// reported in the page's Failed list.
func (s *StatsService) RecordHistory(ctx context.Context, username string, mode model.GameMode, scope channel.RecordScope, criteria *channel.SearchCriteria) (*model.LeaderboardPage[model.GameRecord], error) {
	env, err := s.channel.UserRecords(ctx, username, mode, scope, criteria)
	if err != nil {
		wrappedErr := fmt.Errorf("svc: RecordHistory - failed to fetch records of %q: %w", username, err)
		s.logger.WithError(wrappedErr).Error("svc: RecordHistory - fetch failed")
		return nil, wrappedErr
	}
	if n := len(env.Data.Failed); n > 0 {
		s.logger.WithField("failed_entries", n).Warn("svc: RecordHistory - page decoded partially")
	}
	return env.Data, nil
}

// LeaderboardSnapshot fetches one page of the rank leaderboard. Entries the
// upstream sent malformed are dropped from the page and reported in the
// page's Failed list.
func (s *StatsService) LeaderboardSnapshot(ctx context.Context, criteria *channel.SearchCriteria) (*model.LeaderboardPage[model.LeaderboardUser], error) {
	env, err := s.channel.UserLeaderboard(ctx, criteria)
	if err != nil {
		wrappedErr := fmt.Errorf("svc: LeaderboardSnapshot - failed to fetch leaderboard: %w", err)
		s.logger.WithError(wrappedErr).Error("svc: LeaderboardSnapshot - fetch failed")
		return nil, wrappedErr
	}
	if n := len(env.Data.Failed); n > 0 {
		s.logger.WithField("failed_entries", n).Warn("svc: LeaderboardSnapshot - page decoded partially")
	}
	return env.Data, nil
}

// XPSnapshot fetches one page of the XP leaderboard.
func (s *StatsService) XPSnapshot(ctx context.Context, criteria *channel.SearchCriteria) (*model.LeaderboardPage[model.XPUser], error) {
	env, err := s.channel.XPLeaderboard(ctx, criteria)
	if err != nil {
		wrappedErr := fmt.Errorf("svc: XPSnapshot - failed to fetch XP leaderboard: %w", err)
		s.logger.WithError(wrappedErr).Error("svc: XPSnapshot - fetch failed")
		return nil, wrappedErr
	}
	if n := len(env.Data.Failed); n > 0 {
		s.logger.WithField("failed_entries", n).Warn("svc: XPSnapshot - page decoded partially")
	}
	return env.Data, nil
}

// NewsFeed fetches the latest items of the global news stream.
func (s *StatsService) NewsFeed(ctx context.Context, limit int) ([]model.News, error) {
	env, err := s.channel.LatestNews(ctx, channel.GlobalStream(), limit)
	if err != nil {
		wrappedErr := fmt.Errorf("svc: NewsFeed - failed to fetch news: %w", err)
		s.logger.WithError(wrappedErr).Error("svc: NewsFeed - fetch failed")
		return nil, wrappedErr
	}
	return env.Data.News, nil
}

// ServerOverview is the server statistics together with the activity
// snapshot.
type ServerOverview struct {
	Stats    model.ServerStats `json:"stats"`
	Activity []int             `json:"activity"`
}

// ServerOverview fetches server statistics and activity. Activity failures
// are tolerated; statistics failures are not.
func (s *StatsService) ServerOverview(ctx context.Context) (*ServerOverview, error) {
	stats, err := s.channel.ServerStats(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("svc: ServerOverview - failed to fetch server stats: %w", err)
		s.logger.WithError(wrappedErr).Error("svc: ServerOverview - stats fetch failed")
		return nil, wrappedErr
	}
	overview := &ServerOverview{Stats: *stats.Data}

	activity, err := s.channel.ServerActivity(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("svc: ServerOverview - activity fetch failed, continuing without it")
		return overview, nil
	}
	overview.Activity = activity.Data.Activity
	return overview, nil
}
