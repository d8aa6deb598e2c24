package model

import (
	json "github.com/goccy/go-json"
)

// NewsType identifies the shape of a news item's data. The set is open;
// the server adds new types without notice.
type NewsType string

const (
	NewsLeaderboard   NewsType = "leaderboard"
	NewsPersonalBest  NewsType = "personalbest"
	NewsBadge         NewsType = "badge"
	NewsRankUp        NewsType = "rank_up"
	NewsSupporter     NewsType = "supporter"
	NewsSupporterGift NewsType = "supporter_gift"
)

// Known reports whether the type is one this library recognizes.
func (t NewsType) Known() bool {
	switch t {
	case NewsLeaderboard, NewsPersonalBest, NewsBadge, NewsRankUp, NewsSupporter, NewsSupporterGift:
		return true
	}
	return false
}

// News is a single news feed item. Data stays raw until the caller asks for
// the typed payload, so unknown item types never fail a feed.
type News struct {
	ID        string          `json:"_id"`
	Stream    string          `json:"stream"`
	Type      NewsType        `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt Timestamp       `json:"ts"`
}

// LeaderboardNews announces a new personal best entering a global
// leaderboard.
type LeaderboardNews struct {
	Username string   `json:"username"`
	Mode     GameMode `json:"gametype"`
	Rank     int      `json:"rank"`
	Result   float64  `json:"result"`
	ReplayID string   `json:"replayid"`
}

// PersonalBestNews announces a user's new personal best.
type PersonalBestNews struct {
	Username string   `json:"username"`
	Mode     GameMode `json:"gametype"`
	Result   float64  `json:"result"`
	ReplayID string   `json:"replayid"`
}

// BadgeNews announces an awarded badge.
type BadgeNews struct {
	Username string `json:"username"`
	BadgeID  string `json:"type"`
	Label    string `json:"label"`
}

// RankUpNews announces a new top rank in TETRA LEAGUE.
type RankUpNews struct {
	Username string `json:"username"`
	Rank     Rank   `json:"rank"`
}

// Payload decodes the item's data into the type named by the discriminant.
// Unknown types return the raw data unchanged, never an error.
func (n *News) Payload() (any, error) {
	decode := func(v any) (any, error) {
		if err := json.Unmarshal(n.Data, v); err != nil {
			return nil, decodeErr("news.data", err)
		}
		return v, nil
	}
	switch n.Type {
	case NewsLeaderboard:
		return decode(&LeaderboardNews{})
	case NewsPersonalBest:
		return decode(&PersonalBestNews{})
	case NewsBadge:
		return decode(&BadgeNews{})
	case NewsRankUp:
		return decode(&RankUpNews{})
	default:
		return n.Data, nil
	}
}

// LatestNews is the payload of the latest-news endpoint.
type LatestNews struct {
	News []News `json:"news"`
}
