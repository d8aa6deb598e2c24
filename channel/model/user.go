package model

import (
	"fmt"
	"math"
)

// Badge is a profile badge. Award timestamps are omitted (or emitted as a
// non-string) for some badges, so their absence is valid.
type Badge struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	Group     string       `json:"group"`
	AwardedAt LaxTimestamp `json:"ts"`
}

// IconURL returns the URL of the badge's icon. Badge IDs may contain
// forward slashes; they must not be escaped.
func (b *Badge) IconURL() string {
	return fmt.Sprintf("https://tetr.io/res/badges/%s.png", b.ID)
}

// Connection is a linked third-party account.
type Connection struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Connections holds a user's third-party account links.
type Connections struct {
	Discord *Connection `json:"discord"`
}

// User is a full user profile. Statistics a user has chosen to hide come
// back as -1.
type User struct {
	ID            string       `json:"_id"`
	Username      string       `json:"username"`
	Role          Role         `json:"role"`
	CreatedAt     Timestamp    `json:"ts"`
	BotMaster     string       `json:"botmaster"`
	Badges        []Badge      `json:"badges"`
	XP            float64      `json:"xp"`
	GamesPlayed   int          `json:"gamesplayed"`
	GamesWon      int          `json:"gameswon"`
	GameTime      float64      `json:"gametime"`
	Country       string       `json:"country"`
	BadStanding   bool         `json:"badstanding"`
	Supporter     bool         `json:"supporter"`
	SupporterTier int          `json:"supporter_tier"`
	Verified      bool         `json:"verified"`
	League        RankStanding `json:"league"`

	AvatarRevision int64  `json:"avatar_revision"`
	BannerRevision int64  `json:"banner_revision"`
	Bio            string `json:"bio"`

	Connections Connections `json:"connections"`
	FriendCount int         `json:"friend_count"`
}

// Level returns the user's level, derived from XP.
func (u *User) Level() int {
	xp := u.XP
	return int(math.Pow(xp/500, 0.6) + xp/(5000+math.Max(0, xp-4000000)/5000) + 1)
}

// AvatarURL returns the URL of the user's avatar, or an empty string if the
// user has never uploaded one.
func (u *User) AvatarURL() string {
	if u.AvatarRevision == 0 {
		return ""
	}
	return fmt.Sprintf("https://tetr.io/user-content/avatars/%s.jpg?rv=%d", u.ID, u.AvatarRevision)
}

// SearchedUser is the result of an external-account lookup. User is nil
// when no account matched.
type SearchedUser struct {
	User *PlayerRef `json:"user"`
}
