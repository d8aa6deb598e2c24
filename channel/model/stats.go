package model

// ServerStats are global statistics about the service.
type ServerStats struct {
	UserCount      int64   `json:"usercount"`
	UserCountDelta float64 `json:"usercount_delta"`
	AnonCount      int64   `json:"anoncount"`
	TotalAccounts  int64   `json:"totalaccounts"`
	RankedCount    int64   `json:"rankedcount"`
	RecordCount    int64   `json:"recordcount"`
	GamesPlayed    int64   `json:"gamesplayed"`
	GamesDelta     float64 `json:"gamesplayed_delta"`
	GamesFinished  int64   `json:"gamesfinished"`
	PlayTime       float64 `json:"gametime"`
	Inputs         int64   `json:"inputs"`
	PiecesPlaced   int64   `json:"piecesplaced"`
}

// RegisteredPlayers returns the amount of non-anonymous accounts.
func (s *ServerStats) RegisteredPlayers() int64 {
	return s.UserCount - s.AnonCount
}

// PlayTimeHours returns the total play time in hours.
func (s *ServerStats) PlayTimeHours() float64 {
	return s.PlayTime / 3600
}

// ServerActivity is a snapshot of user activity over the last two days,
// one sample per half hour.
type ServerActivity struct {
	Activity []int `json:"activity"`
}

// Peak returns the highest sample, or 0 for an empty snapshot.
func (a *ServerActivity) Peak() int {
	peak := 0
	for _, v := range a.Activity {
		if v > peak {
			peak = v
		}
	}
	return peak
}
