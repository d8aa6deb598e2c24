package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hexfall/tetra-channel/channel"
	"github.com/hexfall/tetra-channel/channel/model"
	"github.com/hexfall/tetra-channel/service"
)

// Server re-serves TETRA CHANNEL data over HTTP with a router, the stats
// service and a logger.
type Server struct {
	router *gin.Engine
	stats  *service.StatsService
	logger *logrus.Logger
}

// NewServer initializes a new server around the stats service and logger
// passed from main.
func NewServer(stats *service.StatsService, logger *logrus.Logger) *Server {
	router := gin.Default()

	server := &Server{
		router: router,
		stats:  stats,
		logger: logger,
	}
	server.setupRoutes()

	return server
}

// setupRoutes defines all the routes for the server.
func (s *Server) setupRoutes() {
	s.router.GET("/ping", s.handlePing)
	s.router.GET("/user/:name", s.handleGetUser)
	s.router.GET("/user/:name/records", s.handleGetUserRecords)
	s.router.GET("/leaderboard", s.handleGetLeaderboard)
	s.router.GET("/xp-leaderboard", s.handleGetXPLeaderboard)
	s.router.GET("/news", s.handleGetNews)
	s.router.GET("/stats", s.handleGetStats)
}

// handlePing is a handler for the API health check route.
func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// handleGetUser serves a player overview for a username.
func (s *Server) handleGetUser(c *gin.Context) {
	name := c.Param("name")

	overview, err := s.stats.PlayerOverview(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err, "Failed to get player overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// handleGetUserRecords serves one page of a user's records. The game mode
// and scope come from the query, defaulting to the 40 LINES top records.
func (s *Server) handleGetUserRecords(c *gin.Context) {
	name := c.Param("name")
	mode := model.GameMode(c.DefaultQuery("mode", string(model.ModeSprint)))
	scope := channel.RecordScope(c.DefaultQuery("scope", string(channel.RecordsTop)))

	page, err := s.stats.RecordHistory(c.Request.Context(), name, mode, scope, criteriaFromQuery(c))
	if err != nil {
		s.fail(c, err, "Failed to get user records")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":     page.Entries,
		"next_cursor": page.NextCursor,
		"prev_cursor": page.PrevCursor,
		"failed":      len(page.Failed),
	})
}

// handleGetLeaderboard serves one page of the rank leaderboard.
func (s *Server) handleGetLeaderboard(c *gin.Context) {
	page, err := s.stats.LeaderboardSnapshot(c.Request.Context(), criteriaFromQuery(c))
	if err != nil {
		s.fail(c, err, "Failed to get leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":     page.Entries,
		"next_cursor": page.NextCursor,
		"prev_cursor": page.PrevCursor,
		"failed":      len(page.Failed),
	})
}

// handleGetXPLeaderboard serves one page of the XP leaderboard.
func (s *Server) handleGetXPLeaderboard(c *gin.Context) {
	page, err := s.stats.XPSnapshot(c.Request.Context(), criteriaFromQuery(c))
	if err != nil {
		s.fail(c, err, "Failed to get XP leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":     page.Entries,
		"next_cursor": page.NextCursor,
		"prev_cursor": page.PrevCursor,
		"failed":      len(page.Failed),
	})
}

// handleGetNews serves the latest global news items.
func (s *Server) handleGetNews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	news, err := s.stats.NewsFeed(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err, "Failed to get news")
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": news})
}

// handleGetStats serves the server statistics overview.
func (s *Server) handleGetStats(c *gin.Context) {
	overview, err := s.stats.ServerOverview(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to get server stats")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// criteriaFromQuery maps the pagination query parameters onto search
// criteria. Cursors are forwarded opaquely.
func criteriaFromQuery(c *gin.Context) *channel.SearchCriteria {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return &channel.SearchCriteria{
		Limit:   limit,
		Country: c.Query("country"),
		After:   c.Query("after"),
		Before:  c.Query("before"),
	}
}

// fail maps client errors onto HTTP statuses: invalid parameters are the
// caller's fault, upstream API errors keep their status, transport errors
// are a bad gateway.
func (s *Server) fail(c *gin.Context, err error, msg string) {
	var reqErr *channel.RequestError
	var apiErr *model.APIError
	var transportErr *channel.TransportError

	switch {
	case errors.As(err, &reqErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Error()})
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Message, "code": apiErr.Code})
	case errors.As(err, &transportErr):
		s.logger.WithError(err).Error(msg)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unreachable"})
	default:
		s.logger.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// Run starts the HTTP server on a specific address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
