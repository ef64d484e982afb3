package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManuelFernandezG/manny-map-sub000/score"
)

const tonightHour = 20

// getTrend recomputes the rolling-window trend on demand. Dashboards use
// this full-precision shape; the persisted recentTrendsLast7d is refreshed
// on every engine pass and may lag between mutations.
func (s *Server) getTrend(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Days int `form:"days,default=7"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if params.Days <= 0 || params.Days > 90 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	windowStart := score.RollingWindowStart(time.Now().UTC(), params.Days)
	events, err := s.mongoStore.ListRatingsSince(locationID, windowStart)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": score.DeriveWindowedTrend(events, windowStart)})
}

// getTrendCard serves the reduced "tonight" shape for map cards: check-ins
// and the dominant vibe since the target hour of the current local day.
// Cards are requested per map viewport, so they go through the short-TTL
// redis cache when one is configured.
func (s *Server) getTrendCard(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if card, ok := s.trendCache.Get(c.Request.Context(), locationID.Hex(), tonightHour); ok {
		c.JSON(http.StatusOK, gin.H{"trend_card": card})
		return
	}

	windowStart := score.SinceLocalHour(time.Now(), tonightHour, s.tonightZone)
	events, err := s.mongoStore.ListRatingsSince(locationID, windowStart)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	card := score.DeriveTrendCard(events, windowStart)
	if err := s.trendCache.Set(c.Request.Context(), locationID.Hex(), tonightHour, card); err != nil {
		log.WithFields(log.Fields{
			"prefix": "api",
			"error":  err,
		}).Warn("cache trend card")
	}

	c.JSON(http.StatusOK, gin.H{"trend_card": card})
}
