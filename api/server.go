package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelFernandezG/manny-map-sub000/cache"
	"github.com/ManuelFernandezG/manny-map-sub000/store"
)

// Server serves the HTTP surface. Every handler is a thin collaborator of
// the aggregation engine: validate input, invoke the store, return the
// derived fields.
type Server struct {
	server      *http.Server
	router      *gin.Engine
	mongoStore  store.MongoStore
	trendCache  *cache.TrendCardCache
	tonightZone *time.Location
	traceMode   bool
}

// NewServer wires the route table. trendCache may be nil; the trend-card
// handler then recomputes on every request. tonightZone is the civil time
// zone used for the "since 8pm tonight" window boundary.
func NewServer(mongoStore store.MongoStore, trendCache *cache.TrendCardCache, tonightZone *time.Location, traceMode bool) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:      router,
		mongoStore:  mongoStore,
		trendCache:  trendCache,
		tonightZone: tonightZone,
		traceMode:   traceMode,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	s.router.Use(s.DumpRequest)

	v1 := s.router.Group("/api/v1")
	v1.POST("/locations", s.addLocation)
	v1.GET("/locations/:locationID", s.getLocation)
	v1.GET("/locations/:locationID/aggregate", s.getAggregate)
	v1.GET("/locations/:locationID/trends", s.getTrend)
	v1.GET("/locations/:locationID/trend-card", s.getTrendCard)
	v1.POST("/locations/:locationID/checkins", s.checkIn)
	v1.POST("/ratings/:ratingID/review", s.attachReview)
	v1.DELETE("/ratings/:ratingID", s.deleteRating)

	s.router.GET("/healthz", s.healthz)
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.mongoStore.Ping(ctx); err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	log.WithField("prefix", "api").Infof("server listening on %s", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
