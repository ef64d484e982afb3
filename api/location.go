package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManuelFernandezG/manny-map-sub000/store"
)

func (s *Server) addLocation(c *gin.Context) {
	var params struct {
		Alias     string  `json:"alias"`
		Address   string  `json:"address"`
		PlaceType string  `json:"place_type"`
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	location, err := s.mongoStore.AddLocation(params.Alias, params.Address, params.PlaceType, params.Longitude, params.Latitude)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location})
}

func (s *Server) getLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	location, err := s.mongoStore.GetLocation(locationID)
	if err != nil {
		switch err {
		case store.ErrLocationNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownLocation)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location})
}

// getAggregate returns the derived summary fields of a location. The
// underscore-prefixed counter fields never leave the store; only derived
// output is encoded.
func (s *Server) getAggregate(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	aggregate, err := s.mongoStore.GetAggregate(locationID)
	if err != nil {
		switch err {
		case store.ErrLocationNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownLocation)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"aggregate":     aggregate.AggregateFields,
		"recent_trends": aggregate.RecentTrendsLast7d,
		"last_update":   aggregate.LastUpdate,
	})
}
