package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
	"github.com/ManuelFernandezG/manny-map-sub000/store"
)

func (s *Server) checkIn(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		UserID        string          `json:"user_id"`
		AgeGroup      schema.AgeGroup `json:"age_group"`
		Gender        schema.Gender   `json:"gender"`
		CompanionType string          `json:"companion_type"`
	}
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if params.UserID == "" {
		// anonymous check-ins still need a stable identity for dedup upstream
		params.UserID = uuid.NewString()
	}

	event, err := s.mongoStore.CheckIn(schema.RatingEvent{
		LocationID:    locationID,
		UserID:        params.UserID,
		AgeGroup:      params.AgeGroup,
		Gender:        params.Gender,
		CompanionType: params.CompanionType,
	})
	if err != nil {
		switch err {
		case store.ErrLocationNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownLocation)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": event})
}

func (s *Server) attachReview(c *gin.Context) {
	ratingID, err := primitive.ObjectIDFromHex(c.Param("ratingID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Dimensions map[string]schema.DimensionScore `json:"dimensions"`
	}
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if len(params.Dimensions) == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	event, err := s.mongoStore.AttachReview(ratingID, schema.RatingPayload{
		Dimensions: params.Dimensions,
	})
	if err != nil {
		switch err {
		case store.ErrRatingNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownRating)
		case store.ErrLocationNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownLocation)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": event})
}

func (s *Server) deleteRating(c *gin.Context) {
	ratingID, err := primitive.ObjectIDFromHex(c.Param("ratingID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if err := s.mongoStore.DeleteRating(ratingID); err != nil {
		switch err {
		case store.ErrRatingNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownRating)
		case store.ErrLocationNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownLocation)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
