package api

import (
	"errors"
	"net/http"

	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type checkInRoutes struct {
	cs service.CheckInServiceI
	a  *auth.TelegramAuth
}

func NewCheckInRoutes(handler *gin.RouterGroup, cs service.CheckInServiceI, a *auth.TelegramAuth) {
	r := &checkInRoutes{cs: cs, a: a}
	h := handler.Group("/checkin")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/", r.CheckIn)
	}
}

type CheckInResponse struct {
	NewStreak   int    `json:"new_streak"`
	CheckInDate string `json:"check_in_date"`
}

func (r *checkInRoutes) CheckIn(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	result, err := r.cs.CheckIn(c.Request.Context(), u.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already checked in today"})
		default:
			log.Error("failed to process check-in", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, CheckInResponse{
		NewStreak:   result.NewStreak,
		CheckInDate: result.CheckInDate,
	})
}
