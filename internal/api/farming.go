package api

import (
	"errors"
	"net/http"
	"time"

	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const farmingPushInterval = 5 * time.Second

type farmingRoutes struct {
	fs service.FarmingServiceI
	a  *auth.TelegramAuth
}

func NewFarmingRoutes(handler *gin.RouterGroup, fs service.FarmingServiceI, a *auth.TelegramAuth) {
	r := &farmingRoutes{fs: fs, a: a}
	h := handler.Group("/farming")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.GET("/status", r.Status)
		h.POST("/collect", r.Collect)
		h.GET("/ws", r.Feed)
	}
}

type FarmingStatusResponse struct {
	ReadyToCollect decimal.Decimal `json:"ready_to_collect"`
	MaxAccrual     decimal.Decimal `json:"max_accrual"`
	FarmingRate    decimal.Decimal `json:"farming_rate"`
	ReferenceTime  time.Time       `json:"reference_time"`
	ElapsedHours   float64         `json:"elapsed_hours"`
}

func (r *farmingRoutes) Status(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status, err := r.fs.Accrue(c.Request.Context(), u.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		log.Error("failed to accrue farming", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update farming data"})
		return
	}

	c.JSON(http.StatusOK, FarmingStatusResponse{
		ReadyToCollect: status.ReadyToCollect,
		MaxAccrual:     status.MaxAccrual,
		FarmingRate:    status.FarmingRate,
		ReferenceTime:  status.ReferenceTime,
		ElapsedHours:   status.ElapsedHours,
	})
}

type CollectResponse struct {
	Collected        decimal.Decimal `json:"collected"`
	NewBalance       decimal.Decimal `json:"new_balance"`
	NewTodayEarnings decimal.Decimal `json:"new_today_earnings"`
}

func (r *farmingRoutes) Collect(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	result, err := r.fs.Collect(c.Request.Context(), u.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		case errors.Is(err, service.ErrNothingToCollect):
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to collect"})
		default:
			log.Error("failed to collect", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect"})
		}
		return
	}

	c.JSON(http.StatusOK, CollectResponse{
		Collected:        result.Collected,
		NewBalance:       result.NewBalance,
		NewTodayEarnings: result.NewTodayEarnings,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Feed pushes a fresh farming snapshot on a server-side ticker until the
// client disconnects, replacing client-driven polling.
func (r *farmingRoutes) Feed(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(farmingPushInterval)
	defer ticker.Stop()

	for {
		status, err := r.fs.Accrue(c.Request.Context(), u.ID)
		if err != nil {
			log.Error("failed to accrue farming for feed",
				zap.Int64("telegram_id", u.ID),
				zap.Error(err))
			return
		}

		payload, err := json.Marshal(FarmingStatusResponse{
			ReadyToCollect: status.ReadyToCollect,
			MaxAccrual:     status.MaxAccrual,
			FarmingRate:    status.FarmingRate,
			ReferenceTime:  status.ReferenceTime,
			ElapsedHours:   status.ElapsedHours,
		})
		if err != nil {
			log.Error("failed to marshal farming snapshot", zap.Error(err))
			return
		}

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-closed:
			return
		}
	}
}
