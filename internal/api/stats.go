package api

import (
	"errors"
	"net/http"
	"time"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type statsRoutes struct {
	ss service.StatsServiceI
	a  *auth.TelegramAuth
}

func NewStatsRoutes(handler *gin.RouterGroup, ss service.StatsServiceI, a *auth.TelegramAuth) {
	r := &statsRoutes{ss: ss, a: a}
	h := handler.Group("/stats")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.GET("/", r.GetStats)
	}
}

type TaskCompletionResponse struct {
	TaskType     string          `json:"task_type"`
	TaskID       string          `json:"task_id"`
	RewardAmount decimal.Decimal `json:"reward_amount"`
	CompletedAt  time.Time       `json:"completed_at"`
}

type ReferralResponse struct {
	ReferredID uuid.UUID `json:"referred_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatsTimersResponse struct {
	HasCheckedInToday    bool  `json:"has_checked_in_today"`
	TimeUntilReset       int64 `json:"time_until_reset"`
	TimeUntilWeeklyReset int64 `json:"time_until_weekly_reset"`
}

type StatsResponse struct {
	Profile         gin.H                    `json:"profile"`
	TaskCompletions []TaskCompletionResponse `json:"task_completions"`
	Referrals       []ReferralResponse       `json:"referrals"`
	Timers          StatsTimersResponse      `json:"timers"`
	Farming         FarmingStatusResponse    `json:"farming"`
}

func (r *statsRoutes) GetStats(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	stats, err := r.ss.GetStats(c.Request.Context(), u.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		log.Error("failed to get user stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user stats"})
		return
	}

	c.JSON(http.StatusOK, buildStatsResponse(stats))
}

func buildStatsResponse(stats *model.UserStats) StatsResponse {
	p := stats.Profile

	completions := make([]TaskCompletionResponse, len(stats.TaskCompletions))
	for i, tc := range stats.TaskCompletions {
		completions[i] = TaskCompletionResponse{
			TaskType:     string(tc.TaskType),
			TaskID:       tc.TaskID,
			RewardAmount: tc.RewardAmount,
			CompletedAt:  tc.CompletedAt,
		}
	}

	referrals := make([]ReferralResponse, len(stats.Referrals))
	for i, ref := range stats.Referrals {
		referrals[i] = ReferralResponse{
			ReferredID: ref.ReferredID,
			CreatedAt:  ref.CreatedAt,
		}
	}

	return StatsResponse{
		Profile: gin.H{
			"telegram_id":      p.TelegramID,
			"first_name":       p.FirstName,
			"last_name":        p.LastName,
			"username":         p.Username,
			"tonix_balance":    p.TonixBalance,
			"farming_rate":     p.FarmingRate,
			"ready_to_collect": p.ReadyToCollect,
			"today_earnings":   p.TodayEarnings,
			"last_collect":     p.LastCollect,
			"last_check_in":    p.LastCheckIn,
			"daily_streak":     p.DailyStreak,
			"created_at":       p.CreatedAt,
		},
		TaskCompletions: completions,
		Referrals:       referrals,
		Timers: StatsTimersResponse{
			HasCheckedInToday:    stats.Timers.HasCheckedInToday,
			TimeUntilReset:       stats.Timers.TimeUntilReset,
			TimeUntilWeeklyReset: stats.Timers.TimeUntilWeeklyReset,
		},
		Farming: FarmingStatusResponse{
			ReadyToCollect: stats.Farming.ReadyToCollect,
			MaxAccrual:     stats.Farming.MaxAccrual,
			FarmingRate:    stats.Farming.FarmingRate,
			ReferenceTime:  stats.Farming.ReferenceTime,
			ElapsedHours:   stats.Farming.ElapsedHours,
		},
	}
}
