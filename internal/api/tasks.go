package api

import (
	"errors"
	"net/http"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type taskRoutes struct {
	ts service.TaskServiceI
	a  *auth.TelegramAuth
}

func NewTaskRoutes(handler *gin.RouterGroup, ts service.TaskServiceI, a *auth.TelegramAuth) {
	r := &taskRoutes{ts: ts, a: a}
	h := handler.Group("/tasks")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/complete", r.CompleteTask)
	}
}

type CompleteTaskRequest struct {
	TaskType     string          `json:"task_type" binding:"required"`
	TaskID       string          `json:"task_id" binding:"required"`
	RewardAmount decimal.Decimal `json:"reward_amount" binding:"required"`
}

type CompleteTaskResponse struct {
	RewardAmount     decimal.Decimal `json:"reward_amount"`
	NewBalance       decimal.Decimal `json:"new_balance"`
	NewTodayEarnings decimal.Decimal `json:"new_today_earnings"`
}

func (r *taskRoutes) CompleteTask(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.RewardAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward amount"})
		return
	}

	result, err := r.ts.CompleteTask(c.Request.Context(), u.ID, model.TaskType(req.TaskType), req.TaskID, req.RewardAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		case errors.Is(err, service.ErrInvalidTaskType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task type"})
		case errors.Is(err, service.ErrTaskAlreadyCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "task already completed"})
		default:
			log.Error("failed to complete task", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete task"})
		}
		return
	}

	c.JSON(http.StatusOK, CompleteTaskResponse{
		RewardAmount:     result.RewardAmount,
		NewBalance:       result.NewBalance,
		NewTodayEarnings: result.NewTodayEarnings,
	})
}
