package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tonix_miniapp/internal/middleware"
	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

type userRoutes struct {
	us service.UserServiceI
	a  *auth.TelegramAuth
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.TelegramAuth, authz *middleware.Authorization) {
	r := &userRoutes{us: us, a: a}
	h := handler.Group("/users")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/", r.RegisterUser)
		h.GET("/:telegram_id", r.GetUserByTelegramID)
		h.GET("/:telegram_id/avatar", r.GetUserAvatar)

		h.PATCH("/:telegram_id/farming-rate", authz.AdminOnly(), r.SetFarmingRate)
	}
}

type RegisterUserResponse struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	Created    bool   `json:"created"`
}

func (r *userRoutes) RegisterUser(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	profile := &model.Profile{
		TelegramID: u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
	}

	registered, err := r.us.RegisterUser(c.Request.Context(), profile)
	if err != nil {
		log.Error("failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, RegisterUserResponse{
		TelegramID: registered.TelegramID,
		Username:   registered.Username,
		Created:    registered.ID == profile.ID,
	})
}

func (r *userRoutes) GetUserByTelegramID(c *gin.Context) {
	log := logger.Logger()

	telegramID := c.Param("telegram_id")
	id, err := strconv.ParseInt(telegramID, 10, 64)
	if err != nil {
		log.Error("failed to parse telegram_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	profile, err := r.us.GetUserByTelegramID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile associated with the provided telegram_id"})
			return
		}
		log.Error("failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"telegram_id":      profile.TelegramID,
		"first_name":       profile.FirstName,
		"last_name":        profile.LastName,
		"username":         profile.Username,
		"tonix_balance":    profile.TonixBalance,
		"farming_rate":     profile.FarmingRate,
		"ready_to_collect": profile.ReadyToCollect,
		"today_earnings":   profile.TodayEarnings,
		"last_collect":     profile.LastCollect,
		"last_check_in":    profile.LastCheckIn,
		"daily_streak":     profile.DailyStreak,
		"created_at":       profile.CreatedAt,
	})
}

type SetFarmingRateRequest struct {
	FarmingRate decimal.Decimal `json:"farming_rate" binding:"required"`
}

func (r *userRoutes) SetFarmingRate(c *gin.Context) {
	log := logger.Logger()

	telegramID := c.Param("telegram_id")
	id, err := strconv.ParseInt(telegramID, 10, 64)
	if err != nil {
		log.Error("failed to parse telegram_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	var req SetFarmingRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !req.FarmingRate.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "farming_rate must be positive"})
		return
	}

	err = r.us.SetFarmingRate(c.Request.Context(), id, req.FarmingRate)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		log.Error("failed to set farming rate", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set farming rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"telegram_id":  id,
		"farming_rate": req.FarmingRate,
	})
}

func (r *userRoutes) GetUserAvatar(c *gin.Context) {
	log := logger.Logger()

	telegramID := c.Param("telegram_id")
	id, err := strconv.ParseInt(telegramID, 10, 64)
	if err != nil {
		log.Error("failed to parse telegram_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	_, err = r.us.GetUserByTelegramID(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to get user", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	avatarFilePath, err := r.getUserAvatarURL(id)
	if err != nil {
		log.Error("failed to get user avatar",
			zap.Error(err),
			zap.Int64("telegram_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch avatar"})
		return
	}

	if avatarFilePath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no avatar found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"avatar_file_path": avatarFilePath,
	})
}

func (r *userRoutes) getUserAvatarURL(userID int64) (string, error) {
	bot, err := tgbotapi.NewBotAPI(r.a.GetBotToken())
	if err != nil {
		return "", fmt.Errorf("failed to initialize bot: %w", err)
	}

	photos, err := bot.GetUserProfilePhotos(tgbotapi.UserProfilePhotosConfig{
		UserID: userID,
		Limit:  1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get user photos: %w", err)
	}

	if len(photos.Photos) == 0 {
		return "", fmt.Errorf("no photo found")
	}

	file, err := bot.GetFile(tgbotapi.FileConfig{
		FileID: photos.Photos[0][0].FileID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get file: %w", err)
	}

	return file.FilePath, nil
}
