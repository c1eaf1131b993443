package api

import (
	"errors"
	"net/http"

	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type referralRoutes struct {
	rs service.ReferralServiceI
	a  *auth.TelegramAuth
}

func NewReferralRoutes(handler *gin.RouterGroup, rs service.ReferralServiceI, a *auth.TelegramAuth) {
	r := &referralRoutes{rs: rs, a: a}
	h := handler.Group("/referrals")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/", r.SubmitReferral)
	}
}

type SubmitReferralRequest struct {
	ReferralCode string `json:"referral_code" binding:"required"`
}

type SubmitReferralResponse struct {
	BonusAmount  decimal.Decimal `json:"bonus_amount"`
	NewBalance   decimal.Decimal `json:"new_balance"`
	ReferrerName string          `json:"referrer_name"`
}

func (r *referralRoutes) SubmitReferral(c *gin.Context) {
	log := logger.Logger()

	u, ok := auth.TelegramUserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req SubmitReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := r.rs.SubmitReferral(c.Request.Context(), u.ID, req.ReferralCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReferralCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral code"})
		case errors.Is(err, service.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot refer yourself"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		case errors.Is(err, service.ErrReferrerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "referrer not found"})
		case errors.Is(err, service.ErrAlreadyReferred):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already has a referrer"})
		default:
			log.Error("failed to submit referral", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process referral"})
		}
		return
	}

	c.JSON(http.StatusOK, SubmitReferralResponse{
		BonusAmount:  result.BonusAmount,
		NewBalance:   result.NewBalance,
		ReferrerName: result.ReferrerName,
	})
}
