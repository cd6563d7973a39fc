package handler

import (
	"github.com/gin-gonic/gin"

	"gomart-social/apps/relationship-service/model"
	tracecontext "gomart-social/pkg/context"
	"gomart-social/pkg/httpx"
	"gomart-social/pkg/logger"
)

// GetFriendSuggestions 好友推荐
func (h *HTTPHandler) GetFriendSuggestions(c *gin.Context) {
	ctx := c.Request.Context()
	var req SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid suggestions request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	suggestions, err := h.svc.GetFriendSuggestions(ctx, req.UserID, req.Limit)
	if err != nil {
		h.log.Error(ctx, "Get friend suggestions failed", logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// GetMutualFriends 共同好友
func (h *HTTPHandler) GetMutualFriends(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid mutual friends request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	mutualIDs, err := h.svc.MutualFriends(ctx, req.UserID, req.OtherID)
	if err != nil {
		h.log.Error(ctx, "Get mutual friends failed",
			logger.F("otherID", req.OtherID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", gin.H{
		"mutual_friend_ids":   mutualIDs,
		"mutual_friend_names": h.svc.MutualFriendNames(ctx, mutualIDs),
		"total":               len(mutualIDs),
	})
}

// CheckGiftEligibility 送礼资格校验
func (h *HTTPHandler) CheckGiftEligibility(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid gift eligibility request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	eligibility, err := h.svc.CheckGiftEligibility(ctx, req.UserID, req.OtherID)
	if err != nil {
		h.log.Error(ctx, "Check gift eligibility failed",
			logger.F("otherID", req.OtherID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", eligibility)
}
