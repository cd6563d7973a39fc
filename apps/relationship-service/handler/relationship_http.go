package handler

import (
	"github.com/gin-gonic/gin"

	"gomart-social/apps/relationship-service/model"
	tracecontext "gomart-social/pkg/context"
	"gomart-social/pkg/httpx"
	"gomart-social/pkg/logger"
)

// SendFriendRequest 发送好友申请
func (h *HTTPHandler) SendFriendRequest(c *gin.Context) {
	ctx := c.Request.Context()
	var req SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid send friend request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	dto, err := h.svc.SendFriendRequest(ctx, req.UserID, req.TargetID)
	if err != nil {
		h.log.Error(ctx, "Send friend request failed",
			logger.F("targetID", req.TargetID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "好友申请已提交，等待对方处理", dto)
}

// RespondToRequest 处理好友申请
func (h *HTTPHandler) RespondToRequest(c *gin.Context) {
	ctx := c.Request.Context()
	var req RespondToRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid respond request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	dto, err := h.svc.RespondToRequest(ctx, req.RequestID, req.UserID, req.Decision)
	if err != nil {
		h.log.Error(ctx, "Respond to request failed",
			logger.F("requestID", req.RequestID),
			logger.F("decision", req.Decision),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "操作成功", dto)
}

// CancelOutgoingRequest 取消发出的好友申请
func (h *HTTPHandler) CancelOutgoingRequest(c *gin.Context) {
	ctx := c.Request.Context()
	var req CancelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid cancel request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	if err := h.svc.CancelOutgoingRequest(ctx, req.RequestID, req.UserID); err != nil {
		h.log.Error(ctx, "Cancel request failed",
			logger.F("requestID", req.RequestID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "好友申请已取消", nil)
}

// GetIncomingRequests 收到的好友申请列表
func (h *HTTPHandler) GetIncomingRequests(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid incoming requests request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	requests, err := h.svc.GetIncomingRequests(ctx, req.UserID)
	if err != nil {
		h.log.Error(ctx, "Get incoming requests failed", logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// GetOutgoingRequests 发出的好友申请列表
func (h *HTTPHandler) GetOutgoingRequests(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid outgoing requests request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	requests, err := h.svc.GetOutgoingRequests(ctx, req.UserID)
	if err != nil {
		h.log.Error(ctx, "Get outgoing requests failed", logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// ListFriends 好友列表
func (h *HTTPHandler) ListFriends(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid list friends request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	friends, err := h.svc.ListFriends(ctx, req.UserID)
	if err != nil {
		h.log.Error(ctx, "List friends failed", logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", gin.H{
		"friends": friends,
		"total":   len(friends),
	})
}

// RemoveFriend 解除好友关系
func (h *HTTPHandler) RemoveFriend(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid remove friend request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	if err := h.svc.RemoveFriend(ctx, req.UserID, req.OtherID); err != nil {
		h.log.Error(ctx, "Remove friend failed",
			logger.F("otherID", req.OtherID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "删除好友成功", nil)
}

// BlockUser 拉黑用户
func (h *HTTPHandler) BlockUser(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid block user request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	dto, err := h.svc.BlockUser(ctx, req.UserID, req.OtherID)
	if err != nil {
		h.log.Error(ctx, "Block user failed",
			logger.F("otherID", req.OtherID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "拉黑成功", dto)
}

// UnblockUser 解除拉黑
func (h *HTTPHandler) UnblockUser(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid unblock user request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	if err := h.svc.UnblockUser(ctx, req.UserID, req.OtherID); err != nil {
		h.log.Error(ctx, "Unblock user failed",
			logger.F("otherID", req.OtherID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "解除拉黑成功", nil)
}

// ListBlocked 拉黑列表
func (h *HTTPHandler) ListBlocked(c *gin.Context) {
	ctx := c.Request.Context()
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid list blocked request", logger.F("error", err.Error()))
		httpx.WriteBadRequest(c, err)
		return
	}
	ctx = tracecontext.WithUserID(ctx, req.UserID)

	blocked, err := h.svc.ListBlocked(ctx, req.UserID)
	if err != nil {
		h.log.Error(ctx, "List blocked failed", logger.F("error", err.Error()))
		httpx.WriteError(c, model.HTTPStatus(err), err)
		return
	}
	httpx.WriteSuccess(c, "查询成功", gin.H{
		"blocked": blocked,
		"total":   len(blocked),
	})
}
