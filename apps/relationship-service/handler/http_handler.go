package handler

import (
	"github.com/gin-gonic/gin"

	"gomart-social/apps/relationship-service/service"
	"gomart-social/pkg/logger"
)

// HTTPHandler HTTP协议处理器
type HTTPHandler struct {
	svc *service.Service
	log logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(svc *service.Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc: svc,
		log: log,
	}
}

// RegisterRoutes 注册HTTP路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/relationship")
	{
		api.POST("/request", h.SendFriendRequest)             // 发送好友申请
		api.POST("/respond", h.RespondToRequest)              // 处理好友申请
		api.POST("/cancel", h.CancelOutgoingRequest)          // 取消发出的申请
		api.POST("/incoming", h.GetIncomingRequests)          // 收到的申请列表
		api.POST("/outgoing", h.GetOutgoingRequests)          // 发出的申请列表
		api.POST("/friends", h.ListFriends)                   // 好友列表
		api.POST("/remove", h.RemoveFriend)                   // 解除好友关系
		api.POST("/block", h.BlockUser)                       // 拉黑
		api.POST("/unblock", h.UnblockUser)                   // 解除拉黑
		api.POST("/blocked", h.ListBlocked)                   // 拉黑列表
		api.POST("/suggestions", h.GetFriendSuggestions)      // 好友推荐
		api.POST("/mutual", h.GetMutualFriends)               // 共同好友
		api.POST("/gift_eligibility", h.CheckGiftEligibility) // 送礼资格
	}
}

// SendFriendRequestRequest 发送好友申请请求
type SendFriendRequestRequest struct {
	UserID   int64 `json:"user_id"`
	TargetID int64 `json:"target_id"`
}

// RespondToRequestRequest 处理好友申请请求
type RespondToRequestRequest struct {
	RequestID int64  `json:"request_id"`
	UserID    int64  `json:"user_id"`
	Decision  string `json:"decision"`
}

// CancelRequestRequest 取消好友申请请求
type CancelRequestRequest struct {
	RequestID int64 `json:"request_id"`
	UserID    int64 `json:"user_id"`
}

// UserIDRequest 仅携带用户ID的请求
type UserIDRequest struct {
	UserID int64 `json:"user_id"`
}

// UserPairRequest 携带两个用户ID的请求
type UserPairRequest struct {
	UserID  int64 `json:"user_id"`
	OtherID int64 `json:"other_id"`
}

// SuggestionsRequest 好友推荐请求
type SuggestionsRequest struct {
	UserID int64 `json:"user_id"`
	Limit  int   `json:"limit"`
}
