package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/logger"
)

// 通知与会话创建都是尽力而为的旁路动作：
// 事件发布失败只记录日志，绝不影响主操作的结果。

// publishNotification 发布通知事件
func (s *Service) publishNotification(ctx context.Context, userID int64, ntype, title, message string, data map[string]interface{}) {
	event := &model.NotificationEvent{
		ID:        uuid.NewString(),
		Action:    model.EventActionCreate,
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	s.publishEvent(ctx, model.TopicNotificationEvents, strconv.FormatInt(userID, 10), event)
}

// publishNotificationDelete 发布通知删除事件（申请被取消时清理未读通知）
func (s *Service) publishNotificationDelete(ctx context.Context, userID, requestID int64) {
	event := &model.NotificationEvent{
		ID:     uuid.NewString(),
		Action: model.EventActionDelete,
		UserID: userID,
		Type:   model.NotificationTypeFriendRequest,
		Data: map[string]interface{}{
			"request_id": requestID,
		},
		Timestamp: time.Now().UTC(),
	}
	s.publishEvent(ctx, model.TopicNotificationEvents, strconv.FormatInt(userID, 10), event)
}

// publishConversationCreate 发布会话创建事件
// 以pair_key作为分区键，消费端按键幂等创建会话
func (s *Service) publishConversationCreate(ctx context.Context, userAID, userBID int64) {
	pairKey := model.BuildPairKey(userAID, userBID)
	event := &model.ConversationEvent{
		ID:        uuid.NewString(),
		PairKey:   pairKey,
		UserAID:   userAID,
		UserBID:   userBID,
		Kind:      model.ConversationKindDirect,
		Timestamp: time.Now().UTC(),
	}
	s.publishEvent(ctx, model.TopicConversationEvents, pairKey, event)
}

// publishEvent 序列化并发送事件
func (s *Service) publishEvent(ctx context.Context, topic, key string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error(ctx, "Failed to marshal event",
			logger.F("topic", topic),
			logger.F("error", err.Error()))
		return
	}
	if err := s.producer.SendMessage(topic, []byte(key), payload); err != nil {
		s.logger.Error(ctx, "Failed to publish event",
			logger.F("topic", topic),
			logger.F("error", err.Error()))
	}
}
