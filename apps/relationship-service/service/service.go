package service

import (
	"context"

	"gomart-social/apps/relationship-service/converter"
	"gomart-social/apps/relationship-service/dao"
	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/logger"
)

// EventProducer 事件生产者接口，由Kafka生产者实现
type EventProducer interface {
	SendMessage(topic string, key, value []byte) error
}

// Service 关系服务
type Service struct {
	relationDAO dao.RelationshipDAO
	interestDAO dao.InterestDAO
	profileDAO  dao.ProfileDAO
	producer    EventProducer
	conv        *converter.Converter
	logger      logger.Logger

	suggestionLimit   int
	activityScanLimit int
}

// NewService 创建关系服务实例
func NewService(relationDAO dao.RelationshipDAO, interestDAO dao.InterestDAO, profileDAO dao.ProfileDAO, producer EventProducer, log logger.Logger) *Service {
	return &Service{
		relationDAO:       relationDAO,
		interestDAO:       interestDAO,
		profileDAO:        profileDAO,
		producer:          producer,
		conv:              converter.NewConverter(),
		logger:            log,
		suggestionLimit:   model.DefaultSuggestionLimit,
		activityScanLimit: model.ActivityScanLimit,
	}
}

// SetSuggestionLimits 覆盖推荐默认条数与活动扫描上限
func (s *Service) SetSuggestionLimits(defaultLimit, scanLimit int) {
	if defaultLimit > 0 {
		s.suggestionLimit = defaultLimit
	}
	if scanLimit > 0 {
		s.activityScanLimit = scanLimit
	}
}

// SendFriendRequest 发送好友申请
func (s *Service) SendFriendRequest(ctx context.Context, requesterID, targetID int64) (*model.RelationshipDTO, error) {
	if requesterID <= 0 || targetID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}
	if requesterID == targetID {
		return nil, model.NewSelfActionError("cannot send friend request to yourself")
	}

	target, err := s.profileDAO.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, model.NewNotFoundError("user not found")
	}

	existing, err := s.relationDAO.GetEdgeByPair(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.EdgeStatusAccepted:
			return nil, model.NewConflictError("already friends")
		case model.EdgeStatusPending:
			return nil, model.NewConflictError("duplicate friend request")
		case model.EdgeStatusBlocked:
			return nil, model.NewConflictError("relationship blocked")
		}
	}

	edge := &model.RelationshipEdge{
		UserID:   requesterID,
		FriendID: targetID,
		Status:   model.EdgeStatusPending,
	}
	// 对向申请并发到达时，唯一索引兜底，后到的一条在这里拿到冲突错误
	if err := s.relationDAO.CreateEdge(ctx, edge); err != nil {
		return nil, err
	}

	s.publishNotification(ctx, targetID, model.NotificationTypeFriendRequest,
		"New friend request", "You have received a new friend request",
		map[string]interface{}{
			"request_id":   edge.ID,
			"requester_id": requesterID,
		})

	users := map[int64]*model.User{target.ID: target}
	return s.conv.EdgeToDTO(edge, requesterID, users), nil
}

// GetIncomingRequests 获取收到的好友申请列表
func (s *Service) GetIncomingRequests(ctx context.Context, userID int64) ([]*model.RelationshipDTO, error) {
	if userID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}

	edges, err := s.relationDAO.ListIncomingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.conv.EdgesToDTOs(edges, userID, s.resolveOtherParties(ctx, edges, userID)), nil
}

// GetOutgoingRequests 获取发出的好友申请列表
func (s *Service) GetOutgoingRequests(ctx context.Context, userID int64) ([]*model.RelationshipDTO, error) {
	if userID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}

	edges, err := s.relationDAO.ListOutgoingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.conv.EdgesToDTOs(edges, userID, s.resolveOtherParties(ctx, edges, userID)), nil
}

// RespondToRequest 处理好友申请，仅被申请方可操作
func (s *Service) RespondToRequest(ctx context.Context, requestID, responderID int64, decision string) (*model.RelationshipDTO, error) {
	if requestID <= 0 || responderID <= 0 {
		return nil, model.NewValidationError("invalid id")
	}
	if decision != model.DecisionAccept && decision != model.DecisionReject {
		return nil, model.NewValidationError("decision must be accept or reject")
	}

	edge, err := s.relationDAO.GetEdgeByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, model.NewNotFoundError("friend request not found")
	}
	if edge.FriendID != responderID {
		return nil, model.NewForbiddenError("only the recipient can respond to this request")
	}
	if edge.Status != model.EdgeStatusPending {
		return nil, model.NewInvalidStateError("friend request is not pending")
	}

	if decision == model.DecisionReject {
		if err := s.relationDAO.DeleteEdge(ctx, edge.ID, model.EdgeStatusPending); err != nil {
			return nil, err
		}
		return s.conv.EdgeToDTO(edge, responderID, s.resolveUsers(ctx, edge.UserID)), nil
	}

	// 条件转换：并发接受同一申请时只有赢得写入的一方走到副作用
	if err := s.relationDAO.TransitionEdgeStatus(ctx, edge.ID, model.EdgeStatusPending, model.EdgeStatusAccepted); err != nil {
		return nil, err
	}
	edge.Status = model.EdgeStatusAccepted

	s.publishConversationCreate(ctx, edge.UserID, edge.FriendID)
	s.publishNotification(ctx, edge.UserID, model.NotificationTypeRequestAccepted,
		"Friend request accepted", "Your friend request has been accepted",
		map[string]interface{}{
			"request_id": edge.ID,
			"friend_id":  responderID,
		})

	return s.conv.EdgeToDTO(edge, responderID, s.resolveUsers(ctx, edge.UserID)), nil
}

// CancelOutgoingRequest 取消自己发出的好友申请
func (s *Service) CancelOutgoingRequest(ctx context.Context, requestID, requesterID int64) error {
	if requestID <= 0 || requesterID <= 0 {
		return model.NewValidationError("invalid id")
	}

	edge, err := s.relationDAO.GetEdgeByID(ctx, requestID)
	if err != nil {
		return err
	}
	if edge == nil {
		return model.NewNotFoundError("friend request not found")
	}
	if edge.UserID != requesterID {
		return model.NewForbiddenError("only the sender can cancel this request")
	}
	if edge.Status != model.EdgeStatusPending {
		return model.NewInvalidStateError("friend request is not pending")
	}

	if err := s.relationDAO.DeleteEdge(ctx, edge.ID, model.EdgeStatusPending); err != nil {
		return err
	}

	s.publishNotificationDelete(ctx, edge.FriendID, edge.ID)
	return nil
}

// ListFriends 获取好友列表，按最近更新排序
func (s *Service) ListFriends(ctx context.Context, userID int64) ([]*model.RelationshipDTO, error) {
	if userID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}

	edges, err := s.relationDAO.ListAcceptedEdges(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.conv.EdgesToDTOs(edges, userID, s.resolveOtherParties(ctx, edges, userID)), nil
}

// RemoveFriend 解除好友关系
func (s *Service) RemoveFriend(ctx context.Context, userID, otherID int64) error {
	if userID <= 0 || otherID <= 0 {
		return model.NewValidationError("invalid user id")
	}

	edge, err := s.relationDAO.GetEdgeByPair(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if edge == nil || edge.Status != model.EdgeStatusAccepted {
		return model.NewNotFoundError("friendship not found")
	}

	return s.relationDAO.DeleteEdge(ctx, edge.ID, model.EdgeStatusAccepted)
}

// BlockUser 拉黑用户，无条件改写既有边
func (s *Service) BlockUser(ctx context.Context, blockerID, blockedID int64) (*model.RelationshipDTO, error) {
	if blockerID <= 0 || blockedID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}
	if blockerID == blockedID {
		return nil, model.NewSelfActionError("cannot block yourself")
	}

	edge, err := s.relationDAO.UpsertBlockEdge(ctx, blockerID, blockedID)
	if err != nil {
		return nil, err
	}

	return s.conv.EdgeToDTO(edge, blockerID, s.resolveUsers(ctx, blockedID)), nil
}

// UnblockUser 解除拉黑，仅拉黑方可操作
func (s *Service) UnblockUser(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 {
		return model.NewValidationError("invalid user id")
	}

	edge, err := s.relationDAO.GetEdgeByPair(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if edge == nil || edge.Status != model.EdgeStatusBlocked {
		return model.NewNotFoundError("blocked relationship not found")
	}
	if edge.UserID != blockerID {
		return model.NewForbiddenError("only the blocker can unblock")
	}

	return s.relationDAO.DeleteEdge(ctx, edge.ID, model.EdgeStatusBlocked)
}

// ListBlocked 获取拉黑列表
func (s *Service) ListBlocked(ctx context.Context, userID int64) ([]*model.RelationshipDTO, error) {
	if userID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}

	edges, err := s.relationDAO.ListBlockedEdges(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.conv.EdgesToDTOs(edges, userID, s.resolveOtherParties(ctx, edges, userID)), nil
}

// CheckGiftEligibility 送礼资格：互为好友才可送礼
func (s *Service) CheckGiftEligibility(ctx context.Context, userID, otherID int64) (*model.GiftEligibility, error) {
	if userID <= 0 || otherID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}

	friends, err := s.AreFriends(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	result := &model.GiftEligibility{Eligible: friends}
	if mutual, err := s.MutualFriends(ctx, userID, otherID); err == nil {
		result.MutualFriendsCount = len(mutual)
	}
	return result, nil
}

// resolveOtherParties 批量解析边上对方用户信息，失败时降级为不带摘要
func (s *Service) resolveOtherParties(ctx context.Context, edges []*model.RelationshipEdge, viewerID int64) map[int64]*model.User {
	if len(edges) == 0 {
		return nil
	}

	otherIDs := make([]int64, 0, len(edges))
	for _, edge := range edges {
		otherIDs = append(otherIDs, edge.OtherParty(viewerID))
	}
	return s.resolveUsers(ctx, otherIDs...)
}

// resolveUsers 批量解析用户信息，失败时降级为nil
func (s *Service) resolveUsers(ctx context.Context, userIDs ...int64) map[int64]*model.User {
	users, err := s.profileDAO.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Warn(ctx, "Failed to resolve users, omitting summaries",
			logger.F("error", err.Error()))
		return nil
	}
	return s.conv.UsersToMap(users)
}
