package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/database"
)

// relationshipDAO 关系边数据访问对象
type relationshipDAO struct {
	db *database.PostgreSQL
}

// NewRelationshipDAO 创建关系边DAO实例
func NewRelationshipDAO(db *database.PostgreSQL) RelationshipDAO {
	return &relationshipDAO{db: db}
}

// CreateEdge 创建关系边
// pair_key唯一索引保证同一用户对并发写入时只会成功一条
func (d *relationshipDAO) CreateEdge(ctx context.Context, edge *model.RelationshipEdge) error {
	if !model.ValidateEdgeStatus(edge.Status) {
		return model.NewValidationError("invalid edge status")
	}
	edge.PairKey = model.BuildPairKey(edge.UserID, edge.FriendID)
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.NewConflictError("relationship already exists")
		}
		return fmt.Errorf("failed to create relationship edge: %v", err)
	}
	return nil
}

// UpsertBlockEdge 拉黑：存在则无条件改写为blocked并把拉黑方置为边的属主，不存在则新建
// 查改在一个事务内完成，行锁避免与并发申请竞争出第二条边
func (d *relationshipDAO) UpsertBlockEdge(ctx context.Context, blockerID, blockedID int64) (*model.RelationshipEdge, error) {
	pairKey := model.BuildPairKey(blockerID, blockedID)
	var result *model.RelationshipEdge

	db := d.db.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge model.RelationshipEdge
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pair_key = ?", pairKey).First(&edge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			edge = model.RelationshipEdge{
				UserID:   blockerID,
				FriendID: blockedID,
				PairKey:  pairKey,
				Status:   model.EdgeStatusBlocked,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
			result = &edge
			return nil
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"user_id":   blockerID,
			"friend_id": blockedID,
			"status":    model.EdgeStatusBlocked,
		}
		if err := tx.Model(&edge).Updates(updates).Error; err != nil {
			return err
		}
		result = &edge
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert block edge: %v", err)
	}
	return result, nil
}

// GetEdgeByID 按ID获取关系边
func (d *relationshipDAO) GetEdgeByID(ctx context.Context, id int64) (*model.RelationshipEdge, error) {
	var edge model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relationship edge: %v", err)
	}
	return &edge, nil
}

// GetEdgeByPair 按无序用户对获取关系边，不存在时返回nil
func (d *relationshipDAO) GetEdgeByPair(ctx context.Context, userID, otherID int64) (*model.RelationshipEdge, error) {
	var edge model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Where("pair_key = ?", model.BuildPairKey(userID, otherID)).
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relationship edge: %v", err)
	}
	return &edge, nil
}

// TransitionEdgeStatus 条件状态转换，仅当边仍处于fromStatus时生效
// 并发处理同一条边时条件写保证只有一方赢得转换
func (d *relationshipDAO) TransitionEdgeStatus(ctx context.Context, id int64, fromStatus, toStatus string) error {
	if !model.ValidateEdgeStatus(toStatus) {
		return model.NewValidationError("invalid edge status")
	}
	db := d.db.GetDB()
	result := db.WithContext(ctx).Model(&model.RelationshipEdge{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return fmt.Errorf("failed to transition edge status: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.NewInvalidStateError("relationship state changed")
	}
	return nil
}

// DeleteEdge 删除关系边，仅当边仍处于给定状态时生效
func (d *relationshipDAO) DeleteEdge(ctx context.Context, id int64, status string) error {
	db := d.db.GetDB()
	result := db.WithContext(ctx).
		Where("id = ? AND status = ?", id, status).
		Delete(&model.RelationshipEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete relationship edge: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.NewInvalidStateError("relationship state changed")
	}
	return nil
}

// ListIncomingRequests 获取收到的好友申请，最新的在前
func (d *relationshipDAO) ListIncomingRequests(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	var edges []*model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Where("friend_id = ? AND status = ?", userID, model.EdgeStatusPending).
		Order("created_at DESC").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %v", err)
	}
	return edges, nil
}

// ListOutgoingRequests 获取发出的好友申请，最新的在前
func (d *relationshipDAO) ListOutgoingRequests(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	var edges []*model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.EdgeStatusPending).
		Order("created_at DESC").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to list outgoing requests: %v", err)
	}
	return edges, nil
}

// ListAcceptedEdges 获取已接受的关系边，双向匹配，按更新时间倒序
func (d *relationshipDAO) ListAcceptedEdges(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	var edges []*model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, model.EdgeStatusAccepted).
		Order("updated_at DESC").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to list accepted edges: %v", err)
	}
	return edges, nil
}

// ListBlockedEdges 获取当前用户主动拉黑的边，最新的在前
func (d *relationshipDAO) ListBlockedEdges(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	var edges []*model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.EdgeStatusBlocked).
		Order("created_at DESC").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to list blocked edges: %v", err)
	}
	return edges, nil
}

// GetFriendIDs 获取好友ID集合（已接受的边解析为对方ID）
func (d *relationshipDAO) GetFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	var edges []*model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Select("user_id", "friend_id").
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, model.EdgeStatusAccepted).
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to get friend ids: %v", err)
	}

	friendIDs := make([]int64, 0, len(edges))
	for _, edge := range edges {
		friendIDs = append(friendIDs, edge.OtherParty(userID))
	}
	return friendIDs, nil
}

// GetRelatedUserIDs 获取与用户存在任意边的对方ID集合（推荐排除用）
func (d *relationshipDAO) GetRelatedUserIDs(ctx context.Context, userID int64) ([]int64, error) {
	var edges []*model.RelationshipEdge
	db := d.db.GetDB()
	if err := db.WithContext(ctx).
		Select("user_id", "friend_id").
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to get related user ids: %v", err)
	}

	relatedIDs := make([]int64, 0, len(edges))
	for _, edge := range edges {
		relatedIDs = append(relatedIDs, edge.OtherParty(userID))
	}
	return relatedIDs, nil
}
