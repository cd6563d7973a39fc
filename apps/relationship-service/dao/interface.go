package dao

import (
	"context"

	"gomart-social/apps/relationship-service/model"
)

// RelationshipDAO 关系边数据访问接口
// 本服务是关系边的唯一写入方，其余组件只读
type RelationshipDAO interface {
	CreateEdge(ctx context.Context, edge *model.RelationshipEdge) error
	UpsertBlockEdge(ctx context.Context, blockerID, blockedID int64) (*model.RelationshipEdge, error)
	GetEdgeByID(ctx context.Context, id int64) (*model.RelationshipEdge, error)
	GetEdgeByPair(ctx context.Context, userID, otherID int64) (*model.RelationshipEdge, error)
	TransitionEdgeStatus(ctx context.Context, id int64, fromStatus, toStatus string) error
	DeleteEdge(ctx context.Context, id int64, status string) error
	ListIncomingRequests(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error)
	ListOutgoingRequests(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error)
	ListAcceptedEdges(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error)
	ListBlockedEdges(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error)
	GetFriendIDs(ctx context.Context, userID int64) ([]int64, error)
	GetRelatedUserIDs(ctx context.Context, userID int64) ([]int64, error)
}

// InterestDAO 品类兴趣数据访问接口（只读）
type InterestDAO interface {
	GetUserCategoryIDs(ctx context.Context, userID int64) ([]int64, error)
	ListByCategoryIDs(ctx context.Context, categoryIDs, excludeUserIDs []int64) ([]*model.CategoryInterestRow, error)
}

// ProfileDAO 用户目录与个人信息数据访问接口（只读）
type ProfileDAO interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error)
	GetActivities(ctx context.Context, userID int64) ([]string, error)
	ListRecentProfileUserIDs(ctx context.Context, limit int) ([]int64, error)
}
