package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RelationshipEdge 好友关系边表
// 同一无序用户对最多存在一条边，方向仅用于权限判断：
// pending时user_id为发起方，blocked时user_id为拉黑方。
type RelationshipEdge struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	FriendID  int64     `json:"friend_id" gorm:"not null;index"`
	PairKey   string    `json:"-" gorm:"type:varchar(64);not null;uniqueIndex"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime;index"`
}

// TableName .
func (RelationshipEdge) TableName() string {
	return "relationship_edges"
}

// OtherParty 返回边上相对于userID的另一方
func (e *RelationshipEdge) OtherParty(userID int64) int64 {
	if e.UserID == userID {
		return e.FriendID
	}
	return e.UserID
}

// BuildPairKey 生成无序用户对的规范键，配合唯一索引保证每对用户至多一条边
func BuildPairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// User 用户表（用户目录，本服务只读）
type User struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string `json:"last_name" gorm:"type:varchar(100)"`
	Email     string `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Avatar    string `json:"avatar" gorm:"type:varchar(500)"`
	Bio       string `json:"bio" gorm:"type:text"`
	IsPublic  bool   `json:"is_public" gorm:"default:true"`
}

// TableName .
func (User) TableName() string {
	return "users"
}

// FullName 拼接显示名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Category 品类表（本服务只读）
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`
}

// TableName .
func (Category) TableName() string {
	return "categories"
}

// UserCategoryInterest 用户品类兴趣表（本服务只读）
type UserCategoryInterest struct {
	ID         int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64 `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_category"`
	CategoryID int64 `json:"category_id" gorm:"not null;index;uniqueIndex:idx_user_category"`
}

// TableName .
func (UserCategoryInterest) TableName() string {
	return "user_category_interests"
}

// PersonalInfo 用户个人信息表（本服务只读）
// activities字段为外部写入的非结构化JSON，读取时须容错解析
type PersonalInfo struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	Activities string    `json:"activities" gorm:"type:jsonb"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime;index"`
}

// TableName .
func (PersonalInfo) TableName() string {
	return "personal_infos"
}

// DecodeActivities 解析活动标签数组，非法或空载荷一律降级为空数组
func DecodeActivities(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			result = append(result, t)
		}
	}
	return result
}

// CategoryInterestRow 兴趣查询结果行
type CategoryInterestRow struct {
	UserID       int64  `json:"user_id"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// UserSummary 对方用户摘要（DTO内嵌）
type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
	IsPublic  bool   `json:"is_public"`
}

// RelationshipDTO 关系边对外表示，时间戳为ISO-8601
type RelationshipDTO struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"user_id"`
	FriendID   int64        `json:"friend_id"`
	Status     string       `json:"status"`
	OtherParty *UserSummary `json:"other_party,omitempty"`
	CreatedAt  string       `json:"created_at"`
	UpdatedAt  string       `json:"updated_at"`
}

// Suggestion 好友推荐结果，不落库
type Suggestion struct {
	CandidateUserID    int64    `json:"candidate_user_id"`
	Reason             string   `json:"reason"`
	CommonCategories   []string `json:"common_categories,omitempty"`
	CommonActivities   []string `json:"common_activities,omitempty"`
	MutualFriendsCount int      `json:"mutual_friends_count,omitempty"`
	MutualFriendNames  []string `json:"mutual_friend_names,omitempty"`
}

// GiftEligibility 送礼资格查询结果
type GiftEligibility struct {
	Eligible           bool `json:"eligible"`
	MutualFriendsCount int  `json:"mutual_friends_count"`
}

// NotificationEvent 通知事件（发往消息队列）
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Action    string                 `json:"action"` // "create" or "delete"
	UserID    int64                  `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ConversationEvent 会话创建事件（发往消息队列，消费端幂等）
type ConversationEvent struct {
	ID        string    `json:"id"`
	PairKey   string    `json:"pair_key"`
	UserAID   int64     `json:"user_a_id"`
	UserBID   int64     `json:"user_b_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}
