package model

// 关系边状态
const (
	EdgeStatusPending  = "pending"
	EdgeStatusAccepted = "accepted"
	EdgeStatusBlocked  = "blocked"
)

// 好友申请处理决定
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// 推荐原因，同时也是排序优先级（先共同好友，再共同兴趣，最后共同活动）
const (
	SuggestionReasonMutualFriends    = "mutual_friends"
	SuggestionReasonSimilarInterests = "similar_interests"
	SuggestionReasonSimilarActivity  = "similar_activities"
)

// 推荐参数
const (
	DefaultSuggestionLimit = 10
	ActivityScanLimit      = 100 // 活动匹配逐个拉取画像，上限控制扇出成本
)

// Kafka主题
const (
	TopicNotificationEvents = "notification-events"
	TopicConversationEvents = "conversation-events"
)

// 通知事件
const (
	EventActionCreate = "create"
	EventActionDelete = "delete"

	NotificationTypeFriendRequest   = "friend_request"
	NotificationTypeRequestAccepted = "friend_request_accepted"
)

// 会话类型
const (
	ConversationKindDirect = "direct"
)

// ValidEdgeStatuses 合法的边状态
var ValidEdgeStatuses = []string{EdgeStatusPending, EdgeStatusAccepted, EdgeStatusBlocked}

// ValidateEdgeStatus 校验边状态
func ValidateEdgeStatus(status string) bool {
	for _, s := range ValidEdgeStatuses {
		if s == status {
			return true
		}
	}
	return false
}
