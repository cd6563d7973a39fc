package converter

import (
	"time"

	"gomart-social/apps/relationship-service/model"
)

// Converter 转换器，提供Model到DTO的转换
type Converter struct{}

// NewConverter 创建转换器实例
func NewConverter() *Converter {
	return &Converter{}
}

// UserToSummary 将用户Model转换为摘要
func (c *Converter) UserToSummary(user *model.User) *model.UserSummary {
	if user == nil {
		return nil
	}
	return &model.UserSummary{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		IsPublic:  user.IsPublic,
	}
}

// EdgeToDTO 将关系边转换为DTO，对方信息以viewer视角解析
func (c *Converter) EdgeToDTO(edge *model.RelationshipEdge, viewerID int64, users map[int64]*model.User) *model.RelationshipDTO {
	if edge == nil {
		return nil
	}

	dto := &model.RelationshipDTO{
		ID:        edge.ID,
		UserID:    edge.UserID,
		FriendID:  edge.FriendID,
		Status:    edge.Status,
		CreatedAt: edge.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: edge.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if users != nil {
		if other, ok := users[edge.OtherParty(viewerID)]; ok {
			dto.OtherParty = c.UserToSummary(other)
		}
	}
	return dto
}

// EdgesToDTOs 将关系边列表转换为DTO列表
func (c *Converter) EdgesToDTOs(edges []*model.RelationshipEdge, viewerID int64, users map[int64]*model.User) []*model.RelationshipDTO {
	result := make([]*model.RelationshipDTO, 0, len(edges))
	for _, edge := range edges {
		if dto := c.EdgeToDTO(edge, viewerID, users); dto != nil {
			result = append(result, dto)
		}
	}
	return result
}

// UsersToMap 将用户列表转为按ID索引的map
func (c *Converter) UsersToMap(users []*model.User) map[int64]*model.User {
	result := make(map[int64]*model.User, len(users))
	for _, user := range users {
		result[user.ID] = user
	}
	return result
}
