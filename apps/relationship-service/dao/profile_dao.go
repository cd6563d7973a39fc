package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/database"
)

// profileDAO 用户目录与个人信息数据访问对象
type profileDAO struct {
	db *database.PostgreSQL
}

// NewProfileDAO 创建用户目录DAO实例
func NewProfileDAO(db *database.PostgreSQL) ProfileDAO {
	return &profileDAO{db: db}
}

// GetUserByID 获取用户，不存在时返回nil
func (d *profileDAO) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// GetUsersByIDs 批量获取用户
func (d *profileDAO) GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	if len(userIDs) == 0 {
		return []*model.User{}, nil
	}

	var users []*model.User
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}
	return users, nil
}

// GetActivities 获取用户活动标签，记录缺失或载荷非法时降级为空数组
func (d *profileDAO) GetActivities(ctx context.Context, userID int64) ([]string, error) {
	var info model.PersonalInfo
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to get activities: %v", err)
	}
	return model.DecodeActivities(info.Activities), nil
}

// ListRecentProfileUserIDs 按更新时间取最近活跃的画像用户ID，用于活动匹配扫描
func (d *profileDAO) ListRecentProfileUserIDs(ctx context.Context, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = model.ActivityScanLimit
	}

	var userIDs []int64
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Model(&model.PersonalInfo{}).
		Order("updated_at DESC").Limit(limit).
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to list profile user ids: %v", err)
	}
	return userIDs, nil
}
