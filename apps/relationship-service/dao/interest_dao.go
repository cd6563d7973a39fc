package dao

import (
	"context"
	"fmt"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/database"
)

// interestDAO 品类兴趣数据访问对象
type interestDAO struct {
	db *database.PostgreSQL
}

// NewInterestDAO 创建品类兴趣DAO实例
func NewInterestDAO(db *database.PostgreSQL) InterestDAO {
	return &interestDAO{db: db}
}

// GetUserCategoryIDs 获取用户感兴趣的品类ID列表
func (d *interestDAO) GetUserCategoryIDs(ctx context.Context, userID int64) ([]int64, error) {
	var categoryIDs []int64
	db := d.db.GetDB()
	if err := db.WithContext(ctx).Model(&model.UserCategoryInterest{}).
		Where("user_id = ?", userID).Pluck("category_id", &categoryIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to get user category ids: %v", err)
	}
	return categoryIDs, nil
}

// ListByCategoryIDs 按品类查兴趣行并带出品类名，排除指定用户
func (d *interestDAO) ListByCategoryIDs(ctx context.Context, categoryIDs, excludeUserIDs []int64) ([]*model.CategoryInterestRow, error) {
	if len(categoryIDs) == 0 {
		return []*model.CategoryInterestRow{}, nil
	}

	var rows []*model.CategoryInterestRow
	db := d.db.GetDB()
	query := db.WithContext(ctx).Table("user_category_interests").
		Select("user_category_interests.user_id, user_category_interests.category_id, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = user_category_interests.category_id").
		Where("user_category_interests.category_id IN ?", categoryIDs)
	if len(excludeUserIDs) > 0 {
		query = query.Where("user_category_interests.user_id NOT IN ?", excludeUserIDs)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list interests by category: %v", err)
	}
	return rows, nil
}
