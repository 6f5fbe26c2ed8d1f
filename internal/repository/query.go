package repository

import (
	"errors"

	"gorm.io/gorm"
)

// firstOrNil 查询首条记录，未命中返回 nil, nil
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// countOf 统计查询命中行数
func countOf(query *gorm.DB) (int64, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyPagination 应用分页参数，page 小于 1 时按第一页处理
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// persistInactive 补写 is_active=false；带 default:true 的列在 Create 时会忽略零值
func persistInactive(db *gorm.DB, model interface{}, active bool) error {
	if active {
		return nil
	}
	return db.Model(model).UpdateColumn("is_active", false).Error
}
