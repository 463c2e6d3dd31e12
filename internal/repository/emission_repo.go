package repository

import (
	"context"
	"fmt"

	"GasEmissions/internal/gas"
	"GasEmissions/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmissionRepository 排放数据仓储
type EmissionRepository interface {
	// ResetSchema 删除并重建 countries / all_data（会清空数据）
	ResetSchema(ctx context.Context) error
	// CreateRecords 插入一批排放数据
	CreateRecords(ctx context.Context, records []*model.EmissionRecord) error
	// QueryCountryData 按国家、年份区间、气体条件查询，按年份升序
	QueryCountryData(ctx context.Context, q CountryDataQuery) ([]CountryData, error)
}

// CountryDataQuery /country/{id} 的查询条件，年份区间两端都包含
type CountryDataQuery struct {
	CountryID int64
	StartYear int64
	EndYear   int64
	Gas       gas.Filter
}

// CountryData /country/{id} 返回的一行，ID 为国家 ID
type CountryData struct {
	ID        uint64 `json:"id"`
	Country   string `json:"country"`
	Year      int64  `json:"year"`
	Value     int64  `json:"value"`
	GasSymbol string `json:"gasSymbol"`
}

// 各过滤模式对应的参数化条件
const (
	gasContainsCond = "all_data.gas_symbol LIKE ?"
	gasAndCond      = "(all_data.gas_symbol LIKE ? AND all_data.gas_symbol LIKE ?)"
	gasOrCond       = "(all_data.gas_symbol LIKE ? OR all_data.gas_symbol LIKE ?)"
)

type emissionRepository struct {
	db *gorm.DB
}

// NewEmissionRepository 创建 EmissionRepository 实例
func NewEmissionRepository(db *gorm.DB) EmissionRepository {
	return &emissionRepository{db: db}
}

func (r *emissionRepository) ResetSchema(ctx context.Context) error {
	m := r.db.WithContext(ctx).Migrator()
	// 外键开启时必须先删子表；DropTable 一次传多个模型会被重排，故逐个删除
	for _, table := range []interface{}{&model.EmissionRecord{}, &model.Country{}} {
		if err := m.DropTable(table); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}
	if err := m.CreateTable(&model.Country{}, &model.EmissionRecord{}); err != nil {
		return fmt.Errorf("创建表失败: %w", err)
	}
	return nil
}

func (r *emissionRepository) CreateRecords(ctx context.Context, records []*model.EmissionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&records).Error
}

func (r *emissionRepository) QueryCountryData(ctx context.Context, q CountryDataQuery) ([]CountryData, error) {
	db := r.db.WithContext(ctx).
		Table("all_data").
		Select("countries.id AS id, countries.country AS country, all_data.year AS year, all_data.value AS value, all_data.gas_symbol AS gas_symbol").
		Joins("JOIN countries ON countries.id = all_data.country_id").
		Where("all_data.country_id = ?", q.CountryID).
		Where("all_data.year >= ? AND all_data.year <= ?", q.StartYear, q.EndYear)

	switch q.Gas.Mode {
	case gas.ModeContains:
		db = db.Where(gasContainsCond, likePattern(q.Gas.Terms[0]))
	case gas.ModeAnd:
		db = db.Where(gasAndCond, likePattern(q.Gas.Terms[0]), likePattern(q.Gas.Terms[1]))
	case gas.ModeOr:
		db = db.Where(gasOrCond, likePattern(q.Gas.Terms[0]), likePattern(q.Gas.Terms[1]))
	}

	rows := make([]CountryData, 0)
	if err := db.Order("all_data.year ASC, all_data.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CountryData{}
	}
	return rows, nil
}

// likePattern term 已保证只含字母数字，无需转义
func likePattern(term string) string {
	return "%" + term + "%"
}
