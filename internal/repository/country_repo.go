package repository

import (
	"context"

	"GasEmissions/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CountryRepository 国家表仓储
type CountryRepository interface {
	// CreateCountries 批量插入国家，插入后回填自增 ID
	CreateCountries(ctx context.Context, countries []*model.Country) error
	// ListCountries 按 id 升序返回全部国家
	ListCountries(ctx context.Context) ([]*model.Country, error)
	// ListCountrySpans 有排放数据的国家及其年份范围（无数据的国家不返回）
	ListCountrySpans(ctx context.Context) ([]CountrySpan, error)
}

// CountrySpan /countries/ 返回的单个国家
type CountrySpan struct {
	ID        uint64 `json:"id"`
	Country   string `json:"country"`
	StartYear int64  `json:"startYear"`
	EndYear   int64  `json:"endYear"`
}

type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository 创建 CountryRepository 实例
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) CreateCountries(ctx context.Context, countries []*model.Country) error {
	if len(countries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&countries).Error
}

func (r *countryRepository) ListCountries(ctx context.Context) ([]*model.Country, error) {
	var countries []*model.Country
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *countryRepository) ListCountrySpans(ctx context.Context) ([]CountrySpan, error) {
	spans := make([]CountrySpan, 0)
	if err := r.db.WithContext(ctx).
		Table("countries").
		Select("countries.id AS id, countries.country AS country, MIN(all_data.year) AS start_year, MAX(all_data.year) AS end_year").
		Joins("JOIN all_data ON all_data.country_id = countries.id").
		Group("countries.id, countries.country").
		Order("countries.id ASC").
		Scan(&spans).Error; err != nil {
		return nil, err
	}
	if spans == nil {
		spans = []CountrySpan{}
	}
	return spans, nil
}
