package service

import (
	"context"

	"GasEmissions/internal/gas"
	"GasEmissions/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	DefaultStartYear = 0
	DefaultEndYear   = 3000
)

// EmissionService 面向前端的只读查询服务
type EmissionService struct {
	countryRepo  repository.CountryRepository
	emissionRepo repository.EmissionRepository
	logger       *logrus.Logger
}

// NewEmissionService 创建 EmissionService
func NewEmissionService(countryRepo repository.CountryRepository, emissionRepo repository.EmissionRepository, logger *logrus.Logger) *EmissionService {
	return &EmissionService{
		countryRepo:  countryRepo,
		emissionRepo: emissionRepo,
		logger:       logger,
	}
}

// CountryDataParams /country/{id} 的请求参数
type CountryDataParams struct {
	CountryID int64
	StartYear int64
	EndYear   int64
	Gas       string // 原始 gas 参数
}

// ListCountries 国家列表及年份范围
func (s *EmissionService) ListCountries(ctx context.Context) ([]repository.CountrySpan, error) {
	return s.countryRepo.ListCountrySpans(ctx)
}

// GetCountryData 单个国家的逐年数据，gas 参数按 gas.ParseFilter 规则解析
func (s *EmissionService) GetCountryData(ctx context.Context, p CountryDataParams) ([]repository.CountryData, error) {
	filter := gas.ParseFilter(p.Gas)
	s.logger.WithFields(logrus.Fields{
		"country_id": p.CountryID,
		"start_year": p.StartYear,
		"end_year":   p.EndYear,
		"gas":        p.Gas,
		"gas_mode":   filter.Mode.String(),
	}).Debug("查询国家数据")

	return s.emissionRepo.QueryCountryData(ctx, repository.CountryDataQuery{
		CountryID: p.CountryID,
		StartYear: p.StartYear,
		EndYear:   p.EndYear,
		Gas:       filter,
	})
}
