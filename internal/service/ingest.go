package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"GasEmissions/internal/dataset"
	"GasEmissions/internal/gas"
	"GasEmissions/internal/model"
	"GasEmissions/internal/repository"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IngestOptions 一次导入的参数
type IngestOptions struct {
	Source    string    // CSV 或 zip 路径
	BatchSize int       // 每批插入的行数
	Progress  io.Writer // 进度条输出，nil 时不显示
}

// IngestResult 导入结果统计
type IngestResult struct {
	RunID     string
	Countries int
	Records   int
	Elapsed   time.Duration
}

// IngestService 一次性导入任务：重建表 -> 读取源文件 -> 提取气体标签 -> 写入国家表 -> 写入排放数据
type IngestService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewIngestService 创建 IngestService
func NewIngestService(db *gorm.DB, logger *logrus.Logger) *IngestService {
	return &IngestService{db: db, logger: logger}
}

// Run 在一个事务中完成全部步骤，任一步失败则整体回滚（包括重建表）
func (s *IngestService) Run(ctx context.Context, opts IngestOptions) (*IngestResult, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size 必须大于0: %d", opts.BatchSize)
	}
	start := time.Now()
	result := &IngestResult{RunID: uuid.NewString()}
	log := s.logger.WithFields(logrus.Fields{"run_id": result.RunID, "source": opts.Source})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		countryRepo := repository.NewCountryRepository(tx)
		emissionRepo := repository.NewEmissionRepository(tx)

		// 1. 重建表
		if err := emissionRepo.ResetSchema(ctx); err != nil {
			return err
		}
		log.Info("表已重建")

		// 2. 读取源文件
		rows, err := dataset.Load(opts.Source)
		if err != nil {
			return fmt.Errorf("读取源文件失败: %w", err)
		}
		log.Infof("读取源数据%d行", len(rows))

		// 3. 提取气体标签
		symbols := make([][]string, len(rows))
		for i, row := range rows {
			symbols[i] = gas.ExtractSymbols(row.Category)
		}

		// 4. 写入国家表（按首次出现顺序）
		countries := uniqueCountries(rows)
		if err := countryRepo.CreateCountries(ctx, countries); err != nil {
			return fmt.Errorf("写入国家表失败: %w", err)
		}
		result.Countries = len(countries)

		// 5. 国家名 -> ID
		countryIDs, err := s.resolveCountryIDs(ctx, countryRepo, countries)
		if err != nil {
			return err
		}

		// 6. 组装排放数据
		records, err := buildRecords(rows, symbols, countryIDs)
		if err != nil {
			return err
		}

		// 7. 分批写入
		bar := newBar(opts.Progress, len(records))
		for i := 0; i < len(records); i += opts.BatchSize {
			end := min(i+opts.BatchSize, len(records))
			if err := emissionRepo.CreateRecords(ctx, records[i:end]); err != nil {
				return fmt.Errorf("写入排放数据失败（第%d-%d行）: %w", i+1, end, err)
			}
			if bar != nil {
				_ = bar.Add(end - i)
			}
		}
		if bar != nil {
			_ = bar.Finish()
		}
		result.Records = len(records)
		return nil
	})
	if err != nil {
		log.WithError(err).Error("导入失败，已回滚")
		return nil, err
	}

	result.Elapsed = time.Since(start)
	log.Infof("导入完成，国家%d个，排放数据%d行，耗时%v", result.Countries, result.Records, result.Elapsed)
	return result, nil
}

// resolveCountryIDs 优先使用插入回填的 ID，驱动未回填时重新查询国家表
func (s *IngestService) resolveCountryIDs(ctx context.Context, repo repository.CountryRepository, inserted []*model.Country) (map[string]uint64, error) {
	ids := make(map[string]uint64, len(inserted))
	for _, c := range inserted {
		if c.ID == 0 {
			ids = nil
			break
		}
		ids[c.Country] = c.ID
	}
	if ids != nil {
		return ids, nil
	}

	s.logger.Debug("插入未回填ID，重新查询国家表")
	stored, err := repo.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询国家表失败: %w", err)
	}
	ids = make(map[string]uint64, len(stored))
	for _, c := range stored {
		ids[c.Country] = c.ID
	}
	return ids, nil
}

func uniqueCountries(rows []dataset.Row) []*model.Country {
	seen := make(map[string]struct{})
	countries := make([]*model.Country, 0)
	for _, row := range rows {
		if _, ok := seen[row.Country]; ok {
			continue
		}
		seen[row.Country] = struct{}{}
		countries = append(countries, &model.Country{Country: row.Country})
	}
	return countries
}

func buildRecords(rows []dataset.Row, symbols [][]string, countryIDs map[string]uint64) ([]*model.EmissionRecord, error) {
	records := make([]*model.EmissionRecord, 0, len(rows))
	for i, row := range rows {
		countryID, ok := countryIDs[row.Country]
		if !ok {
			return nil, fmt.Errorf("第%d行国家 %q 未找到对应ID", i+1, row.Country)
		}
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			return nil, fmt.Errorf("第%d行 value 非法: %v", i+1, row.Value)
		}
		tags, err := json.Marshal(nonNil(symbols[i]))
		if err != nil {
			return nil, fmt.Errorf("第%d行气体标签序列化失败: %w", i+1, err)
		}
		records = append(records, &model.EmissionRecord{
			Year:       row.Year,
			Value:      int64(row.Value), // 向零截断
			GasSymbol:  strings.Join(symbols[i], ","),
			GasSymbols: datatypes.JSON(tags),
			CountryID:  countryID,
		})
	}
	return records, nil
}

func nonNil(symbols []string) []string {
	if symbols == nil {
		return []string{}
	}
	return symbols
}

func newBar(w io.Writer, total int) *progressbar.ProgressBar {
	if w == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(w) }),
		progressbar.OptionSetDescription("写入排放数据"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
