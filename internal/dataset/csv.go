// Package dataset 读取温室气体排放源数据（CSV，或打包在 zip 中的 CSV）
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zip"
)

// Row 源 CSV 的一行，只保留需要的列
type Row struct {
	Country  string
	Year     int64
	Value    float64
	Category string
}

// RequiredColumns 源文件必须包含的列
var RequiredColumns = []string{"country_or_area", "year", "value", "category"}

// csvRow 解码用的中间结构，数值列为空时报错而不是按 0 处理
type csvRow struct {
	Country  string    `csv:"country_or_area"`
	Year     intCell   `csv:"year"`
	Value    floatCell `csv:"value"`
	Category string    `csv:"category"`
}

type intCell struct{ v int64 }

func (c *intCell) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("整数列为空")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	c.v = v
	return nil
}

type floatCell struct{ v float64 }

func (c *floatCell) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("数值列为空")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	c.v = v
	return nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var ErrNoCSVInArchive = errors.New("zip 中没有 csv 文件")

// Load 按扩展名读取 path：.zip 取第一个 .csv 条目，其余按 CSV 处理
func Load(path string) ([]Row, error) {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		data, err = readFromZip(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 CSV 内容，缺少必需列或字段类型错误时返回错误
func Parse(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if err := checkHeader(data); err != nil {
		return nil, err
	}
	var raw []csvRow
	if err := gocsv.UnmarshalBytes(data, &raw); err != nil {
		return nil, fmt.Errorf("解析 csv 失败: %w", err)
	}
	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = Row{Country: r.Country, Year: r.Year.v, Value: r.Value.v, Category: r.Category}
	}
	return rows, nil
}

func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("csv 为空")
		}
		return fmt.Errorf("读取 csv 表头失败: %w", err)
	}

	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("csv 缺少列: %s", strings.Join(missing, ", "))
	}
	return nil
}

func readFromZip(path string) ([]byte, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("打开 zip 失败: %w", err)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("打开 %s 失败: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNoCSVInArchive)
}
