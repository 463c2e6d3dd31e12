package model

import (
	"gorm.io/datatypes"
)

// Country 国家/地区表，每个源数据中出现的国家名一行，导入后不再修改
type Country struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Country string `gorm:"column:country;type:varchar(255)"`
}

// EmissionRecord 排放数据表，源 CSV 每行一条
type EmissionRecord struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Year      int64  `gorm:"column:year;type:integer"`
	Value     int64  `gorm:"column:value;type:bigint"`
	GasSymbol string `gorm:"column:gas_symbol;type:text;not null"` // 逗号拼接的气体标签，查询过滤使用此列
	// GasSymbols 与 GasSymbol 同内容的结构化多值列（sqlite 为 JSON，postgres 为 jsonb）
	GasSymbols datatypes.JSON `gorm:"column:gas_symbols"`
	CountryID  uint64         `gorm:"column:country_id;index"`
	Country    *Country       `gorm:"foreignKey:CountryID;references:ID"`
}

func (Country) TableName() string        { return "countries" }
func (EmissionRecord) TableName() string { return "all_data" }
