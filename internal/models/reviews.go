package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Review 单条评论检索结果
type Review struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"` // reddit / forum / general
}

// Reviews 评论列表，空列表以 NULL 落库
type Reviews []Review

// Value 实现 driver.Valuer 接口
func (r Reviews) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal([]Review(r))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (r *Reviews) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported reviews column type %T", value)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*r = nil
		return nil
	}
	var items []Review
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*r = items
	return nil
}

// GormDataType 通用数据类型
func (Reviews) GormDataType() string {
	return "json"
}

// GormDBDataType 按方言选择列类型
func (Reviews) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "json"
}
