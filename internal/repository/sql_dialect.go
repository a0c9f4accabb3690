package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateKey 唯一索引冲突
var ErrDuplicateKey = errors.New("duplicate key")

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// forUpdate 在 postgres 上追加 FOR UPDATE 行锁；sqlite 写事务本身串行，不加锁子句。
func forUpdate(db *gorm.DB) *gorm.DB {
	if dbDialectName(db) != "postgres" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// isUniqueViolation 识别 sqlite 与 postgres 的唯一约束冲突。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint failed"): // sqlite
		return true
	case strings.Contains(msg, "duplicate key value"), strings.Contains(msg, "sqlstate 23505"): // postgres
		return true
	default:
		return false
	}
}

// translateWriteError 将唯一约束冲突统一为 ErrDuplicateKey
func translateWriteError(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}
