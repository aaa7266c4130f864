package mysql

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry Duplicate entry 'xxx' for key 'yyy'
const mysqlDuplicateEntry = 1062

// isDuplicateError 判断是否为唯一索引冲突
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// orderClause 排序字段白名单,未知字段按created_at排序
func orderClause(columns map[string]string, sortBy string, ascending bool) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "created_at"
	}
	if ascending {
		return col + " ASC, id ASC"
	}
	return col + " DESC, id DESC"
}
