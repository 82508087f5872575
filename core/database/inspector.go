package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes a single table column.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// It is dialect-aware: SQLite uses PRAGMA table_info, MySQL uses SHOW COLUMNS.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifyTables checks that every expected table exists and carries the
// expected columns. It returns one message per missing table or column;
// an empty result means the schema is usable.
func VerifyTables(db *gorm.DB, expected map[string][]string) []string {
	var problems []string

	for table, wantCols := range expected {
		cols, err := GetTableColumns(db, table)
		if err != nil || len(cols) == 0 {
			problems = append(problems, fmt.Sprintf("table %s: missing or unreadable", table))
			continue
		}

		have := make(map[string]struct{}, len(cols))
		for _, c := range cols {
			have[c.Field] = struct{}{}
		}
		for _, want := range wantCols {
			if _, ok := have[strings.ToLower(want)]; !ok {
				problems = append(problems, fmt.Sprintf("table %s: missing column %s", table, want))
			}
		}
	}

	return problems
}
