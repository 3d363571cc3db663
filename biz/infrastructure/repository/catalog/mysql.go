package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"tuition-show/biz/infrastructure/util/log"
)

type MySQLMapper struct {
	db *sql.DB
}

func NewMySQLMapper(dsn string) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db}, nil
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

// ListSubjects 获取科目列表
func (m *MySQLMapper) ListSubjects(ctx context.Context, category string) ([]*Subject, error) {
	query := "SELECT id, name, category FROM subjects"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY name ASC"

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query subjects: %v", err)
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]*Subject, 0)
	for rows.Next() {
		var (
			s        Subject
			category sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Name, &category); err != nil {
			log.Error("Failed to scan subject row: %v", err)
			continue
		}
		s.Category = category.String
		subjects = append(subjects, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return subjects, nil
}
