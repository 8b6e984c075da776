package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

// SQLite is a Service over the read-only equipment catalog database.
type SQLite struct {
	DB *sql.DB

	mu sync.RWMutex
	tc TechContext
}

// NewSQLite wraps an equipment catalog connection.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db, tc: TechContext{TechBase: construct.InnerSphere}}
}

// SetContext sets the fallback context for queries that carry none of their
// own.
func (s *SQLite) SetContext(tc TechContext) {
	s.mu.Lock()
	s.tc = tc
	s.mu.Unlock()
}

// Search runs the scoped catalog query against the equipment table.
func (s *SQLite) Search(ctx context.Context, q Query) (Result, error) {
	s.mu.RLock()
	tc := s.tc
	s.mu.RUnlock()
	if q.Tech.TechBase != "" {
		tc = q.Tech
	}

	where := "WHERE 1=1"
	args := []any{}

	if len(q.Categories) > 0 {
		placeholders := make([]string, len(q.Categories))
		for i, cat := range q.Categories {
			placeholders[i] = "?"
			args = append(args, string(cat))
		}
		where += " AND category IN (" + strings.Join(placeholders, ",") + ")"
	}
	if tc.TechBase != "" && tc.TechBase != construct.Mixed {
		where += " AND tech_base = ?"
		args = append(args, string(tc.TechBase))
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM equipment "+where, args...).Scan(&total); err != nil {
		return Result{}, fmt.Errorf("catalog count: %w", err)
	}

	orderBy := "name"
	switch q.SortBy {
	case "tonnage", "slots":
		orderBy = q.SortBy + ", name"
	}
	dir := "ASC"
	if strings.EqualFold(q.SortOrder, "desc") {
		dir = "DESC"
	}

	query := fmt.Sprintf(
		`SELECT id, name, category, tech_base, tonnage, slots, heat, COALESCE(type,'')
		 FROM equipment %s ORDER BY %s %s`, where, orderBy, dir)
	if q.PageSize > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.PageSize, q.Page*q.PageSize)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("catalog search: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		var cat, base string
		if err := rows.Scan(&item.ID, &item.Name, &cat, &base, &item.Tonnage, &item.Slots, &item.Heat, &item.Type); err != nil {
			return Result{}, fmt.Errorf("catalog scan: %w", err)
		}
		item.Category = construct.Category(cat)
		item.TechBase = construct.TechBase(base)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("catalog rows: %w", err)
	}

	return Result{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}
