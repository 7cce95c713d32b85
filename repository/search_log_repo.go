package repository

import (
	"context"
	"time"

	"profile_search/db"
	"profile_search/models"
)

// InsertSearchLog 写入一条搜索记录
func InsertSearchLog(ctx context.Context, e *models.SearchLogEntry) error {
	_, err := db.DB.ExecContext(ctx, `
        INSERT INTO search_logs (id, user_id, query, mode, live, result_count, duration_ms, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, e.ID, e.UserID, e.Query, string(e.Mode), e.Live, e.ResultCount, e.DurationMs, e.CreatedAt)
	return err
}

// ListRecentQueries 返回用户最近的完整搜索词，去重，按最近使用时间倒序
func ListRecentQueries(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := db.DB.QueryContext(ctx, `
        SELECT query FROM search_logs
        WHERE user_id = ? AND live = 0
        GROUP BY query
        ORDER BY MAX(created_at) DESC
        LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]string, 0)
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		results = append(results, q)
	}
	return results, rows.Err()
}

// DeleteSearchLogsBefore 删除 cutoff 之前的搜索记录，返回删除条数
func DeleteSearchLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM search_logs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
