package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"profile_search/db"
	"profile_search/models"
)

const profileColumns = `user_id, user_name, first_name, last_name, age, city, interests, display_picture`

// =====================
// 通用工具函数
// =====================

// escapeLike 转义 LIKE 通配符，使搜索词按字面匹配
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// containsPattern 构造不区分大小写的子串匹配参数
func containsPattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

// scanProfile 扫描一行用户资料
func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var (
		p        models.Profile
		userName sql.NullString
		first    sql.NullString
		last     sql.NullString
		age      sql.NullInt64
		city     sql.NullString
		picture  sql.NullString
	)
	if err := row.Scan(&p.UserID, &userName, &first, &last, &age, &city, &p.Interests, &picture); err != nil {
		return nil, err
	}
	p.UserName = userName.String
	p.FirstName = nullString(first)
	p.LastName = nullString(last)
	p.City = nullString(city)
	p.DisplayPicture = nullString(picture)
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return &p, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// =====================
// 用户资料相关
// =====================

// GetProfile 按 user_id 查询用户资料，不存在时返回 sql.ErrNoRows
func GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	row := db.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id=?`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return p, nil
}

// =====================
// 搜索候选
// =====================

// buildCandidateQuery 根据搜索词构造候选查询：每个词对应一组子串条件，之间用 OR 连接
func buildCandidateQuery(q models.SearchQuery, limit int) (string, []any) {
	likes := make([]string, 0, len(q.Terms))
	args := make([]any, 0, len(q.Terms)*2+1)

	for _, term := range q.Terms {
		pattern := containsPattern(term)
		switch q.Mode {
		case models.SearchByInterests:
			likes = append(likes, "LOWER(CAST(interests AS CHAR)) LIKE ?")
			args = append(args, pattern)
		default:
			likes = append(likes, "(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)")
			args = append(args, pattern, pattern)
		}
	}

	query := "SELECT " + profileColumns + " FROM profiles WHERE " + strings.Join(likes, " OR ")
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return query, args
}

// FindCandidates 按子串匹配取出候选用户资料，limit<=0 表示不限制条数
func FindCandidates(ctx context.Context, q models.SearchQuery, limit int) ([]models.Profile, error) {
	if len(q.Terms) == 0 {
		return []models.Profile{}, nil
	}

	query, args := buildCandidateQuery(q, limit)
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
