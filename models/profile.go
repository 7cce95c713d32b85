package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Profile 社交网络用户资料，由外部系统写入，本服务只读
type Profile struct {
	UserID         string    `db:"user_id" json:"user_id"`
	UserName       string    `db:"user_name" json:"userName,omitempty"`
	FirstName      *string   `db:"first_name" json:"firstName"`
	LastName       *string   `db:"last_name" json:"lastName"`
	Age            *int      `db:"age" json:"age,omitempty"`
	City           *string   `db:"city" json:"city,omitempty"`
	Interests      Interests `db:"interests" json:"interests"`
	DisplayPicture *string   `db:"display_picture" json:"display_picture,omitempty"`
}

// FullName 返回 "first last"，缺失的部分按空串处理
func (p Profile) FullName() string {
	return strings.TrimSpace(deref(p.FirstName) + " " + deref(p.LastName))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Interests is the interest tag list of a profile. Older rows stored a
// single free-text string; those decode to an empty list.
type Interests []string

// UnmarshalJSON accepts an array, null, or a legacy bare string without
// failing. Non-string array elements are dropped.
func (in *Interests) UnmarshalJSON(data []byte) error {
	*in = decodeInterests(data)
	return nil
}

// Scan implements sql.Scanner for the JSON interests column.
func (in *Interests) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*in = nil
	case []byte:
		*in = decodeInterests(v)
	case string:
		*in = decodeInterests([]byte(v))
	default:
		return fmt.Errorf("interests: unsupported column type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (in Interests) Value() (driver.Value, error) {
	if in == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(in))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeInterests(data []byte) Interests {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(Interests, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
