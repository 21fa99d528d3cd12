package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList stores a blog's tags as a JSON array in a TEXT column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}
}

// Blog represents a single published article. CreatedAt is the
// author-supplied display date (YYYY-MM-DD), not a row timestamp.
type Blog struct {
	ID           string    `db:"id" json:"_id"`
	Title        string    `db:"title" json:"title"`
	Content      string    `db:"content" json:"content"`
	Author       string    `db:"author" json:"author"`
	AuthorAvatar string    `db:"author_avatar" json:"authorAvatar,omitempty"`
	CreatedAt    string    `db:"created_at" json:"createdAt"`
	ReadTime     string    `db:"read_time" json:"readTime"`
	Tags         TagList   `db:"tags" json:"tags"`
	Featured     bool      `db:"featured" json:"featured"`
	Likes        int       `db:"likes" json:"likes"`
	Bookmarks    int       `db:"bookmarks" json:"bookmarks"`
	CreatedBy    *string   `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy    *string   `db:"updated_by" json:"updatedBy,omitempty"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
