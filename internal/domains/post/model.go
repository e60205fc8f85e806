package post

import "time"

// Post is a board entry. CommentsCount is denormalized and maintained
// atomically by the comment store; the worker reconciles any drift.
type Post struct {
	ID            int64     `db:"id" json:"id"`
	AuthorID      int64     `db:"author_id" json:"author_id"`
	Title         string    `db:"title" json:"title"`
	Content       string    `db:"content" json:"content"`
	ViewCount     int64     `db:"view_count" json:"view_count"`
	CommentsCount int64     `db:"comments_cnt" json:"comments_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
