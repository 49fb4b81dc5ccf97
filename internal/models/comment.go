// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post in the Inkwell application.
//
// Membership in a post's comment list is derived: comments are queried by
// PostID rather than referenced from an embedded list on the post, so a
// deleted comment can never leave a dangling reference behind.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Body     string `gorm:"not null" json:"body"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// AuthorName is a denormalized copy of the author's username,
	// written from the session identity at creation time.
	AuthorName string         `json:"author_name"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
