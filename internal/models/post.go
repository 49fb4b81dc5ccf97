// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog entry in the Inkwell application.
//
// ImageURL and ImageID always change together: both set when the post
// carries an uploaded image, both empty otherwise. ImageID is the media
// store deletion handle for the object behind ImageURL.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImageURL string `json:"image_url,omitempty"`
	ImageID  string `json:"image_id,omitempty"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// AuthorName is a denormalized copy of the author's username,
	// written from the session identity at creation time.
	AuthorName string `json:"author_name"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasImage reports whether the post carries an uploaded image.
func (p *Post) HasImage() bool {
	return p.ImageID != ""
}
