// Package service implements the business logic between handlers and repositories.
package service

import (
	"context"
	"strings"

	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	maxTitleLen = 300
	maxBodyLen  = 50000
)

type PostService struct {
	postRepo repository.PostRepository
	store    media.Store
}

type CreatePostInput struct {
	UserID        uint
	Username      string
	Title         string
	Body          string
	ImageFilename string
	ImageContent  []byte
}

type UpdatePostInput struct {
	UserID        uint
	PostID        uint
	Title         string
	Body          string
	ImageFilename string
	ImageContent  []byte
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, store media.Store) *PostService {
	return &PostService{
		postRepo: postRepo,
		store:    store,
	}
}

func validatePostFields(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("Body too long (max 50000 characters)")
	}
	return nil
}

// CreatePost uploads the image before creating the record. If the record
// insert then fails the uploaded object is left behind; the error surfaces
// and no retraction is attempted.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      in.Title,
		Body:       in.Body,
		AuthorID:   in.UserID,
		AuthorName: in.Username,
	}

	if len(in.ImageContent) > 0 {
		obj, err := s.store.Upload(ctx, in.ImageFilename, in.ImageContent)
		if err != nil {
			return nil, err
		}
		post.ImageURL = obj.URL
		post.ImageID = obj.ID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if post.HasImage() {
			middleware.Logger.WarnContext(ctx, "post create failed after media upload, object orphaned",
				"media_id", post.ImageID)
		}
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

// UpdatePost replaces title and body, and optionally the image. When a new
// image is supplied the old object is deleted first, then the new one is
// uploaded, then the record is saved. A failed upload aborts the save and
// leaves the record pointing at the now-deleted old image.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	// Non-owners get the same answer as a missing post.
	if post.AuthorID != in.UserID {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if err := validatePostFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	if len(in.ImageContent) > 0 {
		if post.HasImage() {
			if err := s.store.Delete(ctx, post.ImageID); err != nil {
				return nil, err
			}
		}
		obj, err := s.store.Upload(ctx, in.ImageFilename, in.ImageContent)
		if err != nil {
			return nil, err
		}
		post.ImageURL = obj.URL
		post.ImageID = obj.ID
	}

	post.Title = in.Title
	post.Body = in.Body

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the stored image first and aborts when that fails, so
// a post row never outlives a half-deleted media object. Comments under the
// post are not touched.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.AuthorID != in.UserID {
		return models.NewNotFoundError("Post", in.PostID)
	}

	if post.HasImage() {
		if err := s.store.Delete(ctx, post.ImageID); err != nil {
			return err
		}
	}

	return s.postRepo.Delete(ctx, post.ID)
}
