package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The request is multipart/form-data
// with "title" and "body" fields and an optional "image" file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, username := s.currentUser(c)

	filename, content, err := formImageFile(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:        userID,
		Username:      username,
		Title:         c.FormValue("title"),
		Body:          c.FormValue("body"),
		ImageFilename: filename,
		ImageContent:  content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userIDParam, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	// Verify the user exists so unknown IDs return 404 instead of [].
	if _, err := s.userService.GetUserByID(c.UserContext(), userIDParam); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	posts, err := s.postService.GetUserPosts(c.UserContext(), userIDParam, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id. Accepts the same multipart form as
// CreatePost; a supplied "image" file replaces the stored one.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, _ := s.currentUser(c)
	postID, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	filename, content, err := formImageFile(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:        userID,
		PostID:        postID,
		Title:         c.FormValue("title"),
		Body:          c.FormValue("body"),
		ImageFilename: filename,
		ImageContent:  content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, _ := s.currentUser(c)
	postID, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
