package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, _ := s.currentUser(c)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	postsLimit := c.QueryInt("posts_limit", 10)
	user, err := s.userService.GetProfile(c.UserContext(), id, postsLimit)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}
