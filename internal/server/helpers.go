package server

import (
	"errors"
	"io"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// A malformed or non-positive id gets the same NOT_FOUND response as an id
// that resolves to no row, so the two cases are indistinguishable to
// clients. On failure the 404 is already written and errResponseWritten is
// returned; callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(resource, c.Params(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// mapServiceError translates an AppError code into an HTTP status.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.ErrCodeValidation:
		return fiber.StatusBadRequest
	case models.ErrCodeNotFound:
		return fiber.StatusNotFound
	case models.ErrCodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.ErrCodeStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// formImageFile reads the optional "image" multipart field. Returns
// ("", nil, nil) when the field is absent.
func formImageFile(c *fiber.Ctx) (string, []byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil, nil
	}

	src, err := file.Open()
	if err != nil {
		return "", nil, models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", nil, models.NewValidationError("Unable to read uploaded file")
	}
	return file.Filename, content, nil
}

func (s *Server) currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals("userID").(uint)
	username, _ := c.Locals("username").(string)
	return userID, username
}
