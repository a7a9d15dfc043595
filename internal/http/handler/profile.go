package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkmono/internal/http/middleware"
	"linkmono/internal/service"
)

// usernameParam validates :username. ok is false once an error response has been written.
func usernameParam(c *fiber.Ctx) (string, bool, error) {
	name := c.Params("username")
	if !usernamePattern.MatchString(name) {
		return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_USERNAME", "invalid username")
	}
	return name, true, nil
}

func writeProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
	case errors.Is(err, service.ErrInvalidPage):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// GetProfile serves the profile page of a user.
//
// @Summary User profile
// @Tags users
// @Produce json
// @Param username path string true "Login name"
// @Success 200 {object} service.ProfilePage
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/users/{username} [get]
func GetProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, ok, err := usernameParam(c)
		if !ok {
			return err
		}
		page, err := svc.Get(c.UserContext(), name, middleware.Viewer(c))
		if err != nil {
			return writeProfileError(c, err)
		}
		return c.JSON(page)
	}
}

// ListUserArticles serves one page of a user's articles.
//
// @Summary User articles
// @Tags users
// @Produce json
// @Param username path string true "Login name"
// @Param page query int false "Page, starting at 1"
// @Param sort query string false "new or old"
// @Success 200 {object} service.ListResult[model.Article]
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/users/{username}/articles [get]
func ListUserArticles(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, ok, err := usernameParam(c)
		if !ok {
			return err
		}
		p, err := parseListParams(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		res, err := svc.ListArticles(c.UserContext(), name, middleware.Viewer(c), p.Page, p.sortOrder())
		if err != nil {
			return writeProfileError(c, err)
		}
		return c.JSON(res)
	}
}

// ListUserWorks serves one page of a user's works.
//
// @Summary User works
// @Tags users
// @Produce json
// @Param username path string true "Login name"
// @Param page query int false "Page, starting at 1"
// @Param sort query string false "new or old"
// @Success 200 {object} service.ListResult[model.Work]
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/users/{username}/works [get]
func ListUserWorks(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, ok, err := usernameParam(c)
		if !ok {
			return err
		}
		p, err := parseListParams(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		res, err := svc.ListWorks(c.UserContext(), name, middleware.Viewer(c), p.Page, p.sortOrder())
		if err != nil {
			return writeProfileError(c, err)
		}
		return c.JSON(res)
	}
}
