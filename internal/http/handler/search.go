package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkmono/internal/model"
	"linkmono/internal/service"
)

// Search serves the search page for one target.
//
// @Summary Search
// @Tags search
// @Produce json
// @Param q query string false "Search word"
// @Param target query string false "articles, works, users or tags"
// @Param page query int false "Page, starting at 1"
// @Param sort query string false "new or old"
// @Success 200 {object} service.SearchPage
// @Failure 400 {object} errorPayload
// @Router /api/search [get]
func Search(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parseSearchParams(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		res, err := svc.Search(c.UserContext(), service.SearchQuery{
			Q:      p.Q,
			Target: model.SearchTarget(p.Target),
			Page:   p.Page,
			Sort:   model.SortOrder(p.Sort),
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidPage):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
			case errors.Is(err, service.ErrInvalidQuery):
				return writeErrorFields(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters",
					[]fieldError{{Field: "q", Rule: "utf8"}})
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// SearchRedirect turns a submitted search form into the canonical search URL.
//
// @Summary Submit search form
// @Tags search
// @Accept x-www-form-urlencoded
// @Param search formData string false "Search word"
// @Param target formData string false "articles, works, users or tags"
// @Param sort query string false "Sort of the page the form was submitted from"
// @Success 204
// @Success 303
// @Router /search [post]
func SearchRedirect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := c.FormValue("target")
		if _, ok := model.ParseSearchTarget(target); !ok {
			return writeErrorFields(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters",
				[]fieldError{{Field: "target", Rule: "oneof"}})
		}
		sort := c.Query("sort")
		if _, ok := model.ParseSortOrder(sort); !ok {
			return writeErrorFields(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters",
				[]fieldError{{Field: "sort", Rule: "oneof"}})
		}

		u, ok := service.RedirectURL(c.FormValue("search"), target, sort)
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Redirect(u, fiber.StatusSeeOther)
	}
}
