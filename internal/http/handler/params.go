package handler

import (
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"linkmono/internal/model"
)

// usernamePattern follows GitHub login rules, which sign-in accounts are created from.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	return v
}

type listParams struct {
	Page int    `query:"page" validate:"gte=1"`
	Sort string `query:"sort" validate:"omitempty,oneof=new old"`
}

type searchParams struct {
	Q      string `query:"q" validate:"utf8"`
	Target string `query:"target" validate:"omitempty,oneof=articles works users tags"`
	Page   int    `query:"page" validate:"gte=1"`
	Sort   string `query:"sort" validate:"omitempty,oneof=new old"`
}

// pageParam reads ?page. Absent, non-numeric and 0 all mean the first page;
// negative values are kept so validation can reject them.
func pageParam(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page == 0 {
		return 1
	}
	return page
}

func parseListParams(c *fiber.Ctx) (listParams, error) {
	p := listParams{
		Page: pageParam(c),
		Sort: c.Query("sort"),
	}
	return p, validate.Struct(p)
}

func parseSearchParams(c *fiber.Ctx) (searchParams, error) {
	p := searchParams{
		Q:      c.Query("q"),
		Target: c.Query("target"),
		Page:   pageParam(c),
		Sort:   c.Query("sort"),
	}
	return p, validate.Struct(p)
}

func (p listParams) sortOrder() model.SortOrder {
	s, _ := model.ParseSortOrder(p.Sort)
	return s
}
