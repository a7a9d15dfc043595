package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"linkmono/internal/auth"
	"linkmono/internal/http/middleware"
	"linkmono/internal/model"
	"linkmono/internal/service"
	serviceMocks "linkmono/internal/service/mocks"
)

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileService)
	verifier := auth.NewVerifier("secret")

	app := fiber.New()
	app.Use(middleware.Session(verifier))
	app.Get("/api/users/:username", GetProfile(mockSvc))

	t.Run("anonymous", func(t *testing.T) {
		expected := &service.ProfilePage{
			User:  service.ProfileHeader{Name: "hanako", Heading: "hanako"},
			Stats: []service.StatusItem{{Label: "記事", Value: 3}},
		}
		mockSvc.On("Get", mock.Anything, "hanako", "").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ProfilePage
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "hanako", result.User.Name)
		assert.Equal(t, 3, result.Stats[0].Value)
		mockSvc.AssertExpectations(t)
	})

	t.Run("signed in viewer is passed through", func(t *testing.T) {
		token, err := verifier.Issue("hanako", time.Hour)
		require.NoError(t, err)
		mockSvc.On("Get", mock.Anything, "hanako", "hanako").
			Return(&service.ProfilePage{IsCurrentUser: true}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.ProfilePage
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.IsCurrentUser)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "ghost", "").Return(nil, service.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/-bad_name", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_USERNAME", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "hanako", "").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListUserArticles(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileService)
	app := fiber.New()
	app.Get("/api/users/:username/articles", ListUserArticles(mockSvc))

	t.Run("defaults", func(t *testing.T) {
		expected := &service.ListResult[model.Article]{
			Items: []model.Article{{ID: "a1", Title: "Go"}},
			Total: 11,
			Page:  1,
		}
		mockSvc.On("ListArticles", mock.Anything, "hanako", "", 1, model.SortNew).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/articles", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ListResult[model.Article]
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 11, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("page and sort", func(t *testing.T) {
		mockSvc.On("ListArticles", mock.Anything, "hanako", "", 2, model.SortOld).
			Return(&service.ListResult[model.Article]{Page: 2}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/articles?page=2&sort=old", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/articles?sort=popular", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_QUERY", body.Error.Code)
		require.Len(t, body.Error.Fields, 1)
		assert.Equal(t, "sort", body.Error.Fields[0].Field)
	})

	t.Run("negative page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/articles?page=-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		require.Len(t, body.Error.Fields, 1)
		assert.Equal(t, "page", body.Error.Fields[0].Field)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("ListArticles", mock.Anything, "ghost", "", 1, model.SortNew).Return(nil, service.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/ghost/articles", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListUserWorks(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileService)
	app := fiber.New()
	app.Get("/api/users/:username/works", ListUserWorks(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.ListResult[model.Work]{
			Items: []model.Work{{ID: "w1", Title: "CLI"}},
			Total: 1,
			Page:  1,
		}
		mockSvc.On("ListWorks", mock.Anything, "hanako", "", 1, model.SortNew).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/works?page=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListWorks", mock.Anything, "hanako", "", 1, model.SortNew).Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/works", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearch(t *testing.T) {
	mockSvc := new(serviceMocks.MockSearchService)
	app := fiber.New()
	app.Get("/api/search", Search(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.SearchPage{
			Query:  "go",
			Active: model.TargetWorks,
			Works:  []model.Work{{ID: "w1"}},
		}
		mockSvc.On("Search", mock.Anything, service.SearchQuery{
			Q:      "go",
			Target: model.TargetWorks,
			Page:   2,
		}).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=go&target=works&page=2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.SearchPage
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.TargetWorks, result.Active)
		assert.Len(t, result.Works, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-numeric page falls back to first page", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, service.SearchQuery{Q: "go", Page: 1, Sort: model.SortOld}).
			Return(&service.SearchPage{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=go&page=abc&sort=old", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid target and sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=go&target=repos&sort=top", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_QUERY", body.Error.Code)
		fields := []string{}
		for _, f := range body.Error.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{"target", "sort"}, fields)
	})

	t.Run("q that is not utf-8", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=%FF", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_QUERY", body.Error.Code)
		require.Len(t, body.Error.Fields, 1)
		assert.Equal(t, "q", body.Error.Fields[0].Field)
		assert.Equal(t, "utf8", body.Error.Fields[0].Rule)
	})

	t.Run("service rejects word", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, service.SearchQuery{Q: "ok", Page: 1}).
			Return(nil, service.ErrInvalidQuery).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=ok", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_QUERY", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, service.SearchQuery{Q: "x", Page: 1}).
			Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchRedirect(t *testing.T) {
	app := fiber.New()
	app.Post("/search", SearchRedirect())

	post := func(target string, form url.Values) *http.Response {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("empty word", func(t *testing.T) {
		resp := post("/search", url.Values{"search": {""}})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("defaults are omitted", func(t *testing.T) {
		resp := post("/search?sort=new", url.Values{"search": {"go lang"}, "target": {"articles"}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/search?q=go%20lang", resp.Header.Get("Location"))
	})

	t.Run("target and sort kept", func(t *testing.T) {
		resp := post("/search?sort=old", url.Values{"search": {"go"}, "target": {"tags"}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/search?q=go&target=tags&sort=old", resp.Header.Get("Location"))
	})

	t.Run("unknown target", func(t *testing.T) {
		resp := post("/search", url.Values{"search": {"go"}, "target": {"repos"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_QUERY", decodeError(t, resp).Error.Code)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "nope")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		return errors.New("unexpected")
	})

	t.Run("bad request keeps request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
		assert.Equal(t, "rid-1", body.RequestID)
	})

	t.Run("plain error is internal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "internal server error", body.Error.Message)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	profiles := new(serviceMocks.MockProfileService)
	search := new(serviceMocks.MockSearchService)
	RegisterRoutes(app, Deps{
		Profiles: profiles,
		Search:   search,
		Metrics: func(c *fiber.Ctx) error {
			return c.SendString("metrics")
		},
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("metrics mounted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("nested user routes", func(t *testing.T) {
		profiles.On("ListWorks", mock.Anything, "hanako", "", 1, model.SortNew).
			Return(&service.ListResult[model.Work]{Page: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/hanako/works", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		profiles.AssertExpectations(t)
	})
}
