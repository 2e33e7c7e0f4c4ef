package book

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"digitallibrary/model"
	authsvc "digitallibrary/service/auth"
	"digitallibrary/service/catalog"
)

type catalogMock struct {
	booksFn   func() []model.Book
	byIDFn    func(id string) (*model.Book, error)
	addFn     func(req catalog.AddBookReq) (*model.Book, error)
	refreshFn func(ctx context.Context) (int, bool)
}

func (m *catalogMock) Refresh(ctx context.Context) (int, bool) { return m.refreshFn(ctx) }
func (m *catalogMock) Books() []model.Book                     { return m.booksFn() }
func (m *catalogMock) ByID(id string) (*model.Book, error)     { return m.byIDFn(id) }
func (m *catalogMock) AddUserBook(req catalog.AddBookReq) (*model.Book, error) {
	return m.addFn(req)
}
func (m *catalogMock) Count() int { return len(m.booksFn()) }

type authMock struct {
	currentFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *authMock) RequestOTP(context.Context, model.RequestOTPReq) error { panic("not used") }
func (m *authMock) VerifyOTP(context.Context, model.VerifyOTPReq) (*model.User, string, error) {
	panic("not used")
}
func (m *authMock) Current(ctx context.Context, sessionID string) (*model.User, error) {
	return m.currentFn(ctx, sessionID)
}
func (m *authMock) Logout(context.Context, string) error { panic("not used") }

func testController(cat catalog.Service, auth authsvc.Service) *Controller {
	return &Controller{
		Svc:    cat,
		Auth:   auth,
		V:      validator.New(),
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Secret: "secret",
	}
}

func catalogOf(n int) *catalogMock {
	books := make([]model.Book, n)
	for i := range books {
		genre := "fiction"
		if i%3 == 0 {
			genre = "mystery"
		}
		books[i] = model.Book{
			ID:       "b-" + string(rune('a'+i)),
			Title:    "Title",
			Author:   "Author",
			Genre:    genre,
			Language: "en",
		}
	}
	return &catalogMock{booksFn: func() []model.Book { return books }}
}

func doGet(t *testing.T, h echo.HandlerFunc, target string, setup func(echo.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if i := strings.Index(target, "/books/"); i >= 0 {
		rest := target[i+len("/books/"):]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[:j]
		}
		if rest != "" {
			c.SetParamNames("id")
			c.SetParamValues(rest)
		}
	}
	if setup != nil {
		setup(c)
	}
	require.NoError(t, h(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestList_PaginatesFilteredCatalog(t *testing.T) {
	h := testController(catalogOf(20), &authMock{})

	rec, body := doGet(t, h.List, "/v1/books?page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 20, body["total"])
	require.Len(t, body["data"], 12)
	require.Equal(t, true, body["has_more"])

	rec, body = doGet(t, h.List, "/v1/books?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["data"], 20)
	require.Equal(t, false, body["has_more"])
}

func TestList_GenreFilter(t *testing.T) {
	h := testController(catalogOf(20), &authMock{})

	rec, body := doGet(t, h.List, "/v1/books?genre=mystery", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 7, body["total"])

	rec, _ = doGet(t, h.List, "/v1/books?genre=thriller", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// notFoundErr mimics the catalog's coded not-found error.
type notFoundErr struct{}

func (notFoundErr) Error() string         { return string(catalog.ErrNotFound) }
func (notFoundErr) Code() catalog.ErrCode { return catalog.ErrNotFound }

func TestDetail_NotFound(t *testing.T) {
	h := testController(&catalogMock{byIDFn: func(string) (*model.Book, error) {
		return nil, notFoundErr{}
	}}, &authMock{})

	rec, _ := doGet(t, h.Detail, "/v1/books/ghost", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRead_AnonymousGetsPreview(t *testing.T) {
	premium := model.Book{ID: "p", Title: "Locked", Author: "A", PDFURL: "https://archive.org/p.pdf"}
	h := testController(&catalogMock{byIDFn: func(string) (*model.Book, error) { return &premium, nil }}, &authMock{})

	rec, body := doGet(t, h.Read, "/v1/books/p/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["preview"])
	require.Equal(t, "https://archive.org/p.pdf#page=1&zoom=75", body["url"])
}

func TestDownload_EntitlementResponses(t *testing.T) {
	premium := model.Book{ID: "p", Title: "Locked", DownloadURL: "https://archive.org/p.pdf"}
	users := map[string]*model.User{
		"regular": {ID: "regular"},
		"premium": {ID: "premium", IsPremium: true},
	}
	auth := &authMock{currentFn: func(_ context.Context, sid string) (*model.User, error) {
		u, ok := users[sid]
		if !ok {
			return nil, errors.New("session not found")
		}
		return u, nil
	}}
	h := testController(&catalogMock{byIDFn: func(string) (*model.Book, error) { return &premium, nil }}, auth)

	asSession := func(sid string) func(echo.Context) {
		return func(c echo.Context) { c.Set("session_id", sid) }
	}

	// Logged-out session record (token valid, session deleted): login required.
	rec, _ := doGet(t, h.Download, "/v1/books/p/download", asSession("ghost"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doGet(t, h.Download, "/v1/books/p/download", asSession("regular"))
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec, body := doGet(t, h.Download, "/v1/books/p/download", asSession("premium"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://archive.org/p.pdf", body["url"])
	require.Equal(t, "Locked.pdf", body["filename"])
}

func TestUpload_ValidatesAndCreates(t *testing.T) {
	created := model.Book{ID: "user-1", Title: "Mine"}
	cat := &catalogMock{addFn: func(req catalog.AddBookReq) (*model.Book, error) {
		require.Equal(t, "Mine", req.Title)
		return &created, nil
	}}
	auth := &authMock{currentFn: func(context.Context, string) (*model.User, error) {
		return &model.User{ID: "s1"}, nil
	}}
	h := testController(cat, auth)

	do := func(payload string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("session_id", "s1")
		require.NoError(t, h.Upload(c))
		return rec
	}

	rec := do(`{"title":"Mine","author":"Me","genre":"fiction","language":"en"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(`{"title":"Mine","author":"Me","genre":"thriller","language":"en"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(`{"author":"Me","genre":"fiction","language":"en"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
