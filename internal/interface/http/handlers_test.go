package handlers_test

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbridge/bookbridge/internal/application"
	"github.com/bookbridge/bookbridge/internal/infrastructure/memory"
	handlers "github.com/bookbridge/bookbridge/internal/interface/http"
	"github.com/bookbridge/bookbridge/internal/interface/middleware"
	"github.com/bookbridge/bookbridge/internal/web"
	"github.com/bookbridge/bookbridge/pkg/helpers"
	"github.com/bookbridge/bookbridge/pkg/validation"
)

type testApp struct {
	engine   *gin.Engine
	users    *memory.UserRepository
	listings *memory.ListingRepository
	sessions *helpers.SessionManager
	userSvc  *application.UserService
	listSvc  *application.ListingService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	users := memory.NewUserRepository()
	listings := memory.NewListingRepository(users)
	sessions := helpers.NewSessionManager("test-secret", time.Hour, memory.NewSessionStore())

	userSvc := application.NewUserService(users, sessions, nil, nil, "BookBridge")
	listSvc := application.NewListingService(listings, users, memory.NewUploader(), nil, nil, "", nil)

	uh := handlers.NewUserHandler(userSvc, nil, "localhost", false)
	lh := handlers.NewListingHandler(listSvc, nil)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	r.GET("/", uh.Home)
	r.GET("/signup", uh.SignupForm)
	r.POST("/signup", uh.Signup)
	r.GET("/login", uh.LoginForm)
	r.POST("/login", uh.Login)
	r.GET("/logout", uh.Logout)
	r.GET("/books", lh.Books)
	r.GET("/donate-book", lh.DonateBookForm)

	auth := r.Group("/")
	auth.Use(middleware.RequireLogin(sessions))
	{
		auth.GET("/dashboard", uh.Dashboard)
		auth.GET("/post-book", lh.PostBookForm)
		auth.POST("/post-book", lh.PostBook)
		auth.GET("/buy/:id", lh.Buy)
		auth.POST("/donate-book", lh.DonateBook)
	}

	return &testApp{engine: r, users: users, listings: listings, sessions: sessions, userSvc: userSvc, listSvc: listSvc}
}

func (a *testApp) postForm(path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// login signs up and logs in a user, returning the session cookie header.
func (a *testApp) login(t *testing.T, name, email, password string) string {
	t.Helper()
	w := a.postForm("/signup", url.Values{"name": {name}, "email": {email}, "password": {password}}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = a.postForm("/login", url.Values{"email": {email}, "password": {password}}, "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	require.NotEmpty(t, cookie)
	return cookie
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.SessionCookieName && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	return ""
}

func multipartBook(t *testing.T, fields map[string]string, withImage bool) (io.Reader, string) {
	t.Helper()
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "cover.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return strings.NewReader(buf.String()), mw.FormDataContentType()
}

func (a *testApp) postMultipart(path string, body io.Reader, contentType, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/dashboard", "/post-book"} {
		w := app.get(path, "")
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	// A guarded POST is stopped before any side effect.
	body, ct := multipartBook(t, map[string]string{
		"title": "X", "author": "Y", "price": "10", "location": "Noida",
	}, true)
	w := app.postMultipart("/post-book", body, ct, "")
	assert.Equal(t, http.StatusFound, w.Code)

	listings, err := app.listings.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestGuardRejectsStaleCookie(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "A", "a@example.com", "secret123")

	w := app.get("/logout", cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	w = app.get("/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSignupLoginDashboard(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "A", "a@example.com", "secret123")

	w := app.get("/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A")
}

func TestSignupDuplicate(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"A"}, "email": {"a@example.com"}, "password": {"secret123"}}
	w := app.postForm("/signup", form, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.postForm("/signup", form, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists! Try logging in.")
}

func TestLoginMessagesDistinct(t *testing.T) {
	app := newTestApp(t)
	_ = app.login(t, "A", "a@example.com", "secret123")

	w := app.postForm("/login", url.Values{"email": {"nobody@example.com"}, "password": {"secret123"}}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	w = app.postForm("/login", url.Values{"email": {"a@example.com"}, "password": {"wrongpass"}}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password")
}

func TestPostAndBrowseBooks(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "A", "a@example.com", "secret123")

	body, ct := multipartBook(t, map[string]string{
		"title": "The Alchemist", "author": "Paulo Coelho", "price": "150",
		"description": "good condition", "location": "Sector 62, Noida",
	}, true)
	w := app.postMultipart("/post-book", body, ct, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book posted successfully!")

	body, ct = multipartBook(t, map[string]string{
		"title": "Clean Code", "author": "Robert C. Martin", "price": "350",
		"location": "Delhi",
	}, true)
	w = app.postMultipart("/post-book", body, ct, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Browsing is public; the location filter is a case-insensitive substring.
	w = app.get("/books?location=noida", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Alchemist")
	assert.NotContains(t, w.Body.String(), "Clean Code")

	w = app.get("/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Alchemist")
	assert.Contains(t, w.Body.String(), "Clean Code")
}

func TestPostBookWithoutImage(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "A", "a@example.com", "secret123")

	body, ct := multipartBook(t, map[string]string{
		"title": "The Alchemist", "author": "Paulo Coelho", "price": "150",
		"location": "Noida",
	}, false)
	w := app.postMultipart("/post-book", body, ct, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please attach an image of the book.")
}

func TestBuyPage(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "A", "a@example.com", "secret123")

	seller, err := app.users.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	l, err := app.listSvc.PostBook(context.Background(), seller.ID, application.ListingInput{
		Title: "The Alchemist", Author: "Paulo Coelho", Price: 150, Location: "Noida",
	}, &application.ImageUpload{Reader: strings.NewReader("img"), Filename: "c.jpg", ContentType: "image/jpeg"})
	require.NoError(t, err)

	w := app.get("/buy/"+l.ID, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Alchemist")
	assert.Contains(t, w.Body.String(), "a@example.com")

	w = app.get("/buy/listing-404", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Book not found")
}

func TestDonateBookFlow(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "A", "a@example.com", "secret123")

	// The form page is public and lists the NGO directory.
	w := app.get("/donate-book", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hope Foundation")

	body, ct := multipartBook(t, map[string]string{
		"title": "Wings of Fire", "author": "A.P.J. Abdul Kalam", "ngo": "Hope Foundation",
	}, true)
	w = app.postMultipart("/donate-book", body, ct, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book donated successfully!")

	listings, err := app.listings.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.True(t, listings[0].IsDonated)
	assert.Zero(t, listings[0].Price)

	body, ct = multipartBook(t, map[string]string{
		"title": "Wings of Fire", "author": "A.P.J. Abdul Kalam", "ngo": "Nonexistent Trust",
	}, true)
	w = app.postMultipart("/donate-book", body, ct, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please pick an NGO from the list.")
}
