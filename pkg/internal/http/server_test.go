package http

import (
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	localCache "github.com/sofialeaf/quillfeed/pkg/internal/cache"
	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	require.NoError(t, localCache.NewStore())

	viper.Set("security.token_secret", testSecret)
	viper.Set("security.login_url", "/auth/login")

	return NewServer().Fiber()
}

func mintToken(t *testing.T, name string, isAdmin bool) string {
	t.Helper()

	claims := auth.Claims{
		Name:    name,
		Nick:    name,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func formRequest(method, target, token string, form url.Values) *gohttp.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestNotFoundRoutes(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{
		"/group/nope",
		"/profile/nobody",
		"/posts/999",
		"/no/such/path",
	} {
		resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, target, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusNotFound, resp.StatusCode, target)
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(formRequest(gohttp.MethodPost, "/create", "", url.Values{"text": {"hello"}}), -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestCreatePostFlow(t *testing.T) {
	app := newTestApp(t)
	token := mintToken(t, "alice", false)

	resp, err := app.Test(formRequest(gohttp.MethodPost, "/create", token, url.Values{"text": {"hello world"}}), -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get(fiber.HeaderLocation))

	count, err := services.CountPost(database.C)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreatePostEmptyTextRendersForm(t *testing.T) {
	app := newTestApp(t)
	token := mintToken(t, "alice", false)

	// Whitespace-only text counts as empty, same as a blank submission.
	for _, text := range []string{"", "   "} {
		resp, err := app.Test(formRequest(gohttp.MethodPost, "/create", token, url.Values{"text": {text}}), -1)
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "errors")
	}

	count, err := services.CountPost(database.C)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEditPostWhitespaceTextRendersForm(t *testing.T) {
	app := newTestApp(t)

	alice, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	item, err := services.NewPost(alice, models.Post{Text: "original"})
	require.NoError(t, err)

	token := mintToken(t, "alice", false)
	resp, err := app.Test(formRequest(gohttp.MethodPost, "/posts/1/edit", token, url.Values{"text": {"   "}}), -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "errors")

	kept, err := services.GetPost(database.C, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", kept.Text)
}

func TestIndexFeedIsCached(t *testing.T) {
	app := newTestApp(t)

	alice, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	_, err = services.NewPost(alice, models.Post{Text: "the first"})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, gohttp.StatusOK, resp.StatusCode)
	first, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	localCache.R.Wait()

	// Within the TTL window the cached payload wins, even though the data
	// underneath has changed.
	_, err = services.NewPost(alice, models.Post{Text: "the second"})
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest(gohttp.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	second, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEditPostDeniedRedirects(t *testing.T) {
	app := newTestApp(t)

	alice, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	item, err := services.NewPost(alice, models.Post{Text: "original"})
	require.NoError(t, err)

	token := mintToken(t, "mallory", false)
	resp, err := app.Test(formRequest(gohttp.MethodPost, "/posts/1/edit", token, url.Values{"text": {"defaced"}}), -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/posts/1", resp.Header.Get(fiber.HeaderLocation))

	kept, err := services.GetPost(database.C, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", kept.Text)
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)

	alice, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	item, err := services.NewPost(alice, models.Post{Text: "hello"})
	require.NoError(t, err)

	token := mintToken(t, "bob", false)
	resp, err := app.Test(formRequest(gohttp.MethodPost, "/posts/1/comment", token, url.Values{"text": {"hi there"}}), -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/posts/1", resp.Header.Get(fiber.HeaderLocation))

	count, err := services.CountComments(item.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	comments, err := services.ListComments(item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].Author.Name)
}

func TestFollowActions(t *testing.T) {
	app := newTestApp(t)

	_, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	token := mintToken(t, "bob", false)

	req := httptest.NewRequest(gohttp.MethodGet, "/profile/alice/follow", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get(fiber.HeaderLocation))

	// Following yourself bounces back to the index without a relation.
	req = httptest.NewRequest(gohttp.MethodGet, "/profile/bob/follow", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	var count int64
	require.NoError(t, database.C.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Unfollowing someone you never followed is a hard failure.
	carolToken := mintToken(t, "carol", false)
	req = httptest.NewRequest(gohttp.MethodGet, "/profile/alice/unfollow", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+carolToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusNotFound, resp.StatusCode)
}

func TestProfileShowsFollowingState(t *testing.T) {
	app := newTestApp(t)

	alice, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	bob, err := services.LoadOrCreateAccount("bob", "bob", false)
	require.NoError(t, err)
	_, err = services.FollowAuthor(bob, alice)
	require.NoError(t, err)

	token := mintToken(t, "bob", false)
	req := httptest.NewRequest(gohttp.MethodGet, "/profile/alice", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, gohttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"following":true`)
}

func TestAdminGroupManagement(t *testing.T) {
	app := newTestApp(t)

	// Plain users are rejected.
	req := httptest.NewRequest(gohttp.MethodPost, "/admin/groups", strings.NewReader(`{"slug":"kittens","title":"Kittens"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintToken(t, "bob", false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(gohttp.MethodPost, "/admin/groups", strings.NewReader(`{"slug":"kittens","title":"Kittens"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintToken(t, "root", true))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusOK, resp.StatusCode)

	group, err := services.GetGroup("kittens")
	require.NoError(t, err)
	assert.Equal(t, "Kittens", group.Title)
}

func TestAdminPostRemoval(t *testing.T) {
	app := newTestApp(t)

	alice, err := services.LoadOrCreateAccount("alice", "alice", false)
	require.NoError(t, err)
	item, err := services.NewPost(alice, models.Post{Text: "soon to be gone"})
	require.NoError(t, err)

	req := httptest.NewRequest(gohttp.MethodDelete, "/admin/posts/1", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintToken(t, "bob", false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(gohttp.MethodDelete, "/admin/posts/1", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintToken(t, "root", true))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusOK, resp.StatusCode)

	_, err = services.GetPost(database.C, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	req = httptest.NewRequest(gohttp.MethodDelete, "/admin/posts/999", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintToken(t, "root", true))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusNotFound, resp.StatusCode)
}
