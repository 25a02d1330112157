package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialgraph/internal/adapters/httpapi"
	"socialgraph/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) (*gin.Engine, *testutil.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app := testutil.NewApp(t)
	r := httpapi.SetupRoutes(zap.NewNop(), nil,
		app.Users, app.Posts, app.Tags, app.Comments, app.Likes, app.Subscriptions, app.Feed)
	return r, app
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestUserAndPostRoutes(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodPost, "/users/", map[string]string{"name": "alice"})
	require.Equal(t, http.StatusOK, w.Code)
	alice := decode[map[string]string](t, w)
	assert.Equal(t, "alice", alice["name"])

	// پارامترهای query هم پذیرفته می‌شوند
	w = do(r, http.MethodPost, "/posts/?title=hello&content=world&user_id="+alice["id"], nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	post := decode[map[string]any](t, w)
	assert.Equal(t, "hello", post["title"])
	assert.Equal(t, alice["id"], post["user_id"])

	w = do(r, http.MethodGet, "/users/"+alice["id"]+"/posts/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"alice","posts":["hello"]}`, w.Body.String())

	w = do(r, http.MethodGet, "/users/posts/count/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"user":"alice","post_count":1}]`, w.Body.String())
}

func TestErrorStatusCodes(t *testing.T) {
	r, app := setupRouter(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	ghost := uuid.Must(uuid.NewV4()).String()

	w := do(r, http.MethodPost, "/users/", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/users/"+ghost+"/posts/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())

	w = do(r, http.MethodGet, "/users/42/posts/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/users/"+a+"/follow/"+a+"/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Cannot follow yourself"}`, w.Body.String())

	w = do(r, http.MethodPost, "/users/"+a+"/follow/"+b+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/users/"+a+"/follow/"+b+"/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Already following this user"}`, w.Body.String())
}

func TestTagRoutes(t *testing.T) {
	r, app := setupRouter(t)
	alice := app.MustUser(t, "alice")
	postID := app.MustPost(t, alice, "t", "c")

	w := do(r, http.MethodPost, "/tags/", map[string]string{"name": "go"})
	require.Equal(t, http.StatusOK, w.Code)
	tagID := decode[map[string]string](t, w)["id"]

	w = do(r, http.MethodPost, "/tags/", map[string]string{"name": "go"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Tag with this name already exists"}`, w.Body.String())

	w = do(r, http.MethodPost, "/posts/"+postID+"/tags/", []string{tagID, uuid.Must(uuid.NewV4()).String()})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Some tags not found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/posts/"+postID+"/tags/", map[string][]string{"tag_ids": {tagID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[map[string]any](t, w)
	assert.Len(t, res["tags"], 1)

	w = do(r, http.MethodPost, "/posts/"+postID+"/tags/", map[string]string{"nope": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/posts/"+postID+"/tags/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"`+tagID+`","name":"go"}]`, w.Body.String())

	w = do(r, http.MethodGet, "/tags/"+tagID+"/posts/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = do(r, http.MethodGet, "/tags/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = do(r, http.MethodDelete, "/tags/"+tagID+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/posts/"+postID+"/tags/", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCommentLikeAndFeedRoutes(t *testing.T) {
	r, app := setupRouter(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	postID := app.MustPost(t, b, "P1", "one")

	w := do(r, http.MethodPost, "/comments/", map[string]string{"content": "nice", "post_id": postID})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/posts/"+postID+"/comments/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode[[]map[string]any](t, w)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0]["content"])

	w = do(r, http.MethodPost, "/posts/"+postID+"/like/", map[string]string{"user_id": a})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Post liked successfully"}`, w.Body.String())
	w = do(r, http.MethodPost, "/posts/"+postID+"/like/?user_id="+a, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, "/posts/"+postID+"/likes/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"post_id":"`+postID+`","likes":1,"users":["a"]}`, w.Body.String())

	w = do(r, http.MethodGet, "/feed/"+a+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"a","feed":[]}`, w.Body.String())

	app.MustFollow(t, a, b)
	w = do(r, http.MethodGet, "/feed/"+a+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"a","feed":[{"author":"b","title":"P1","content":"one"}]}`, w.Body.String())

	w = do(r, http.MethodGet, "/users/"+b+"/followers/", nil)
	assert.JSONEq(t, `[{"id":"`+a+`","name":"a"}]`, w.Body.String())
	w = do(r, http.MethodGet, "/users/"+a+"/following/", nil)
	assert.JSONEq(t, `[{"id":"`+b+`","name":"b"}]`, w.Body.String())

	w = do(r, http.MethodDelete, "/posts/"+postID+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/posts/"+postID+"/likes/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	r, _ := setupRouter(t)
	w := do(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestBlankTextIsAccepted(t *testing.T) {
	r, app := setupRouter(t)
	a := app.MustUser(t, "a")

	w := do(r, http.MethodPost, "/posts/", map[string]string{"title": "t", "content": "", "user_id": a})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	postID := decode[map[string]any](t, w)["id"].(string)

	w = do(r, http.MethodPost, "/posts/", map[string]string{"title": "", "content": "c", "user_id": a})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/comments/", map[string]string{"content": "", "post_id": postID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "", decode[map[string]any](t, w)["content"])

	// پارامتر غایب همچنان 400 است
	w = do(r, http.MethodPost, "/posts/", map[string]string{"title": "t", "user_id": a})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPost, "/comments/", map[string]string{"post_id": postID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
