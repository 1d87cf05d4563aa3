package posts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drimcity/drimcity-go/auth"
	"github.com/drimcity/drimcity-go/config"
	"github.com/drimcity/drimcity-go/web"
)

type postsFixture struct {
	router *chi.Mux
	svc    *Service
	token  string
}

func newPostsFixture(t *testing.T) *postsFixture {
	t.Helper()

	authCfg := config.AuthConfig{
		JWTKey:        "test-signing-key-with-enough-entropy",
		JWTIssuer:     "drimcity",
		JWTAudience:   "drimcity-api",
		JWTExpiration: time.Hour,
	}
	token, err := auth.NewJwtIssuer(authCfg).Generate(7, "sam")
	require.NoError(t, err)

	svc := NewService(newMemPostStore())
	r := chi.NewRouter()
	NewHandlers(svc, auth.Middleware(&authCfg)).Register(r)

	return &postsFixture{router: r, svc: svc, token: token}
}

func (f *postsFixture) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePostEndpoint(t *testing.T) {
	f := newPostsFixture(t)

	rec := f.do(t, http.MethodPost, "/posts", `{"title":"The Tale of Drim City","content":"Once upon a time"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var post Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&post))
	assert.Equal(t, "The Tale of Drim City", post.Title)
	// Authorship comes from the bearer token, nothing else.
	assert.Equal(t, 7, post.AuthorID)
	assert.Equal(t, "/posts/"+post.Slug, rec.Header().Get("Location"))
}

func TestCreatePostEndpointRequiresAuth(t *testing.T) {
	f := newPostsFixture(t)

	rec := f.do(t, http.MethodPost, "/posts", `{"title":"A Title","content":"body"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePostEndpointValidation(t *testing.T) {
	f := newPostsFixture(t)

	cases := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"title missing", `{"content":"body"}`, "title", CodeTitleRequired},
		{"title too long", `{"title":"` + strings.Repeat("a", 301) + `","content":"body"}`, "title", CodeTitleMustBeLessOrEqualMaxLen},
		{"content missing", `{"title":"A Title"}`, "content", CodeContentRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/posts", tc.body, true)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var p web.Problem
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
			require.NotEmpty(t, p.Errors)
			assert.Equal(t, tc.field, p.Errors[0].Field)
			assert.Equal(t, tc.code, p.Errors[0].Code)
		})
	}
}

func TestGetPostsEndpointPagination(t *testing.T) {
	f := newPostsFixture(t)
	seedPosts(t, f.svc, 3)

	rec := f.do(t, http.MethodGet, "/posts?pageSize=2", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var page PostPage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Posts, 2)
	require.NotNil(t, page.NextPageToken)

	rec = f.do(t, http.MethodGet, "/posts?pageSize=2&pageToken="+*page.NextPageToken, "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Posts, 1)
	assert.Nil(t, page.NextPageToken)
}

func TestGetPostsEndpointNullTokenIsExplicit(t *testing.T) {
	f := newPostsFixture(t)
	seedPosts(t, f.svc, 1)

	rec := f.do(t, http.MethodGet, "/posts", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	require.Contains(t, raw, "nextPageToken")
	assert.Equal(t, "null", string(raw["nextPageToken"]))
}

func TestGetPostsEndpointPageSizeErrors(t *testing.T) {
	f := newPostsFixture(t)

	cases := []struct {
		name  string
		query string
		code  string
	}{
		{"negative", "pageSize=-1", CodePageSizeMustBePositive},
		{"not an integer", "pageSize=ten", CodePageSizeMustBeInteger},
		{"fractional", "pageSize=1.5", CodePageSizeMustBeInteger},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/posts?"+tc.query, "", false)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var p web.Problem
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
			require.NotEmpty(t, p.Errors)
			assert.Equal(t, "pageSize", p.Errors[0].Field)
			assert.Equal(t, tc.code, p.Errors[0].Code)
		})
	}
}

func TestGetPostsEndpointMalformedToken(t *testing.T) {
	f := newPostsFixture(t)

	rec := f.do(t, http.MethodGet, "/posts?pageToken=@@@", "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var p web.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	require.NotEmpty(t, p.Errors)
	assert.Equal(t, "pageToken", p.Errors[0].Field)
	assert.Equal(t, CodePageTokenMalformed, p.Errors[0].Code)
}

func TestCommentEndpoints(t *testing.T) {
	f := newPostsFixture(t)
	post := seedPosts(t, f.svc, 1)[0]

	rec := f.do(t, http.MethodPost, "/posts/"+post.Slug+"/comments", `{"content":"Nice post"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment Comment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&comment))
	assert.Equal(t, "Nice post", comment.Content)
	assert.Equal(t, 7, comment.AuthorID)
	assert.Equal(t, "/posts/"+post.Slug+"/comments/"+strconv.Itoa(comment.ID), rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/posts/"+post.Slug+"/comments", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []Comment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Nice post", comments[0].Content)
}

func TestCommentEndpointsUnknownSlug(t *testing.T) {
	f := newPostsFixture(t)

	// Unknown slugs answer with a bare 404 and an empty body.
	rec := f.do(t, http.MethodGet, "/posts/missing-post-abcd1234/comments", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/posts/missing-post-abcd1234/comments", `{"content":"hello"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCreateCommentEndpointRequiresAuth(t *testing.T) {
	f := newPostsFixture(t)
	post := seedPosts(t, f.svc, 1)[0]

	rec := f.do(t, http.MethodPost, "/posts/"+post.Slug+"/comments", `{"content":"hello"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
