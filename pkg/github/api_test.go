package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgaunet/release-sync/pkg/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *github.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := github.NewClient(github.Options{
		Owner:  "octo",
		Repo:   "widget",
		Token:  "test-token",
		APIURL: server.URL + "/",
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := github.NewClient(github.Options{Owner: "o", Repo: "r"})
	require.ErrorIs(t, err, github.ErrTokenRequired)

	_, err = github.NewClient(github.Options{Token: "t", Owner: "o"})
	require.ErrorIs(t, err, github.ErrRepositoryRequired)

	client, err := github.NewClient(github.Options{Token: "t", Owner: "o", Repo: "r"})
	require.NoError(t, err)
	assert.Equal(t, "o/r", client.Repository())
}

func TestCreateRelease(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/repos/octo/widget/releases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "v1.0.0", body["tag_name"])
		assert.Equal(t, "First", body["name"])
		assert.NotContains(t, body, "target_commitish")
		assert.Equal(t, true, body["prerelease"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 42, "tag_name": "v1.0.0", "html_url": "https://example.test/r/42"}`)
	})
	client := newTestClient(t, mux)

	release, err := client.CreateRelease(context.Background(), github.NewRelease{
		TagName:    "v1.0.0",
		Name:       "First",
		Prerelease: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), release.ID)
	assert.Equal(t, "https://example.test/r/42", release.HTMLURL)
}

func TestCreateRelease_AlreadyExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/repos/octo/widget/releases", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message": "Validation Failed",
			"errors": [{"resource": "Release", "code": "already_exists", "field": "tag_name"}]}`)
	})
	client := newTestClient(t, mux)

	_, err := client.CreateRelease(context.Background(), github.NewRelease{TagName: "v1.0.0", Name: "First"})
	require.ErrorIs(t, err, github.ErrReleaseExists)
}

func TestCreateRelease_OtherValidationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/repos/octo/widget/releases", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message": "Validation Failed",
			"errors": [{"resource": "Release", "code": "invalid", "field": "target_commitish"}]}`)
	})
	client := newTestClient(t, mux)

	_, err := client.CreateRelease(context.Background(), github.NewRelease{TagName: "v1.0.0", Name: "First"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, github.ErrReleaseExists)
}

func TestGetReleaseByTag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/octo/widget/releases/tags/v1.0.0", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id": 7, "tag_name": "v1.0.0", "html_url": "https://example.test/r/7"}`)
	})
	mux.HandleFunc("GET /api/v3/repos/octo/widget/releases/tags/v9.9.9", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message": "Not Found"}`)
	})
	client := newTestClient(t, mux)

	release, err := client.GetReleaseByTag(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, int64(7), release.ID)

	_, err = client.GetReleaseByTag(context.Background(), "v9.9.9")
	require.ErrorIs(t, err, github.ErrReleaseNotFound)
}

func TestUploadAsset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/uploads/repos/octo/widget/releases/42/assets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "app.tar.gz", r.URL.Query().Get("name"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 5, "name": "app.tar.gz", "size": 7,
			"browser_download_url": "https://example.test/d/app.tar.gz"}`)
	})
	client := newTestClient(t, mux)

	asset, err := client.UploadAsset(context.Background(), 42, "app.tar.gz", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), asset.ID)
	assert.Equal(t, 7, asset.Size)
	assert.Equal(t, "https://example.test/d/app.tar.gz", asset.DownloadURL)
}

func TestUploadAsset_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/uploads/repos/octo/widget/releases/42/assets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message": "Bad Content-Length"}`)
	})
	client := newTestClient(t, mux)

	_, err := client.UploadAsset(context.Background(), 42, "app.tar.gz", []byte("payload"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.tar.gz")
}
