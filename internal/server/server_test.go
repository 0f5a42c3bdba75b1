package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitescout.app/bitescout/internal/config"
	"bitescout.app/bitescout/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:         "test",
		Port:           "0",
		AllowedOrigins: "http://localhost:3000",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 5 << 20,
	}

	srv, err := NewServer(testutil.OpenDB(t), cfg)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, srv *Server, method, path, token string, fields map[string]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerAndLogin(t *testing.T, srv *Server, username, password string) string {
	t.Helper()

	w := doJSON(t, srv, "POST", "/register", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, srv, "POST", "/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestEndToEndScenario(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "password1")

	w := doJSON(t, srv, "POST", "/restaurants", token, gin.H{"name": "Cafe X"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurant := decode(t, w)["restaurant"].(map[string]any)
	restaurantID := fmt.Sprintf("%v", restaurant["id"])
	assert.Equal(t, "1", restaurantID)

	w = doMultipart(t, srv, "POST", "/food-items", token, map[string]string{
		"name":          "Latte",
		"restaurant_id": restaurantID,
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	foodItem := decode(t, w)["food_item"].(map[string]any)
	foodItemID := fmt.Sprintf("%v", foodItem["id"])
	assert.Equal(t, "1", foodItemID)

	w = doMultipart(t, srv, "POST", "/reviews", token, map[string]string{
		"food_item_id": foodItemID,
		"rating":       "5",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	review := decode(t, w)["review"].(map[string]any)
	reviewID := fmt.Sprintf("%v", review["id"])

	w = doJSON(t, srv, "DELETE", "/restaurants/"+restaurantID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, srv, "GET", "/food-items/"+foodItemID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, "GET", "/reviews/"+reviewID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, "POST", "/register", "", gin.H{"username": "alice", "password": "password1"})
	require.Equal(t, http.StatusCreated, w.Code)

	// The response never carries password material
	body := decode(t, w)
	raw, _ := json.Marshal(body)
	assert.NotContains(t, string(raw), "password")

	w = doJSON(t, srv, "POST", "/register", "", gin.H{"username": "alice", "password": "password2"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, "POST", "/register", "", gin.H{"username": "alice", "password": "password1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, "POST", "/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, "POST", "/restaurants", "", gin.H{"name": "Cafe X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing credential")

	w = doJSON(t, srv, "POST", "/restaurants", "garbage-token", gin.H{"name": "Cafe X"})
	assert.Equal(t, http.StatusForbidden, w.Code, "invalid credential")
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "password1")

	w := doJSON(t, srv, "GET", "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])

	w = doJSON(t, srv, "GET", "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicReadsNeedNoToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/restaurants", "/food-items", "/reviews", "/health"} {
		w := doJSON(t, srv, "GET", path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestMissingEntityReads(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/restaurants/99", "/food-items/99", "/reviews/99"} {
		w := doJSON(t, srv, "GET", path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "password1")

	w := doJSON(t, srv, "POST", "/restaurants", token, gin.H{"name": "Cafe X"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doMultipart(t, srv, "POST", "/food-items", token, map[string]string{
		"name":          "Latte",
		"restaurant_id": "1",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Out-of-range rating
	w = doMultipart(t, srv, "POST", "/reviews", token, map[string]string{
		"food_item_id": "1",
		"rating":       "6",
	}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown food item
	w = doMultipart(t, srv, "POST", "/reviews", token, map[string]string{
		"food_item_id": "42",
		"rating":       "5",
	}, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadedImageIsServed(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "password1")

	w := doJSON(t, srv, "POST", "/restaurants", token, gin.H{"name": "Cafe X"})
	require.Equal(t, http.StatusCreated, w.Code)

	content := make([]byte, 64)
	copy(content, testutil.PNGHeader)
	w = doMultipart(t, srv, "POST", "/food-items", token, map[string]string{
		"name":          "Latte",
		"restaurant_id": "1",
	}, "latte.png", content)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	foodItem := decode(t, w)["food_item"].(map[string]any)
	imagePath, _ := foodItem["image_path"].(string)
	require.NotEmpty(t, imagePath)

	w = doJSON(t, srv, "GET", imagePath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "the stored image must be served back")
}

func TestUploadRejectsNonImage(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "password1")

	w := doJSON(t, srv, "POST", "/restaurants", token, gin.H{"name": "Cafe X"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doMultipart(t, srv, "POST", "/food-items", token, map[string]string{
		"name":          "Latte",
		"restaurant_id": "1",
	}, "notes.txt", []byte("plain text body"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
