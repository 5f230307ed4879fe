package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barvid/internal/config"
	"barvid/internal/repository"
	"barvid/internal/service"
	"barvid/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dataDir := t.TempDir()
	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "0",
			BaseURL:            "localhost",
			JWTSigningKey:      "test-signing-key",
			SessionTTLMinutes:  60,
			AllowedCORSDomains: []string{"http://localhost:3000"},
		},
		Gin:     &config.GinConfig{Mode: "test"},
		Store:   &config.StoreConfig{DataDir: dataDir},
		Uploads: &config.UploadsConfig{Dir: t.TempDir()},
	}

	users := repository.NewUserRepository(dataDir)
	require.NoError(t, service.NewAuthService(users).Bootstrap(context.Background()))

	media, err := storage.NewMediaStore(conf.Uploads.Dir)
	require.NoError(t, err)

	return NewServer(conf, media)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	return w
}

func login(t *testing.T, s *Server) []*http.Cookie {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "admin",
		"password": "1234",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	return cookies
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/inventory", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "admin",
		"password": "1234",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// The token also works as a Bearer header.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t)
	cookies := login(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/products", map[string]string{
		"barcode": "A001",
		"name":    "Widget",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// Duplicate barcode conflicts.
	w = doJSON(t, s, http.MethodPost, "/api/v1/products", map[string]string{
		"barcode": "A001",
		"name":    "Other",
	}, cookies)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/stock-in", map[string]any{
		"barcode":  "A001",
		"quantity": 10,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/stock-in", map[string]any{
		"barcode":  "A001",
		"quantity": -1,
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/stock-in", map[string]any{
		"barcode":  "GHOST",
		"quantity": 1,
	}, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/items/A001", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var product struct {
		Quantity int `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 10, product.Quantity)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/products/A001", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/products/A001", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func packParcel(t *testing.T, s *Server, cookies []*http.Cookie, transportBarcode string, items string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("video", "clip.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("video-bytes"))
	require.NoError(t, err)

	require.NoError(t, mw.WriteField("transport_barcode", transportBarcode))
	require.NoError(t, mw.WriteField("scanned_items", items))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	return w
}

func TestPackingFlow(t *testing.T) {
	s := newTestServer(t)
	cookies := login(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/products", map[string]string{
		"barcode": "A001",
		"name":    "Widget",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/stock-in", map[string]any{
		"barcode":  "A001",
		"quantity": 10,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	scanned := `[{"barcode":"A001","name":"Widget"},{"barcode":"A001","name":"Widget"}]`
	w = packParcel(t, s, cookies, "T1", scanned)
	require.Equal(t, http.StatusOK, w.Code)

	var packResp struct {
		Status   string `json:"status"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packResp))
	assert.Equal(t, "success", packResp.Status)
	assert.NotEmpty(t, packResp.Filename)

	w = doJSON(t, s, http.MethodGet, "/api/v1/items/A001", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var product struct {
		Quantity int `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 8, product.Quantity)

	w = doJSON(t, s, http.MethodGet, "/api/v1/videos/"+packResp.Filename, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video-bytes", w.Body.String())

	w = doJSON(t, s, http.MethodGet, "/api/v1/parcels", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var parcels []struct {
		TransportBarcode string `json:"transport_barcode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parcels))
	require.Len(t, parcels, 1)
	assert.Equal(t, "T1", parcels[0].TransportBarcode)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/parcels/T1", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/parcels/T1", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/videos/"+packResp.Filename, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPackingRejectsIncompleteUpload(t *testing.T) {
	s := newTestServer(t)
	cookies := login(t, s)

	// Missing transport barcode.
	w := packParcel(t, s, cookies, "", "[]")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed scanned_items.
	w = packParcel(t, s, cookies, "T1", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserManagement(t *testing.T) {
	s := newTestServer(t)
	cookies := login(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/users", map[string]string{
		"new_username": "somchai",
		"new_password": "packline99",
	}, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/users", map[string]string{
		"new_username": "somchai",
		"new_password": "packline99",
	}, cookies)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Policy: at least 8 chars with a letter and a number.
	w = doJSON(t, s, http.MethodPost, "/api/v1/users", map[string]string{
		"new_username": "weak",
		"new_password": "short",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/users/change-password", map[string]string{
		"current_password": "wrong",
		"new_password":     "newpass123",
	}, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/users/change-password", map[string]string{
		"current_password": "1234",
		"new_password":     "newpass123",
	}, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReports(t *testing.T) {
	s := newTestServer(t)
	cookies := login(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/products", map[string]string{
		"barcode": "A001",
		"name":    "Widget",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/stock-in", map[string]any{
		"barcode":  "A001",
		"quantity": 10,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/reports/dashboard-summary", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		TotalStock   int `json:"total_stock"`
		TodayStockIn int `json:"today_stock_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 10, summary.TotalStock)
	assert.Equal(t, 10, summary.TodayStockIn)

	w = doJSON(t, s, http.MethodGet, "/api/v1/reports/daily-log", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	today := time.Now().Format("2006-01-02")
	path := fmt.Sprintf("/api/v1/reports/daily-log?date=%s&type=stock-in", today)
	w = doJSON(t, s, http.MethodGet, path, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		QuantityChange int `json:"quantity_change"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].QuantityChange)
}
