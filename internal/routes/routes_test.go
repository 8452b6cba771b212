package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/GevorkovG/go-qrcodes/config"
	"github.com/GevorkovG/go-qrcodes/internal/app"
	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(logger)

	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.QRDirectory = t.TempDir()
	cfg.TrustedSubnet = "192.168.1.0/24"
	cfg.TokenRateLimit = 1
	cfg.TokenRateBurst = 3

	ts := httptest.NewUnstartedServer(nil)
	cfg.BaseURL = "http://" + ts.Listener.Addr().String()

	a := app.NewApp(cfg)
	require.NoError(t, a.ConfigureStorage())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ts.Config.Handler = Router(ctx, a)
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	resp, err := http.PostForm(ts.URL+"/token", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "bearer", body.TokenType)
	return body.AccessToken
}

func do(t *testing.T, method, target, token string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_QRCodeLifecycle(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts)

	// создание
	resp := do(t, http.MethodPost, ts.URL+"/qr-codes/", token, strings.NewReader(`{"url":"https://example.com","size":2}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created objects.QRCode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Len(t, created.Links, 2)

	// повторное создание
	resp = do(t, http.MethodPost, ts.URL+"/qr-codes/", token, strings.NewReader(`{"url":"https://example.com","size":2}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// ссылка view отдаёт PNG без токена
	resp = do(t, http.MethodGet, created.Links[0].Href, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// список
	resp = do(t, http.MethodGet, ts.URL+"/qr-codes/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []objects.QRCode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "https://example.com", list[0].QRCodeURL)

	// статистика из доверенной подсети
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/internal/stats", nil)
	require.NoError(t, err)
	req.Header.Set("X-Real-IP", "192.168.1.10")
	stats, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stats.Body.Close()
	require.Equal(t, http.StatusOK, stats.StatusCode)
	b, err := io.ReadAll(stats.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"qr_codes":1}`, string(b))

	// удаление по ссылке delete
	resp = do(t, created.Links[1].Action, created.Links[1].Href, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, created.Links[1].Href, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/qr-codes/", token, nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestRouter_RequiresBearer(t *testing.T) {
	ts := newServer(t)

	tests := []struct {
		method string
		path   string
		token  string
	}{
		{method: http.MethodPost, path: "/qr-codes/"},
		{method: http.MethodGet, path: "/qr-codes/"},
		{method: http.MethodDelete, path: "/qr-codes/x.png"},
		{method: http.MethodGet, path: "/qr-codes/", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRouter_TokenRateLimit(t *testing.T) {
	ts := newServer(t)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		resp, err := http.PostForm(ts.URL+"/token", url.Values{"username": {"admin"}, "password": {"wrong"}})
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRouter_StatsForbidden(t *testing.T) {
	ts := newServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/internal/stats", nil)
	require.NoError(t, err)
	req.Header.Set("X-Real-IP", "10.0.0.1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_PingAndMetrics(t *testing.T) {
	ts := newServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "qrcodes_render_duration_seconds")
}
