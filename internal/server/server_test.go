package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markuskoenig271/asiaspanel/internal/server"
	"github.com/markuskoenig271/asiaspanel/pkg/config"
	"github.com/markuskoenig271/asiaspanel/pkg/storage"
	"github.com/markuskoenig271/asiaspanel/pkg/synthesizer"
	"github.com/markuskoenig271/asiaspanel/pkg/translator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSynth struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSynth) CreateSpeech(_ context.Context, _ string, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

// newTestServer wires a server the way main does when no credentials are
// configured: mock translation, injected synthesizers, in-memory storage.
func newTestServer(t *testing.T, primary, fallback synthesizer.Synthesizer) (*server.Server, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	localStore, err := storage.NewLocalStore(fs, "storage")
	require.NoError(t, err)

	srv := server.New(server.Deps{
		Translator: translator.NewChain(nil),
		Speech:     synthesizer.NewPipeline(primary, fallback),
		Store:      localStore,
		Config:     config.NewMemStore(config.DefaultDocument()),
		Static:     localStore.HTTPFileSystem(),
	})
	return srv, fs
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody *bytes.Reader
	if body == "" {
		reqBody = bytes.NewReader(nil)
	} else {
		reqBody = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	decoded := map[string]any{}
	if recorder.Body.Len() > 0 && strings.Contains(recorder.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil, &fakeSynth{audio: []byte("x")})
	recorder, body := doJSON(t, srv.Handler(), http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", body["status"])
	assert.GreaterOrEqual(t, body["uptimeSeconds"].(float64), float64(0))
}

func TestTranslateWithoutCredentialReturnsMockTransform(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil, &fakeSynth{audio: []byte("x")})
	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/translate",
		`{"text":"Hello world","target":"de"}`, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "dlrow olleH", body["translatedText"])
	assert.Equal(t, "none", body["providerUsed"])
}

func TestTranslateRejectsEmptyText(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil, &fakeSynth{audio: []byte("x")})
	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/translate", `{"text":""}`, nil)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "text is required", body["error"])
}

func TestTTSFallbackProducesServableMP3(t *testing.T) {
	t.Parallel()

	fallback := &fakeSynth{audio: []byte("mp3-ish audio bytes")}
	srv, _ := newTestServer(t, nil, fallback)

	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/tts", `{"text":"Hello"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "FallbackTTS", body["providerUsed"])

	url, ok := body["url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "/storage/tts_"), "unexpected url %q", url)
	assert.True(t, strings.HasSuffix(url, ".mp3"), "unexpected url %q", url)

	// The returned URL resolves against the same server.
	fileReq := httptest.NewRequest(http.MethodGet, url, nil)
	fileRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(fileRec, fileReq)
	require.Equal(t, http.StatusOK, fileRec.Code)
	assert.Equal(t, "mp3-ish audio bytes", fileRec.Body.String())
}

func TestTTSPrefersPrimary(t *testing.T) {
	t.Parallel()

	primary := &fakeSynth{audio: []byte("primary audio")}
	fallback := &fakeSynth{audio: []byte("fallback audio")}
	srv, _ := newTestServer(t, primary, fallback)

	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/tts", `{"text":"Hello"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "PrimaryTTS", body["providerUsed"])
	assert.Equal(t, 0, fallback.calls)
}

func TestTTSPlaceholderWhenEverythingFails(t *testing.T) {
	t.Parallel()

	primary := &fakeSynth{err: errors.New("timeout")}
	fallback := &fakeSynth{err: errors.New("offline")}
	srv, fs := newTestServer(t, primary, fallback)

	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/tts", `{"text":"Hello"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Placeholder", body["providerUsed"])

	url := body["url"].(string)
	assert.True(t, strings.HasSuffix(url, ".txt"), "unexpected url %q", url)

	stub, err := afero.ReadFile(fs, "storage/"+strings.TrimPrefix(url, "/storage/"))
	require.NoError(t, err)
	assert.Contains(t, string(stub), "Hello")
}

func TestTTSRejectsEmptyText(t *testing.T) {
	t.Parallel()

	fallback := &fakeSynth{audio: []byte("x")}
	srv, _ := newTestServer(t, nil, fallback)

	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/tts", `{"text":"  "}`, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "text is required", body["error"])
	// No provider was contacted.
	assert.Equal(t, 0, fallback.calls)
}

func TestConfigPostThenGetRoundTrips(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil, &fakeSynth{audio: []byte("x")})

	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/config",
		`{"selectedVoice":"nova","defaultTargetLanguage":"de"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "nova", body["selectedVoice"])
	assert.Equal(t, "de", body["defaultTargetLanguage"])

	recorder, body = doJSON(t, srv.Handler(), http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, map[string]any{
		"selectedVoice":         "nova",
		"defaultTargetLanguage": "de",
	}, body)
}

func TestConfigReplaceIsWholesale(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil, &fakeSynth{audio: []byte("x")})

	_, _ = doJSON(t, srv.Handler(), http.MethodPost, "/api/config",
		`{"selectedVoice":"nova","defaultTargetLanguage":"de"}`, nil)
	// Posting only one field wipes the other; there is no partial merge.
	_, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/config", `{"selectedVoice":"echo"}`, nil)

	assert.Equal(t, "echo", body["selectedVoice"])
	assert.Equal(t, "", body["defaultTargetLanguage"])
}

func TestAuthGate(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	localStore, err := storage.NewLocalStore(fs, "storage")
	require.NoError(t, err)

	srv := server.New(server.Deps{
		Translator: translator.NewChain(nil),
		Speech:     synthesizer.NewPipeline(nil, &fakeSynth{audio: []byte("x")}),
		Store:      localStore,
		Config:     config.NewMemStore(config.DefaultDocument()),
		Password:   "sesame",
	})

	// No token: rejected.
	recorder, _ := doJSON(t, srv.Handler(), http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Wrong password: rejected.
	recorder, _ = doJSON(t, srv.Handler(), http.MethodPost, "/api/login", `{"password":"nope"}`, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Right password issues a token that opens /api.
	recorder, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/login", `{"password":"sesame"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	recorder, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/config", "",
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Health stays open.
	recorder, _ = doJSON(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}
