package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func testConfig() config.Config {
	return config.Config{
		Language:     "en",
		JWTSecret:    "test_secret",
		SessionTTL:   time.Hour,
		CookieName:   "scramble_session",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "salt",
	}
}

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	pool, err := words.FromList([]string{"silkworm"})
	require.NoError(t, err)
	dict := dictionary.NewWordList("en", []string{"silk", "worm", "milk", "owl", "slim", "silkworm"})
	st := store.NewMemoryStore()
	return New(testConfig(), st, pool, dict), st
}

func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func startGame(t *testing.T, s *Server) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[newGameRes](t, rec)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestNewGame(t *testing.T) {
	s, st := newTestServer(t)
	res := startGame(t, s)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "silkworm", res.State.RootWord)
	assert.Equal(t, "en", res.State.Language)
	assert.Equal(t, 0, res.State.Score)
	assert.Empty(t, res.State.UsedWords)
	assert.Equal(t, 1, st.Len())
}

func TestNewGameSetsCookie(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/game/new", "", `{"daily":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "scramble_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, rec.Header().Get("X-Session-Token"))

	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewGameBadJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/game/new", "", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewGameCannotStart(t *testing.T) {
	st := store.NewMemoryStore()
	s := New(testConfig(), st, nil, dictionary.NewWordList("en", nil))

	rec := do(t, s, http.MethodPost, "/game/new", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"cannot_start"}`, rec.Body.String())
	assert.Equal(t, 0, st.Len())
}

func TestSubmitWords(t *testing.T) {
	s, _ := newTestServer(t)
	tok := startGame(t, s).Token

	rec := do(t, s, http.MethodPost, "/game/word", tok, `{"word":"  Silk "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[wordRes](t, rec)
	assert.Equal(t, game.StatusAccepted, res.Outcome.Status)
	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, []game.UsedWord{{Word: "silk", Length: 4}}, res.State.UsedWords)

	res = decode[wordRes](t, do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silk"}`))
	assert.Equal(t, game.ReasonAlreadyUsed, res.Outcome.Reason)
	assert.Equal(t, "Word used already", res.Outcome.Title)
	assert.Equal(t, 8, res.State.Score)

	res = decode[wordRes](t, do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silkk"}`))
	assert.Equal(t, game.ReasonNotComposable, res.Outcome.Reason)
	assert.Equal(t, 5, res.State.Score)

	res = decode[wordRes](t, do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silkworm"}`))
	assert.Equal(t, game.ReasonNotARealWord, res.Outcome.Reason)
	assert.Equal(t, game.CauseRootWord, res.Outcome.Cause)
	assert.Equal(t, 0, res.State.Score)

	res = decode[wordRes](t, do(t, s, http.MethodPost, "/game/word", tok, `{"word":"milks"}`))
	assert.Equal(t, game.CauseUnknown, res.Outcome.Cause)
	assert.Equal(t, "milk", res.Outcome.Suggestion)
	assert.Equal(t, -5, res.State.Score)

	res = decode[wordRes](t, do(t, s, http.MethodPost, "/game/word", tok, `{"word":"   "}`))
	assert.Equal(t, game.StatusIgnored, res.Outcome.Status)
	assert.Equal(t, -5, res.State.Score)
}

func TestRestartKeepsScore(t *testing.T) {
	s, _ := newTestServer(t)
	tok := startGame(t, s).Token
	do(t, s, http.MethodPost, "/game/word", tok, `{"word":"owl"}`)

	rec := do(t, s, http.MethodPost, "/game/restart", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[game.Snapshot](t, rec)
	assert.Equal(t, 10, snap.Score)
	assert.Empty(t, snap.UsedWords)
	assert.Equal(t, "silkworm", snap.RootWord)

	snap = decode[game.Snapshot](t, do(t, s, http.MethodGet, "/game", tok, ""))
	assert.Equal(t, 10, snap.Score)
}

func TestSessionRequired(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/game", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/game", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := New(config.Config{JWTSecret: "other", SessionTTL: time.Hour, CookieName: "c"}, store.NewMemoryStore(), nil, nil)
	tok, _, err := other.signToken("abc", false)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/game", tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	s, _ := newTestServer(t)
	tok := startGame(t, s).Token

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	rec := do(t, s, http.MethodGet, "/game", tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActiveSessionStaysValid(t *testing.T) {
	s, _ := newTestServer(t)
	base := time.Now()
	s.now = func() time.Time { return base }
	tok := startGame(t, s).Token

	s.now = func() time.Time { return base.Add(50 * time.Minute) }
	rec := do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silk"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := rec.Header().Get("X-Session-Token")
	require.NotEmpty(t, fresh)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, fresh, cookies[0].Value)

	// 70 minutes after start but only 20 after the last request.
	s.now = func() time.Time { return base.Add(70 * time.Minute) }
	rec = do(t, s, http.MethodPost, "/game/word", fresh, `{"word":"worm"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 20, decode[wordRes](t, rec).State.Score)

	// The original token still lapses on its own schedule.
	rec = do(t, s, http.MethodGet, "/game", tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDailyRestartRefused(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/game/new", "", `{"daily":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	tok := decode[newGameRes](t, rec).Token
	do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silk"}`)

	rec = do(t, s, http.MethodPost, "/game/restart", tok, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"daily_no_restart"}`, rec.Body.String())

	// The daily flag survives a token refresh.
	rec = do(t, s, http.MethodGet, "/game", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[game.Snapshot](t, rec)
	assert.Equal(t, []game.UsedWord{{Word: "silk", Length: 4}}, snap.UsedWords)

	rec = do(t, s, http.MethodPost, "/game/restart", rec.Header().Get("X-Session-Token"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Resubmitting the same word is still just a repeat.
	res := decode[wordRes](t, do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silk"}`))
	assert.Equal(t, game.ReasonAlreadyUsed, res.Outcome.Reason)
	assert.Equal(t, 8, res.State.Score)
}

func TestEndSession(t *testing.T) {
	s, st := newTestServer(t)
	tok := startGame(t, s).Token

	rec := do(t, s, http.MethodDelete, "/game", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, st.Len())

	rec = do(t, s, http.MethodPost, "/game/word", tok, `{"word":"silk"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"session_not_found"}`, rec.Body.String())
}

func TestSubmitBadJSON(t *testing.T) {
	s, _ := newTestServer(t)
	tok := startGame(t, s).Token
	rec := do(t, s, http.MethodPost, "/game/word", tok, `nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebugWords(t *testing.T) {
	s, _ := newTestServer(t)
	startGame(t, s)
	rec := do(t, s, http.MethodGet, "/debug/words", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"roots":1,"dictionary":6,"sessions":1}`, rec.Body.String())
}

func TestNotFoundRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/game/new", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Session-Token", rec.Header().Get("Access-Control-Expose-Headers"))
}
