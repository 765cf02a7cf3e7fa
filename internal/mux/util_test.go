package mux

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"pokertable-server/internal/config"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

func newTestServer(t *testing.T) (*httptest.Server, *model.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	return newTestServerWithConfig(t, config.DefaultConfig())
}

func newTestServerWithConfig(t *testing.T, cfg config.Config) (*httptest.Server, *model.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := model.NewRedisStore(rdb, "test")

	ts := httptest.NewServer(NewMux("v1.2.3", store, cfg))
	t.Cleanup(func() {
		ts.Close()
		_ = rdb.Close()
		mr.Close()
	})

	return ts, store, mr
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, playerID ...string) *http.Response {
	t.Helper()

	if len(playerID) > 0 {
		req.Header.Set(playerIDHeader, playerID[0])
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, playerID ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, playerID...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, playerID ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case nil:
		body = http.NoBody
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, playerID...)
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, statusCode int, playerID ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, nil, statusCode, playerID...)
}

func Test_writeRoomError(t *testing.T) {
	runTest := func(err error, statusCode int, message string) {
		t.Helper()
		w := httptest.NewRecorder()
		writeRoomError(w, err)
		assert.Equal(t, statusCode, w.Code)

		var res errorResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, errorResponse{Message: message, StatusCode: statusCode}, res)
	}

	runTest(model.ErrRoomNotFound, 404, "Not Found")
	runTest(holdem.ErrNoAvailableSeats, 400, "no available seats")
	runTest(model.ErrPlayerIDRequired, 400, "a player ID is required")
	runTest(model.ErrConflict, 409, "room was modified by another request")
	runTest(&model.RoomUnavailableError{ID: "x", Err: errors.New("bad")}, 503, "Service Unavailable")
	runTest(errors.New("boom"), 500, "Internal Server Error")
}

func Test_decodeRequest(t *testing.T) {
	a := assert.New(t)

	var payload postRoomPayload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "x"}`))
	w := httptest.NewRecorder()
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusUnsupportedMediaType, w.Code)

	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.True(decodeRequest(w, r, &payload))
	a.Equal("x", payload.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusBadRequest, w.Code)
}
