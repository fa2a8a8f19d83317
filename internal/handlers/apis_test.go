package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velotype/go-socket-typerace/internal/common/clock"
	"github.com/velotype/go-socket-typerace/internal/handlers"
	"github.com/velotype/go-socket-typerace/internal/manager"
	"github.com/velotype/go-socket-typerace/internal/texts"
)

func TestHandleCreateRoom(t *testing.T) {
	handlers.RoomManager = manager.NewRoomManager(10, texts.NewStatic(passage), &clock.DefaultClock{})

	req := httptest.NewRequest(http.MethodPost, "/api/create-room",
		strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	handlers.HandleCreateRoom(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Regexp(t, `^room_0x[0-9a-f]{8}$`, resp["room_id"])
	assert.Equal(t, "created", resp["status"])

	// Minting an id does not register a room.
	_, err := handlers.RoomManager.GetRoom(resp["room_id"])
	assert.Error(t, err)
}

func TestHandleCreateRoomRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/create-room", nil)
	rec := httptest.NewRecorder()
	handlers.HandleCreateRoom(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleCheckRoom(t *testing.T) {
	handlers.RoomManager = manager.NewRoomManager(10, texts.NewStatic(passage), &clock.DefaultClock{})

	check := func(roomID string) bool {
		req := httptest.NewRequest(http.MethodGet, "/api/check-room?room_id="+roomID, nil)
		rec := httptest.NewRecorder()
		handlers.HandleCheckRoom(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]bool
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp["exists"]
	}

	assert.False(t, check("nowhere"))

	handlers.RoomManager.GetOrCreateRoom("somewhere")
	assert.True(t, check("somewhere"))
}

func TestHandleCheckRoomRequiresID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/check-room", nil)
	rec := httptest.NewRecorder()
	handlers.HandleCheckRoom(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handlers.HandleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}
