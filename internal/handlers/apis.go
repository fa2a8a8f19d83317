package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/velotype/go-socket-typerace/internal/manager"
)

// HandleCreateRoom mints a fresh room id for the lobby. The room itself is
// registered when its first join-room arrives, so an id with no joiners
// costs nothing.
func HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var reqBody struct {
		Username string `json:"username"`
	}

	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	roomID := manager.GenerateRoomID()

	log.Printf("Room id %s minted for user: %s", roomID, reqBody.Username)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"room_id": roomID,
		"status":  "created",
	})
}

// HandleCheckRoom reports whether a room currently has participants.
func HandleCheckRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		http.Error(w, "Missing room_id", http.StatusBadRequest)
		return
	}

	_, err := RoomManager.GetRoom(roomID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"exists": err == nil,
	})
}

// HandleHealth is a liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}
