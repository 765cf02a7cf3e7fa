package mux

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"pokertable-server/pkg/model"
)

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := viewerID(r)
		rooms, err := m.store.GetRoomsByPlayerID(r.Context(), playerID)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		views := make([]*model.RoomView, len(rooms))
		for i, room := range rooms {
			views[i] = room.View(playerID)
		}

		writeJSON(w, http.StatusOK, views)
	}
}

type postRoomPayload struct {
	Name       string `json:"name"`
	BuyIn      int    `json:"buyIn"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		stakes := m.stakes
		if pp.BuyIn != 0 || pp.SmallBlind != 0 || pp.BigBlind != 0 {
			stakes = model.Stakes{BuyIn: pp.BuyIn, SmallBlind: pp.SmallBlind, BigBlind: pp.BigBlind}
		}

		playerID := viewerID(r)
		room, err := model.NewRoom(pp.Name, playerID, stakes, m.gen)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		if err := m.store.CreateRoom(r.Context(), room); err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, room.View(playerID))
	}
}

func (m *Mux) getRoomID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		room := r.Context().Value(ctxRoomKey).(*model.Room)
		writeJSON(w, http.StatusOK, room.View(viewerID(r)))
	})
}

func (m *Mux) postRoomIDSeat() http.Handler {
	return m.updateRoom(func(playerID string, room *model.Room) error {
		_, err := room.Table.Sit(playerID)
		return err
	})
}

func (m *Mux) postRoomIDLeave() http.Handler {
	return m.updateRoom(func(playerID string, room *model.Room) error {
		return room.Table.Leave(playerID)
	})
}

// updateRoom applies fn to a fresh copy of the room, saves it and pushes the new state to websocket clients
func (m *Mux) updateRoom(fn func(playerID string, room *model.Room) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := viewerID(r)
		room, err := model.Update(r.Context(), m.store, roomID(r), m.retries, func(room *model.Room) error {
			return fn(playerID, room)
		})

		if err != nil {
			writeRoomError(w, err)
			return
		}

		m.pitBoss.RoomChanged(room)
		writeJSON(w, http.StatusOK, room.View(playerID))
	}
}

func (m *Mux) deleteRoomID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := roomID(r)
		creatorID, err := m.store.GetRoomCreatorID(r.Context(), id)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		if creatorID != viewerID(r) {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		if err := m.store.DeleteRoom(r.Context(), id); err != nil {
			writeRoomError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		room, err := m.store.GetRoom(r.Context(), roomID(r))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxRoomKey, room)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func roomID(r *http.Request) string {
	return strings.ToLower(mux.Vars(r)["id"])
}
