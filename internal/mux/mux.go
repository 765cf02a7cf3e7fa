package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"pokertable-server/internal/config"
	"pokertable-server/internal/rng"
	"pokertable-server/pkg/model"
	"pokertable-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerIDKey ctxKey = iota
	ctxRoomKey
)

// playerIDHeader identifies the viewer
// Authentication happens in front of this service, which only needs a stable ID
const playerIDHeader = "X-Player-ID"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	store   model.Store
	pitBoss *room.PitBoss
	retries int
	stakes  model.Stakes
	gen     rng.Generator

	// store for testing purposes
	playerRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, store model.Store, cfg config.Config) *Mux {
	pitBoss := room.NewPitBoss(store, cfg.SaveRetries)
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		store:   store,
		pitBoss: pitBoss,
		retries: cfg.SaveRetries,
		stakes: model.Stakes{
			BuyIn:      cfg.Table.BuyIn,
			SmallBlind: cfg.Table.SmallBlind,
			BigBlind:   cfg.Table.BigBlind,
		},
		gen: rng.Crypto{},
	}

	if cfg.Table.DeckSeed != 0 {
		logrus.WithField("seed", cfg.Table.DeckSeed).Warn("decks are shuffled with a fixed seed")
		this.gen = rng.NewSeeded(cfg.Table.DeckSeed)
	}

	this.Router.Use(this.viewerMiddleware)

	const roomPath = "/room/{id:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}"

	// spectators allowed
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

		rr := r.PathPrefix(roomPath).Subrouter()
		rr.Use(this.roomMiddleware)

		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomID())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomIDWS())
	}

	this.playerRouter = this.Router.NewRoute().Subrouter()
	this.playerRouter.Use(this.playerMiddleware)

	// requires a player ID
	{
		r := this.playerRouter
		r.Methods(http.MethodGet).Path("/room").Handler(this.getRoom())
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
		r.Methods(http.MethodPost).Path(roomPath + "/seat").Handler(this.postRoomIDSeat())
		r.Methods(http.MethodPost).Path(roomPath + "/leave").Handler(this.postRoomIDLeave())
		r.Methods(http.MethodDelete).Path(roomPath).Handler(this.deleteRoomID())
	}

	return this
}

// viewerMiddleware reads the optional viewer ID into the context
func (m *Mux) viewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Header.Get(playerIDHeader)
		if playerID == "" {
			playerID = r.FormValue("player_id")
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// playerMiddleware requires viewerMiddleware to execute first
func (m *Mux) playerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := viewerID(r)
		if playerID == "" {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		w.Header().Set("PokerTable-PlayerID", playerID)
		next.ServeHTTP(w, r)
	})
}

// viewerID returns the player viewing the request, empty for spectators
func viewerID(r *http.Request) string {
	playerID, _ := r.Context().Value(ctxPlayerIDKey).(string)
	return playerID
}
