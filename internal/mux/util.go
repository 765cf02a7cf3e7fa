package mux

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeRoomError picks the status code for an error returned while loading or changing a room
func writeRoomError(w http.ResponseWriter, err error) {
	var holdemErr holdem.UserError
	var modelErr model.UserError
	var unavailable *model.RoomUnavailableError

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		writeJSONError(w, http.StatusNotFound, nil)
	case errors.As(err, &holdemErr), errors.As(err, &modelErr):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, model.ErrConflict):
		writeJSONError(w, http.StatusConflict, err)
	case errors.As(err, &unavailable):
		logrus.WithError(err).WithField("roomID", unavailable.ID).Error("room is unavailable")
		writeJSONError(w, http.StatusServiceUnavailable, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
