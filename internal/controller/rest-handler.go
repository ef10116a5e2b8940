package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sharetube/relay/internal/service/room"
	"github.com/sharetube/relay/pkg/rest"
)

func (c controller) getRoomStatus(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	status, err := c.roomService.GetRoomStatus(r.Context(), roomId)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		case errors.Is(err, room.ErrInvalidRoomId):
			rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
		default:
			c.logger.ErrorContext(r.Context(), "failed to get room status", "error", err)
			rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal server error"})
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": status})
}
