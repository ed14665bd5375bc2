package socket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abel-getahun/minefield-api/game"
	"github.com/abel-getahun/minefield-api/message"
	"github.com/abel-getahun/minefield-api/service"
)

// requestTimeout bounds the persistence and locking work behind one inbound
// message.
const requestTimeout = 10 * time.Second

// Handler owns the lifetime of client connections: registration, the read
// loop, and dispatch into the coordinator.
type Handler struct {
	hub         *Hub
	coordinator *service.Coordinator
	logger      zerolog.Logger
}

// NewHandler wires a connection handler to the hub and coordinator.
func NewHandler(hub *Hub, coordinator *service.Coordinator, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		coordinator: coordinator,
		logger:      logger,
	}
}

// HandleConn serves one websocket connection until it closes. The client is
// assigned a socket ID, told about it, and registered for broadcasts; the
// loop then reads and dispatches envelopes.
func (h *Handler) HandleConn(conn wsConn) {
	client := &Client{id: uuid.NewString(), conn: conn}
	h.hub.register(client)
	defer h.hub.unregister(client.id)
	defer func() {
		_ = conn.Close()
	}()

	info, err := json.Marshal(message.NewSocketInfo(client.id))
	if err == nil {
		err = client.send(info)
	}
	if err != nil {
		h.logger.Warn().Err(err).Str("socket", client.id).Msg("sending socket info")
		return
	}

	h.logger.Info().Str("socket", client.id).Msg("client connected")
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			h.logger.Info().Str("socket", client.id).Msg("client disconnected")
			return
		}
		h.dispatch(client, raw)
	}
}

// dispatch decodes one inbound envelope and routes it to the matching
// lifecycle operation. Malformed frames and illegal moves are logged and
// dropped; they never terminate the connection.
func (h *Handler) dispatch(client *Client, raw []byte) {
	var env message.ClientEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Warn().Err(err).Str("socket", client.id).Msg("malformed envelope")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch env.Action {
	case message.ActionCreateGame:
		var req message.CreateGameRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.logger.Warn().Err(err).Str("socket", client.id).Msg("malformed createGame payload")
			return
		}
		if _, err := h.coordinator.CreateGame(ctx, h.participant(client, req.Client)); err != nil {
			h.logger.Error().Err(err).Str("socket", client.id).Msg("create game failed")
		}

	case message.ActionJoinGame:
		var req message.JoinGameRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.logger.Warn().Err(err).Str("socket", client.id).Msg("malformed joinGame payload")
			return
		}
		if err := h.coordinator.JoinGame(ctx, req.GameID, h.participant(client, req.Client)); err != nil {
			h.logger.Warn().Err(err).Str("socket", client.id).Str("game", req.GameID).Msg("join rejected")
		}

	case message.ActionMakeMove:
		var req message.MakeMoveRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.logger.Warn().Err(err).Str("socket", client.id).Msg("malformed makeMove payload")
			return
		}
		err := h.coordinator.MakeMove(ctx, req.GameID, h.participant(client, req.Client), req.Tile.Row, req.Tile.Column)
		var illegal *service.IllegalMoveError
		if errors.As(err, &illegal) {
			// Already logged with its reason by the coordinator; the other
			// participant must not hear about it.
			return
		}
		if err != nil {
			h.logger.Error().Err(err).Str("socket", client.id).Str("game", req.GameID).Msg("move failed")
		}

	default:
		h.logger.Warn().Str("socket", client.id).Str("action", string(env.Action)).Msg("unknown action")
	}
}

// participant builds the acting participant from the request's identifiers.
// The server-assigned connection ID wins over whatever socket ID the client
// echoed back.
func (h *Handler) participant(client *Client, info message.ClientInfo) game.Participant {
	return game.Participant{
		PrivateID: info.PrivateID,
		PublicID:  info.PublicID,
		SocketID:  client.id,
	}
}
