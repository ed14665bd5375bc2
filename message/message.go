// Package message defines the wire protocol between clients and the server:
// inbound action envelopes with their request payloads, and outbound
// envelopes tagged by kind, one typed payload shape per kind.
package message

import "encoding/json"

// Action names a client-initiated request.
type Action string

const (
	ActionCreateGame Action = "createGame"
	ActionJoinGame   Action = "joinGame"
	ActionMakeMove   Action = "makeMove"
)

// Kind tags an outbound envelope. Terminal kinds are distinct from ordinary
// move updates so clients never have to infer the end of a game.
type Kind string

const (
	KindSocketInfo  Kind = "socketInfo"
	KindGameCreated Kind = "gameCreated"
	KindGameStarted Kind = "gameStarted"
	KindMoveMade    Kind = "moveMade"
	KindGameWon     Kind = "gameWon"
	KindGameLost    Kind = "gameLost"
)

// ClientEnvelope is the raw inbound frame. Data stays opaque until the action
// is known.
type ClientEnvelope struct {
	Action Action          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// ClientInfo carries the identifiers a participant presents with every
// request.
type ClientInfo struct {
	PrivateID string `json:"privateId"`
	PublicID  string `json:"publicId"`
	SocketID  string `json:"socketId"`
}

// TileRef addresses one tile in a move request.
type TileRef struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// CreateGameRequest is the payload of ActionCreateGame.
type CreateGameRequest struct {
	Client ClientInfo `json:"client"`
}

// JoinGameRequest is the payload of ActionJoinGame.
type JoinGameRequest struct {
	GameID string     `json:"gameId"`
	Client ClientInfo `json:"client"`
}

// MakeMoveRequest is the payload of ActionMakeMove.
type MakeMoveRequest struct {
	GameID string     `json:"gameId"`
	Client ClientInfo `json:"client"`
	Tile   TileRef    `json:"tile"`
}

// Payload is implemented by every outbound payload shape. The marker keeps
// envelopes a closed set: an Envelope can only be built through the
// constructors below, so kind and payload shape cannot drift apart.
type Payload interface {
	payload()
}

// Envelope is one outbound frame.
type Envelope struct {
	Kind Kind    `json:"kind"`
	Data Payload `json:"data"`
}

// SocketInfo tells a freshly connected client its transport address.
type SocketInfo struct {
	SocketID string `json:"socketId"`
}

func (SocketInfo) payload() {}

// GameCreated hands the creator the shareable game code.
type GameCreated struct {
	GameID string `json:"gameId"`
}

func (GameCreated) payload() {}

// GameUpdate carries a sanitized view of the game. CurrentTurn is empty on
// terminal updates, where no further move is expected.
type GameUpdate struct {
	Game GameView `json:"game"`
}

func (GameUpdate) payload() {}

// NewSocketInfo builds a socketInfo envelope.
func NewSocketInfo(socketID string) Envelope {
	return Envelope{Kind: KindSocketInfo, Data: SocketInfo{SocketID: socketID}}
}

// NewGameCreated builds a gameCreated envelope.
func NewGameCreated(gameID string) Envelope {
	return Envelope{Kind: KindGameCreated, Data: GameCreated{GameID: gameID}}
}

// NewGameStarted builds a gameStarted envelope.
func NewGameStarted(view GameView) Envelope {
	return Envelope{Kind: KindGameStarted, Data: GameUpdate{Game: view}}
}

// NewMoveMade builds a moveMade envelope.
func NewMoveMade(view GameView) Envelope {
	return Envelope{Kind: KindMoveMade, Data: GameUpdate{Game: view}}
}

// NewGameWon builds a terminal gameWon envelope.
func NewGameWon(view GameView) Envelope {
	return Envelope{Kind: KindGameWon, Data: GameUpdate{Game: view}}
}

// NewGameLost builds a terminal gameLost envelope.
func NewGameLost(view GameView) Envelope {
	return Envelope{Kind: KindGameLost, Data: GameUpdate{Game: view}}
}
