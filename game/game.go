package game

// Status is the lifecycle state of a game.
type Status string

const (
	StatusWaitingForPlayer Status = "WAITING_FOR_PLAYER"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusWon              Status = "WON"
	StatusLost             Status = "LOST"
)

// Terminal reports whether the status ends the game.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Participant identifies one player. The private ID authorizes moves and is
// never broadcast; the public ID labels turn order for everyone; the socket
// ID is the transport address. All three are fixed at join time.
type Participant struct {
	PrivateID string `json:"privateId" bson:"privateId"`
	PublicID  string `json:"publicId" bson:"publicId"`
	SocketID  string `json:"socketId" bson:"socketId"`
}

// Move is an immutable record of one accepted move. Moves are only ever
// appended to a game's history.
type Move struct {
	Row    int         `json:"row" bson:"row"`
	Column int         `json:"column" bson:"column"`
	Actor  Participant `json:"actor" bson:"actor"`
}

// Game is the aggregate root. The board, participants, and move history are
// reachable only through it, and only the lifecycle coordinator persists
// mutations. Version counts successful saves and backs the stores'
// conditional writes.
type Game struct {
	ID      string       `json:"id" bson:"_id"`
	Board   Board        `json:"board" bson:"board"`
	Started bool         `json:"started" bson:"started"`
	Status  Status       `json:"status" bson:"status"`
	Creator Participant  `json:"creator" bson:"creator"`
	Player1 Participant  `json:"player1" bson:"player1"`
	Player2 *Participant `json:"player2,omitempty" bson:"player2,omitempty"`
	Moves   []Move       `json:"moves" bson:"moves"`
	Version int64        `json:"version" bson:"version"`
}

// Full reports whether a second player has already joined.
func (g *Game) Full() bool {
	return g.Player2 != nil
}

// FirstMove reports whether no move has been accepted yet, which is the
// moment mines get placed.
func (g *Game) FirstMove() bool {
	return len(g.Moves) == 0
}

// Addresses returns the transport addresses of everyone in the game.
func (g *Game) Addresses() []string {
	addrs := []string{g.Player1.SocketID}
	if g.Player2 != nil {
		addrs = append(addrs, g.Player2.SocketID)
	}
	return addrs
}
