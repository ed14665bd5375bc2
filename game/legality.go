package game

// IllegalReason names why a proposed move was rejected.
type IllegalReason string

const (
	ReasonNoSuchGame      IllegalReason = "NO_SUCH_GAME"
	ReasonGameOver        IllegalReason = "GAME_OVER"
	ReasonGameNotStarted  IllegalReason = "GAME_NOT_STARTED"
	ReasonNotYourTurn     IllegalReason = "NOT_YOUR_TURN"
	ReasonOutOfBounds     IllegalReason = "OUT_OF_BOUNDS"
	ReasonAlreadyRevealed IllegalReason = "ALREADY_REVEALED"
)

// Legality is the outcome of checking a proposed move.
type Legality struct {
	Legal  bool
	Reason IllegalReason
}

func illegal(reason IllegalReason) Legality {
	return Legality{Reason: reason}
}

// CheckLegality decides whether the acting participant may reveal the tile at
// (row, column). It has no side effects and is safe to call speculatively;
// only a legal result permits the coordinator to mutate the board.
//
// Reasons are evaluated in a fixed precedence order, first match wins:
// missing game, finished game, game not yet started, wrong turn,
// out-of-bounds target, already-revealed target. Won and Lost are terminal:
// no move is ever legal on a finished game.
func CheckLegality(g *Game, row, column int, actorPrivateID string) Legality {
	if g == nil {
		return illegal(ReasonNoSuchGame)
	}

	if g.Status.Terminal() {
		return illegal(ReasonGameOver)
	}
	if g.Status == StatusWaitingForPlayer {
		return illegal(ReasonGameNotStarted)
	}

	if g.FirstMove() {
		// The creator opens the game.
		if actorPrivateID != g.Creator.PrivateID {
			return illegal(ReasonNotYourTurn)
		}
	} else if actorPrivateID == g.Moves[len(g.Moves)-1].Actor.PrivateID {
		return illegal(ReasonNotYourTurn)
	}

	if !g.Board.InBound(row, column) {
		return illegal(ReasonOutOfBounds)
	}

	if g.Board.Grid[row][column].IsRevealed {
		return illegal(ReasonAlreadyRevealed)
	}

	return Legality{Legal: true}
}
