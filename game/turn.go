package game

import "errors"

var ErrNotJoined = errors.New("game has no second player yet")

// NextTurn returns the public ID of the participant who holds the next turn:
// the creator while the history is empty, afterwards whichever of the two
// players did not make the last move. Actors are compared by private ID since
// public IDs are not authoritative. Calling this before a second player has
// joined is a caller error.
func (g *Game) NextTurn() (string, error) {
	if g.Player2 == nil {
		return "", ErrNotJoined
	}

	if g.FirstMove() {
		return g.Creator.PublicID, nil
	}

	last := g.Moves[len(g.Moves)-1].Actor.PrivateID
	if last == g.Player1.PrivateID {
		return g.Player2.PublicID, nil
	}
	return g.Player1.PublicID, nil
}
