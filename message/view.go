package message

import "github.com/abel-getahun/minefield-api/game"

// TileView is the client-facing shape of one tile. IsMine and AdjacentMines
// are pointers so that hidden tiles omit them from the wire entirely instead
// of leaking a zero value.
type TileView struct {
	Row           int   `json:"row"`
	Column        int   `json:"column"`
	IsRevealed    bool  `json:"isRevealed"`
	IsMine        *bool `json:"isMine,omitempty"`
	AdjacentMines *int  `json:"adjacentMines,omitempty"`
}

// GameView is the broadcast-ready projection of a game: a sanitized board,
// whose turn is next, and the lifecycle status.
type GameView struct {
	ID          string       `json:"id"`
	Board       [][]TileView `json:"board"`
	CurrentTurn string       `json:"currentTurn,omitempty"`
	Status      string       `json:"status"`
}

// ViewFromBoard projects a board into tile views. The caller is expected to
// pass a sanitized board; revealed tiles keep their mine flag and count,
// hidden tiles carry coordinates and reveal state only.
func ViewFromBoard(b game.Board) [][]TileView {
	view := make([][]TileView, b.Rows)
	for r := range view {
		view[r] = make([]TileView, b.Columns)
		for c := range view[r] {
			tile := b.Grid[r][c]
			tv := TileView{Row: tile.Row, Column: tile.Column, IsRevealed: tile.IsRevealed}
			if tile.IsRevealed {
				isMine := tile.IsMine
				adjacent := tile.AdjacentMines
				tv.IsMine = &isMine
				tv.AdjacentMines = &adjacent
			}
			view[r][c] = tv
		}
	}
	return view
}
