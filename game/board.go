/*
Package game holds the authoritative minefield engine and the rules of a
two-player match.

It defines the `Board` structure, composed of `Tile` values that carry mine
placement, reveal state, and adjacent-mine counts.

The package includes board construction, lazy randomized mine placement with a
first-click exclusion zone, adjacency counting, iterative flood-fill reveal,
and view sanitization for transmission to clients. Move legality checking and
turn resolution live alongside the board since they are pure functions over
the same state.
*/
package game

import (
	"errors"
	"math/rand"
)

// MineSentinel marks a mine tile's adjacency count, since a mine has no
// meaningful count of its own.
const MineSentinel = -1

var (
	ErrInvalidDimension     = errors.New("board dimensions must be positive")
	ErrInsufficientCapacity = errors.New("not enough tiles left for the requested mine count")
	ErrOutOfBounds          = errors.New("coordinates are outside the board")
)

// Tile represents one grid cell. AdjacentMines is meaningful only after mines
// have been placed; it is MineSentinel on mine tiles.
type Tile struct {
	Row           int  `json:"row" bson:"row"`
	Column        int  `json:"column" bson:"column"`
	IsMine        bool `json:"isMine" bson:"isMine"`
	IsRevealed    bool `json:"isRevealed" bson:"isRevealed"`
	AdjacentMines int  `json:"adjacentMines" bson:"adjacentMines"`
}

// Board is the authoritative rows x columns grid. It is never sanitized in
// place; Sanitize always returns a derived copy.
type Board struct {
	Rows    int      `json:"rows" bson:"rows"`
	Columns int      `json:"columns" bson:"columns"`
	Grid    [][]Tile `json:"grid" bson:"grid"`
}

// NewBoard builds a board where every tile is safe, unrevealed, and counts
// zero. Mines are placed later, on the first accepted move.
func NewBoard(rows, columns int) (Board, error) {
	if rows <= 0 || columns <= 0 {
		return Board{}, ErrInvalidDimension
	}

	grid := make([][]Tile, rows)
	for r := range grid {
		grid[r] = make([]Tile, columns)
		for c := range grid[r] {
			grid[r][c] = Tile{Row: r, Column: c}
		}
	}

	return Board{Rows: rows, Columns: columns, Grid: grid}, nil
}

// Clone returns a deep copy of the board. Mutations inside a move must never
// leak into copies handed out earlier.
func (b Board) Clone() Board {
	grid := make([][]Tile, b.Rows)
	for r := range grid {
		grid[r] = make([]Tile, b.Columns)
		copy(grid[r], b.Grid[r])
	}
	return Board{Rows: b.Rows, Columns: b.Columns, Grid: grid}
}

// InBound reports whether the coordinates name an existing tile.
func (b Board) InBound(row, column int) bool {
	return row >= 0 && row < b.Rows && column >= 0 && column < b.Columns
}

// PlaceMines scatters mineCount mines uniformly at random, never on the tile
// at (excludeRow, excludeColumn) or any of its 8 neighbors. Capacity is
// validated up front: the 3x3 exclusion zone must leave enough candidates,
// otherwise the retry loop could never terminate.
func (b *Board) PlaceMines(excludeRow, excludeColumn, mineCount int) error {
	if mineCount >= b.Rows*b.Columns-9 {
		return ErrInsufficientCapacity
	}

	placed := 0
	for placed < mineCount {
		row := rand.Intn(b.Rows)
		column := rand.Intn(b.Columns)

		// Retry on tiles that are already mines or inside the exclusion zone.
		if b.Grid[row][column].IsMine {
			continue
		}
		if abs(row-excludeRow) <= 1 && abs(column-excludeColumn) <= 1 {
			continue
		}

		b.Grid[row][column].IsMine = true
		placed++
	}

	return nil
}

// ComputeAdjacency fills in the adjacent-mine count of every non-mine tile.
// Neighbors beyond the grid edge simply do not exist and contribute nothing.
// Mine tiles are marked with MineSentinel.
func (b *Board) ComputeAdjacency() {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Columns; c++ {
			if b.Grid[r][c].IsMine {
				b.Grid[r][c].AdjacentMines = MineSentinel
				continue
			}

			count := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if b.InBound(r+dr, c+dc) && b.Grid[r+dr][c+dc].IsMine {
						count++
					}
				}
			}
			b.Grid[r][c].AdjacentMines = count
		}
	}
}

// Reveal uncovers the tile at (row, column) and, when its count is zero,
// expands through the connected zero-count region and its numbered frontier.
// The expansion uses an explicit stack so large boards cannot exhaust the
// call stack. A mine tile is revealed alone and never expanded through.
// Out-of-bounds and already-revealed targets are no-ops.
func (b *Board) Reveal(row, column int) {
	type position struct{ row, column int }

	stack := []position{{row, column}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !b.InBound(p.row, p.column) {
			continue
		}

		tile := &b.Grid[p.row][p.column]
		if tile.IsRevealed {
			continue
		}
		if tile.IsMine {
			// Only the tile the player actually clicked is uncovered.
			if p.row == row && p.column == column {
				tile.IsRevealed = true
			}
			continue
		}

		tile.IsRevealed = true
		if tile.AdjacentMines != 0 {
			continue
		}

		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				stack = append(stack, position{p.row + dr, p.column + dc})
			}
		}
	}
}

// RevealMines uncovers every mine tile. Used for the end-of-game reveal.
func (b *Board) RevealMines() {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Columns; c++ {
			if b.Grid[r][c].IsMine {
				b.Grid[r][c].IsRevealed = true
			}
		}
	}
}

// Sanitize returns a copy of the board with all information about unrevealed
// tiles erased. Revealed tiles pass through unchanged. The receiver is never
// mutated, and sanitizing an already-sanitized board is a no-op.
func (b Board) Sanitize() Board {
	sanitized := b.Clone()
	for r := range sanitized.Grid {
		for c := range sanitized.Grid[r] {
			if !sanitized.Grid[r][c].IsRevealed {
				sanitized.Grid[r][c].IsMine = false
				sanitized.Grid[r][c].AdjacentMines = 0
			}
		}
	}
	return sanitized
}

// SafeTilesRemaining counts tiles that are neither mines nor revealed.
// Zero means every safe tile has been cleared and the game is won.
func (b Board) SafeTilesRemaining() int {
	remaining := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Columns; c++ {
			tile := b.Grid[r][c]
			if !tile.IsMine && !tile.IsRevealed {
				remaining++
			}
		}
	}
	return remaining
}

// IsMineAt reports whether the tile at (row, column) is a mine. Invalid
// coordinates are an error, never clamped.
func (b Board) IsMineAt(row, column int) (bool, error) {
	if !b.InBound(row, column) {
		return false, ErrOutOfBounds
	}
	return b.Grid[row][column].IsMine, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
