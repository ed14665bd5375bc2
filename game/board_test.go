package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardWithMines builds a board with mines at fixed coordinates and counts
// already computed.
func boardWithMines(t *testing.T, rows, columns int, mines [][2]int) Board {
	t.Helper()
	b, err := NewBoard(rows, columns)
	require.NoError(t, err)
	for _, m := range mines {
		b.Grid[m[0]][m[1]].IsMine = true
	}
	b.ComputeAdjacency()
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("every tile starts safe and hidden", func(t *testing.T) {
		b, err := NewBoard(10, 15)
		require.NoError(t, err)

		assert.Equal(t, 10, b.Rows)
		assert.Equal(t, 15, b.Columns)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				tile := b.Grid[r][c]
				assert.Equal(t, r, tile.Row)
				assert.Equal(t, c, tile.Column)
				assert.False(t, tile.IsMine)
				assert.False(t, tile.IsRevealed)
				assert.Zero(t, tile.AdjacentMines)
			}
		}
	})

	t.Run("non-positive dimensions are rejected", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -1}} {
			_, err := NewBoard(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension)
		}
	})
}

func TestPlaceMines(t *testing.T) {
	t.Run("places the exact count outside the exclusion zone", func(t *testing.T) {
		// Placement is random, so exercise it repeatedly.
		for trial := 0; trial < 25; trial++ {
			b, err := NewBoard(10, 15)
			require.NoError(t, err)
			require.NoError(t, b.PlaceMines(5, 5, 27))

			mines := 0
			for r := 0; r < b.Rows; r++ {
				for c := 0; c < b.Columns; c++ {
					if b.Grid[r][c].IsMine {
						mines++
						assert.False(t, abs(r-5) <= 1 && abs(c-5) <= 1,
							"mine at (%d,%d) inside the exclusion zone", r, c)
					}
				}
			}
			assert.Equal(t, 27, mines)
		}
	})

	t.Run("1x1 board cannot hold a mine", func(t *testing.T) {
		b, err := NewBoard(1, 1)
		require.NoError(t, err)
		assert.ErrorIs(t, b.PlaceMines(0, 0, 1), ErrInsufficientCapacity)
	})

	t.Run("capacity is validated before any placement", func(t *testing.T) {
		b, err := NewBoard(4, 4)
		require.NoError(t, err)

		// 16 tiles minus the exclusion zone leaves fewer than 7 candidates.
		assert.ErrorIs(t, b.PlaceMines(1, 1, 7), ErrInsufficientCapacity)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				assert.False(t, b.Grid[r][c].IsMine)
			}
		}
	})
}

func TestComputeAdjacency(t *testing.T) {
	t.Run("counts in-bounds mine neighbors", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{0, 0}, {2, 2}})

		assert.Equal(t, MineSentinel, b.Grid[0][0].AdjacentMines)
		assert.Equal(t, MineSentinel, b.Grid[2][2].AdjacentMines)
		assert.Equal(t, 1, b.Grid[0][1].AdjacentMines)
		assert.Equal(t, 1, b.Grid[1][0].AdjacentMines)
		assert.Equal(t, 2, b.Grid[1][1].AdjacentMines)
		assert.Equal(t, 0, b.Grid[0][2].AdjacentMines)
		assert.Equal(t, 0, b.Grid[2][0].AdjacentMines)
		assert.Equal(t, 1, b.Grid[1][2].AdjacentMines)
		assert.Equal(t, 1, b.Grid[2][1].AdjacentMines)
	})

	t.Run("matches a brute-force recount on a random board", func(t *testing.T) {
		b, err := NewBoard(8, 8)
		require.NoError(t, err)
		require.NoError(t, b.PlaceMines(3, 3, 12))
		b.ComputeAdjacency()

		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				if b.Grid[r][c].IsMine {
					assert.Equal(t, MineSentinel, b.Grid[r][c].AdjacentMines)
					continue
				}
				want := 0
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						if dr == 0 && dc == 0 {
							continue
						}
						if b.InBound(r+dr, c+dc) && b.Grid[r+dr][c+dc].IsMine {
							want++
						}
					}
				}
				assert.Equal(t, want, b.Grid[r][c].AdjacentMines, "tile (%d,%d)", r, c)
			}
		}
	})
}

func TestReveal(t *testing.T) {
	t.Run("all-zero board opens completely in one call", func(t *testing.T) {
		b, err := NewBoard(5, 5)
		require.NoError(t, err)
		b.ComputeAdjacency()

		b.Reveal(2, 2)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				assert.True(t, b.Grid[r][c].IsRevealed, "tile (%d,%d)", r, c)
			}
		}
	})

	t.Run("revealing an open region again changes nothing", func(t *testing.T) {
		b, err := NewBoard(5, 5)
		require.NoError(t, err)
		b.ComputeAdjacency()

		b.Reveal(2, 2)
		snapshot := b.Clone()
		b.Reveal(2, 2)
		assert.Equal(t, snapshot, b.Clone())
	})

	t.Run("expansion stops at the numbered frontier", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})

		b.Reveal(2, 2)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				if r == 0 && c == 0 {
					assert.False(t, b.Grid[r][c].IsRevealed, "mine must stay hidden")
					continue
				}
				assert.True(t, b.Grid[r][c].IsRevealed, "tile (%d,%d)", r, c)
			}
		}
	})

	t.Run("a mine is revealed alone", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{1, 1}})

		b.Reveal(1, 1)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				assert.Equal(t, r == 1 && c == 1, b.Grid[r][c].IsRevealed, "tile (%d,%d)", r, c)
			}
		}
	})

	t.Run("out-of-bounds target is a no-op", func(t *testing.T) {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)
		b.ComputeAdjacency()

		b.Reveal(-1, 0)
		b.Reveal(0, 9)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Columns; c++ {
				assert.False(t, b.Grid[r][c].IsRevealed)
			}
		}
	})
}

func TestSanitize(t *testing.T) {
	t.Run("erases everything about hidden tiles", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})
		b.Reveal(2, 2)

		s := b.Sanitize()
		for r := 0; r < s.Rows; r++ {
			for c := 0; c < s.Columns; c++ {
				tile := s.Grid[r][c]
				if !tile.IsRevealed {
					assert.False(t, tile.IsMine, "tile (%d,%d)", r, c)
					assert.Zero(t, tile.AdjacentMines, "tile (%d,%d)", r, c)
				} else {
					assert.Equal(t, b.Grid[r][c], tile)
				}
			}
		}
	})

	t.Run("never mutates the input", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})
		snapshot := b.Clone()
		_ = b.Sanitize()
		assert.Equal(t, snapshot, b.Clone())
	})

	t.Run("idempotent", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})
		b.Reveal(2, 2)

		once := b.Sanitize()
		twice := once.Sanitize()
		assert.Equal(t, once, twice)
	})

	t.Run("a revealed mine keeps its marker", func(t *testing.T) {
		b := boardWithMines(t, 3, 3, [][2]int{{1, 1}})
		b.RevealMines()

		s := b.Sanitize()
		assert.True(t, s.Grid[1][1].IsMine)
		assert.Equal(t, MineSentinel, s.Grid[1][1].AdjacentMines)
	})
}

func TestSafeTilesRemaining(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})
	assert.Equal(t, 8, b.SafeTilesRemaining())

	b.Reveal(2, 2)
	assert.Equal(t, 0, b.SafeTilesRemaining(), "flood fill cleared every safe tile")
}

func TestIsMineAt(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{1, 1}})

	mine, err := b.IsMineAt(1, 1)
	require.NoError(t, err)
	assert.True(t, mine)

	mine, err = b.IsMineAt(0, 0)
	require.NoError(t, err)
	assert.False(t, mine)

	_, err = b.IsMineAt(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = b.IsMineAt(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestClone(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})

	clone := b.Clone()
	clone.Grid[2][2].IsRevealed = true
	clone.Grid[0][0].IsMine = false

	assert.False(t, b.Grid[2][2].IsRevealed)
	assert.True(t, b.Grid[0][0].IsMine)
}

func TestRevealMines(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{0, 0}, {2, 2}})

	b.RevealMines()
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Columns; c++ {
			tile := b.Grid[r][c]
			assert.Equal(t, tile.IsMine, tile.IsRevealed, "tile (%d,%d)", r, c)
		}
	}
}
