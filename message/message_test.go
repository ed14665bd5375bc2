package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abel-getahun/minefield-api/game"
)

func TestEnvelopeEncoding(t *testing.T) {
	t.Run("kind and payload stay together on the wire", func(t *testing.T) {
		raw, err := json.Marshal(NewGameCreated("GAME01"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"gameCreated","data":{"gameId":"GAME01"}}`, string(raw))

		raw, err = json.Marshal(NewSocketInfo("sock-a"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"socketInfo","data":{"socketId":"sock-a"}}`, string(raw))
	})

	t.Run("hidden tiles omit mine and count fields entirely", func(t *testing.T) {
		b, err := game.NewBoard(2, 2)
		require.NoError(t, err)
		b.Grid[0][0].IsMine = true
		b.ComputeAdjacency()
		b.Grid[1][1].IsRevealed = true

		view := GameView{ID: "GAME01", Board: ViewFromBoard(b.Sanitize()), CurrentTurn: "alice-pub", Status: "IN_PROGRESS"}
		raw, err := json.Marshal(NewMoveMade(view))
		require.NoError(t, err)

		var decoded struct {
			Kind string `json:"kind"`
			Data struct {
				Game struct {
					Board [][]map[string]any `json:"board"`
				} `json:"game"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, "moveMade", decoded.Kind)

		hidden := decoded.Data.Game.Board[0][0]
		assert.NotContains(t, hidden, "isMine")
		assert.NotContains(t, hidden, "adjacentMines")

		revealed := decoded.Data.Game.Board[1][1]
		assert.Equal(t, false, revealed["isMine"])
		assert.Equal(t, float64(1), revealed["adjacentMines"])
	})

	t.Run("terminal views carry no current turn", func(t *testing.T) {
		view := GameView{ID: "GAME01", Status: "WON"}
		raw, err := json.Marshal(NewGameWon(view))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "currentTurn")
	})
}

func TestViewFromBoard(t *testing.T) {
	b, err := game.NewBoard(3, 3)
	require.NoError(t, err)
	b.Grid[0][0].IsMine = true
	b.ComputeAdjacency()
	b.Reveal(2, 2)

	view := ViewFromBoard(b.Sanitize())
	require.Len(t, view, 3)
	for r := range view {
		require.Len(t, view[r], 3)
		for c, tile := range view[r] {
			assert.Equal(t, r, tile.Row)
			assert.Equal(t, c, tile.Column)
			if tile.IsRevealed {
				require.NotNil(t, tile.IsMine)
				require.NotNil(t, tile.AdjacentMines)
			} else {
				assert.Nil(t, tile.IsMine)
				assert.Nil(t, tile.AdjacentMines)
			}
		}
	}

	assert.False(t, view[0][0].IsRevealed, "the mine stays hidden")
	require.NotNil(t, view[1][1].AdjacentMines)
	assert.Equal(t, 1, *view[1][1].AdjacentMines)
}

func TestClientEnvelopeDecoding(t *testing.T) {
	raw := []byte(`{
		"action": "makeMove",
		"data": {
			"gameId": "GAME01",
			"client": {"privateId": "p", "publicId": "q", "socketId": "s"},
			"tile": {"row": 3, "column": 7}
		}
	}`)

	var env ClientEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, ActionMakeMove, env.Action)

	var req MakeMoveRequest
	require.NoError(t, json.Unmarshal(env.Data, &req))
	assert.Equal(t, "GAME01", req.GameID)
	assert.Equal(t, ClientInfo{PrivateID: "p", PublicID: "q", SocketID: "s"}, req.Client)
	assert.Equal(t, TileRef{Row: 3, Column: 7}, req.Tile)
}
