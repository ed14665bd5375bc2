// Package service orchestrates the game lifecycle: creating games, joining
// them, and applying moves. It owns the only code path allowed to persist
// game mutations and produces every outbound notification.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abel-getahun/minefield-api/game"
	"github.com/abel-getahun/minefield-api/message"
	"github.com/abel-getahun/minefield-api/service/i"
)

const (
	// maxCodeAttempts bounds the uniqueness negotiation for game codes.
	maxCodeAttempts = 5

	// maxMutateRetries bounds retries of a mutation that lost a version race.
	maxMutateRetries = 3
)

var (
	ErrNoSuchGame         = errors.New("game does not exist")
	ErrGameFull           = errors.New("game already has two players")
	ErrAlreadyInGame      = errors.New("participant cannot join their own game")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique game code")
)

// IllegalMoveError reports a rejected move with its structured reason. The
// rejection never mutates state and is never surfaced to the other
// participant.
type IllegalMoveError struct {
	Reason game.IllegalReason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s", e.Reason)
}

// BoardConfig fixes the shape of every board the coordinator creates.
type BoardConfig struct {
	Rows        int
	Columns     int
	MinePercent int
}

// MineCount derives how many mines the first move places.
func (c BoardConfig) MineCount() int {
	return c.Rows * c.Columns * c.MinePercent / 100
}

// Coordinator runs the create/join/move flows against the persistence,
// locking, and transport collaborators.
type Coordinator struct {
	repo     i.GameRepo
	locker   i.GameLocker
	notifier i.Notifier
	codes    i.CodeGenerator
	board    BoardConfig
	logger   zerolog.Logger
}

// Config holds the collaborators and board shape for a new Coordinator.
type Config struct {
	Repo     i.GameRepo
	Locker   i.GameLocker
	Notifier i.Notifier
	Codes    i.CodeGenerator
	Board    BoardConfig
	Logger   zerolog.Logger
}

// NewCoordinator validates the board configuration and wires a Coordinator.
// A board that cannot hold its own mine count plus the first-click exclusion
// zone is a configuration error, caught here rather than on the first move.
func NewCoordinator(c *Config) (*Coordinator, error) {
	if c.Board.Rows <= 0 || c.Board.Columns <= 0 {
		return nil, game.ErrInvalidDimension
	}
	if c.Board.MineCount() >= c.Board.Rows*c.Board.Columns-9 {
		return nil, game.ErrInsufficientCapacity
	}

	return &Coordinator{
		repo:     c.Repo,
		locker:   c.Locker,
		notifier: c.Notifier,
		codes:    c.Codes,
		board:    c.Board,
		logger:   c.Logger,
	}, nil
}

// CreateGame mints a collision-free game code, stores a fresh mine-free game
// waiting for a second player, and tells the creator the code. Uniqueness is
// negotiated at the storage boundary: collisions are expected and retried,
// never assumed away.
func (c *Coordinator) CreateGame(ctx context.Context, client game.Participant) (string, error) {
	var gameID string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := c.codes.NewCode()
		if err != nil {
			return "", fmt.Errorf("generating game code: %w", err)
		}

		exists, err := c.repo.Exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			gameID = code
			break
		}
		c.logger.Debug().Str("code", code).Msg("game code collision, regenerating")
	}
	if gameID == "" {
		return "", ErrCodeSpaceExhausted
	}

	board, err := game.NewBoard(c.board.Rows, c.board.Columns)
	if err != nil {
		return "", err
	}

	g := &game.Game{
		ID:      gameID,
		Board:   board,
		Status:  game.StatusWaitingForPlayer,
		Creator: client,
		Player1: client,
		Moves:   []game.Move{},
	}
	if err := c.repo.Save(ctx, g); err != nil {
		return "", err
	}

	c.logger.Info().Str("game", gameID).Str("creator", client.PublicID).Msg("game created")
	c.deliver(ctx, []string{client.SocketID}, message.NewGameCreated(gameID))
	return gameID, nil
}

// JoinGame attaches the second participant and starts the game. Joining a
// missing game, a full game, or one's own game are explicit rejections with
// nothing persisted or broadcast.
func (c *Coordinator) JoinGame(ctx context.Context, gameID string, client game.Participant) error {
	unlock, err := c.locker.Lock(ctx, gameID)
	if err != nil {
		return fmt.Errorf("locking game %s: %w", gameID, err)
	}
	defer c.release(gameID, unlock)

	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		g, err := c.repo.Load(ctx, gameID)
		if errors.Is(err, i.ErrNotFound) {
			return ErrNoSuchGame
		}
		if err != nil {
			return err
		}

		if g.Full() {
			return ErrGameFull
		}
		if client.PrivateID == g.Creator.PrivateID {
			return ErrAlreadyInGame
		}

		player2 := client
		g.Player2 = &player2
		g.Started = true
		g.Status = game.StatusInProgress

		if err := c.repo.Save(ctx, g); err != nil {
			if errors.Is(err, i.ErrConcurrentModification) {
				continue
			}
			return err
		}

		c.logger.Info().Str("game", gameID).Str("player2", client.PublicID).Msg("game started")
		c.deliver(ctx, g.Addresses(), message.NewGameStarted(c.viewOf(g)))
		return nil
	}

	return i.ErrConcurrentModification
}

// MakeMove applies one move under the per-game lock. An illegal move aborts
// with its reason and changes nothing. A legal first move places the mines,
// excluding the clicked neighborhood, so the first click can never hit one.
// The updated record is persisted before anything is broadcast.
func (c *Coordinator) MakeMove(ctx context.Context, gameID string, client game.Participant, row, column int) error {
	unlock, err := c.locker.Lock(ctx, gameID)
	if err != nil {
		return fmt.Errorf("locking game %s: %w", gameID, err)
	}
	defer c.release(gameID, unlock)

	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		g, err := c.repo.Load(ctx, gameID)
		if err != nil && !errors.Is(err, i.ErrNotFound) {
			return err
		}

		// A missing record flows into the legality check as a nil game.
		if legality := game.CheckLegality(g, row, column, client.PrivateID); !legality.Legal {
			c.logger.Info().
				Str("game", gameID).
				Str("actor", client.PublicID).
				Str("reason", string(legality.Reason)).
				Msg("illegal move rejected")
			return &IllegalMoveError{Reason: legality.Reason}
		}

		if g.FirstMove() {
			if err := g.Board.PlaceMines(row, column, c.board.MineCount()); err != nil {
				return err
			}
			g.Board.ComputeAdjacency()
		}

		mine, err := g.Board.IsMineAt(row, column)
		if err != nil {
			return err
		}

		if mine {
			// Hitting a mine ends the game immediately; the full mine layout
			// is revealed to both participants.
			g.Board.Reveal(row, column)
			g.Board.RevealMines()
			g.Status = game.StatusLost
		} else {
			g.Board.Reveal(row, column)
			if g.Board.SafeTilesRemaining() == 0 {
				g.Status = game.StatusWon
			}
		}

		g.Moves = append(g.Moves, game.Move{Row: row, Column: column, Actor: client})

		if err := c.repo.Save(ctx, g); err != nil {
			if errors.Is(err, i.ErrConcurrentModification) {
				continue
			}
			return err
		}

		view := c.viewOf(g)
		var env message.Envelope
		switch g.Status {
		case game.StatusWon:
			env = message.NewGameWon(view)
		case game.StatusLost:
			env = message.NewGameLost(view)
		default:
			env = message.NewMoveMade(view)
		}

		c.logger.Info().
			Str("game", gameID).
			Str("actor", client.PublicID).
			Int("row", row).
			Int("column", column).
			Str("status", string(g.Status)).
			Msg("move applied")
		c.deliver(ctx, g.Addresses(), env)
		return nil
	}

	return i.ErrConcurrentModification
}

// viewOf projects a game into its broadcast-ready sanitized view. Terminal
// games carry no next turn.
func (c *Coordinator) viewOf(g *game.Game) message.GameView {
	view := message.GameView{
		ID:     g.ID,
		Board:  message.ViewFromBoard(g.Board.Sanitize()),
		Status: string(g.Status),
	}
	if !g.Status.Terminal() {
		if turn, err := g.NextTurn(); err == nil {
			view.CurrentTurn = turn
		}
	}
	return view
}

// deliver broadcasts an envelope and logs the batch outcome. The game state
// is already persisted at this point, so delivery failure does not undo it.
func (c *Coordinator) deliver(ctx context.Context, to []string, env message.Envelope) {
	if err := c.notifier.Notify(ctx, to, env); err != nil {
		c.logger.Warn().Err(err).Str("kind", string(env.Kind)).Msg("broadcast delivery incomplete")
	}
}

func (c *Coordinator) release(gameID string, unlock i.UnlockFunc) {
	if err := unlock(); err != nil {
		c.logger.Warn().Err(err).Str("game", gameID).Msg("releasing game lock")
	}
}
