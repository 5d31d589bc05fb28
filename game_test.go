package main

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	best    int
	found   bool
	loadErr error
	saveErr error
	saved   []int
}

func (s *fakeStore) Load() (int, bool, error) {
	return s.best, s.found, s.loadErr
}

func (s *fakeStore) Save(best int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.best = best
	s.found = true
	s.saved = append(s.saved, best)
	return nil
}

func newTestGame(seed int64) (*Game, *fakeStore) {
	store := &fakeStore{}
	return NewGame(rand.New(rand.NewSource(seed)), store), store
}

func TestRotateIsOrderFour(t *testing.T) {
	for kind := 0; kind < numFigures; kind++ {
		for spin := 0; spin < 4; spin++ {
			t.Run(fmt.Sprintf("kind=%d,spin=%d", kind, spin), func(t *testing.T) {
				figure := figureShapes[kind]
				for r := 0; r < spin; r++ {
					figure.Rotate()
				}
				original := figure
				for r := 0; r < 4; r++ {
					figure.Rotate()
				}
				assert.Equal(t, original, figure)
			})
		}
	}
}

func TestRotateClockwise(t *testing.T) {
	figure := figureShapes[0]
	figure.Rotate()

	vertical := Figure{
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
	}
	assert.Equal(t, vertical, figure)
}

func TestCollisionBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		kind    int
		pos     FigurePos
		collide bool
	}{
		{"I past left wall", 0, FigurePos{-1, 5}, true},
		{"I at left wall", 0, FigurePos{0, 5}, false},
		{"I past right wall", 0, FigurePos{7, 5}, true},
		{"I at right wall", 0, FigurePos{6, 5}, false},
		{"I above top", 0, FigurePos{3, -2}, true},
		{"I at top", 0, FigurePos{3, -1}, false},
		{"I past floor", 0, FigurePos{3, 19}, true},
		{"I at floor", 0, FigurePos{3, 18}, false},
		{"O past left wall", 1, FigurePos{-2, 5}, true},
		{"O hugging left wall", 1, FigurePos{-1, 5}, false},
		{"O past floor", 1, FigurePos{2, 18}, true},
		{"O at floor", 1, FigurePos{2, 17}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, _ := newTestGame(1)
			game.Figure = figureShapes[tt.kind]
			game.Pos = tt.pos
			assert.Equal(t, tt.collide, game.Collides())
		})
	}
}

func TestCollisionWithSettledCells(t *testing.T) {
	game, _ := newTestGame(1)
	game.Field[10][4] = 1
	game.Figure = figureShapes[0]

	game.Pos = FigurePos{3, 9}
	assert.True(t, game.Collides())

	game.Pos = FigurePos{3, 8}
	assert.False(t, game.Collides())
}

func TestEmptyBoundingBoxCellsDoNotCollide(t *testing.T) {
	game, _ := newTestGame(1)
	game.Figure = figureShapes[0]
	game.Field[0][0] = 1

	// The I figure's row 0 is empty, so overlapping it with a settled cell
	// is not a collision.
	game.Pos = FigurePos{0, 0}
	assert.False(t, game.Collides())
}

func TestAttachFigure(t *testing.T) {
	game, _ := newTestGame(1)
	game.Figure = figureShapes[1]
	game.Pos = FigurePos{2, 17}
	game.attachFigure()

	sum := 0
	for y := 0; y < fieldRows; y++ {
		for x := 0; x < fieldCols; x++ {
			sum += game.Field[y][x]
		}
	}
	assert.Equal(t, 4, sum)
	assert.Equal(t, 1, game.Field[18][3])
	assert.Equal(t, 1, game.Field[18][4])
	assert.Equal(t, 1, game.Field[19][3])
	assert.Equal(t, 1, game.Field[19][4])
}

func TestClearRowsOrderIndependent(t *testing.T) {
	game, _ := newTestGame(1)
	for y := 0; y < fieldRows; y++ {
		game.Field[y][(y*3)%fieldCols] = 1
	}
	for x := 0; x < fieldCols; x++ {
		game.Field[3][x] = 1
		game.Field[7][x] = 1
	}
	original := game.Field

	cleared := game.clearRows()
	assert.Equal(t, 2, cleared)

	var expected [fieldRows][fieldCols]int
	dst := fieldRows - 1
	for src := fieldRows - 1; src >= 0; src-- {
		if src == 3 || src == 7 {
			continue
		}
		expected[dst] = original[src]
		dst--
	}
	assert.Equal(t, expected, game.Field)
}

func TestClearFourRowsAtOnce(t *testing.T) {
	game, _ := newTestGame(1)
	for y := 16; y < fieldRows; y++ {
		for x := 0; x < fieldCols; x++ {
			game.Field[y][x] = 1
		}
	}
	game.Field[15][0] = 1

	cleared := game.clearRows()
	assert.Equal(t, 4, cleared)
	assert.Equal(t, 1, game.Field[19][0])
	for x := 1; x < fieldCols; x++ {
		assert.Equal(t, 0, game.Field[19][x])
	}
}

func TestRecalculateStatsCumulative(t *testing.T) {
	game, _ := newTestGame(1)

	game.recalculateStats(1)
	assert.Equal(t, 100, game.Score)
	assert.Equal(t, 1, game.Level)

	game.recalculateStats(2)
	assert.Equal(t, 400, game.Score)

	game.recalculateStats(3)
	assert.Equal(t, 1100, game.Score)
	assert.Equal(t, 2, game.Level)
	assert.Equal(t, initialSpeed-speedDecrement, game.Speed)

	game.recalculateStats(4)
	assert.Equal(t, 2600, game.Score)
	assert.Equal(t, 5, game.Level)
	assert.Equal(t, initialSpeed-4*speedDecrement, game.Speed)
}

func TestRecalculateStatsZeroRows(t *testing.T) {
	game, _ := newTestGame(1)
	game.Score = 550
	game.recalculateStats(0)
	assert.Equal(t, 550, game.Score)
	assert.Equal(t, 1, game.Level)
	assert.Equal(t, initialSpeed, game.Speed)
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		name string
		kind int
		pos  FigurePos
	}{
		{"I aligns occupied row with top", 0, FigurePos{3, -1}},
		{"O compensates empty leading column", 1, FigurePos{2, -1}},
		{"J spawns centered", 2, FigurePos{3, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, _ := newTestGame(1)
			game.Next = figureShapes[tt.kind]
			game.NextKind = tt.kind
			game.spawnFigure()
			assert.Equal(t, figureShapes[tt.kind], game.Figure)
			assert.Equal(t, tt.pos, game.Pos)
			assert.False(t, game.Collides())
		})
	}
}

func TestUpdateHighScore(t *testing.T) {
	t.Run("no record, zero score", func(t *testing.T) {
		game, store := newTestGame(1)
		assert.NoError(t, game.updateHighScore())
		assert.Empty(t, store.saved)
		assert.Equal(t, 0, game.HighScore)
	})
	t.Run("no record, new best", func(t *testing.T) {
		game, store := newTestGame(1)
		game.Score = 100
		assert.NoError(t, game.updateHighScore())
		assert.Equal(t, []int{100}, store.saved)
		assert.Equal(t, 100, game.HighScore)
	})
	t.Run("existing record wins", func(t *testing.T) {
		game, store := newTestGame(1)
		store.best = 200
		store.found = true
		game.Score = 100
		assert.NoError(t, game.updateHighScore())
		assert.Empty(t, store.saved)
		assert.Equal(t, 200, game.HighScore)
	})
	t.Run("load failure propagates", func(t *testing.T) {
		game, store := newTestGame(1)
		store.loadErr = assert.AnError
		assert.Error(t, game.updateHighScore())
	})
	t.Run("save failure propagates", func(t *testing.T) {
		game, store := newTestGame(1)
		store.saveErr = assert.AnError
		game.Score = 100
		assert.Error(t, game.updateHighScore())
	})
}
