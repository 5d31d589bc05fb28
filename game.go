package main

import (
	"math/rand"
	"time"
)

const (
	fieldRows  = 20
	fieldCols  = 10
	figureSize = 4

	numFigures = 7
	maxLevel   = 10

	initialSpeed   = 500
	speedDecrement = 30
)

type Figure [figureSize][figureSize]int

type FigurePos struct {
	X int
	Y int
}

type Game struct {
	Field     [fieldRows][fieldCols]int
	Figure    Figure
	Next      Figure
	Pos       FigurePos
	Kind      int
	NextKind  int
	Score     int
	HighScore int
	Level     int
	Speed     int
	Lines     int
	Paused    bool
	State     State
	Err       error

	store HighScoreStore
	rng   *rand.Rand
}

func NewGame(rng *rand.Rand, store HighScoreStore) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		Level: 1,
		Speed: initialSpeed,
		State: StateStart,
		store: store,
		rng:   rng,
	}
}

func (g *Game) SpeedInterval() time.Duration {
	return time.Duration(g.Speed) * time.Millisecond
}

func (g *Game) assignNextFigure() {
	g.NextKind = g.rng.Intn(numFigures)
	g.Next = figureShapes[g.NextKind]
	for r := g.rng.Intn(4); r > 0; r-- {
		g.Next.Rotate()
	}
}

func (g *Game) spawnFigure() {
	g.Figure = g.Next
	g.Kind = g.NextKind
	g.assignNextFigure()
	g.initFigurePosition()
}

// The spawn offset aligns the figure's first occupied row with the top of
// the field and compensates for empty leading columns in the bounding box.
func (g *Game) initFigurePosition() {
	g.Pos = FigurePos{X: (fieldCols - figureSize) / 2, Y: 0}
	for i := 0; i < figureSize && rowEmpty(g.Figure, i); i++ {
		g.Pos.Y--
	}
	for j := 0; j < figureSize && colEmpty(g.Figure, j); j++ {
		g.Pos.X--
	}
}

func rowEmpty(f Figure, i int) bool {
	for j := 0; j < figureSize; j++ {
		if f[i][j] != 0 {
			return false
		}
	}
	return true
}

func colEmpty(f Figure, j int) bool {
	for i := 0; i < figureSize; i++ {
		if f[i][j] != 0 {
			return false
		}
	}
	return true
}

func (g *Game) Collides() bool {
	for i := 0; i < figureSize; i++ {
		for j := 0; j < figureSize; j++ {
			if g.Figure[i][j] == 0 {
				continue
			}
			y := g.Pos.Y + i
			x := g.Pos.X + j
			if x < 0 || x >= fieldCols || y < 0 || y >= fieldRows || g.Field[y][x] == 1 {
				return true
			}
		}
	}
	return false
}

func (g *Game) attachFigure() {
	for i := 0; i < figureSize; i++ {
		for j := 0; j < figureSize; j++ {
			if g.Figure[i][j] == 0 {
				continue
			}
			y := g.Pos.Y + i
			x := g.Pos.X + j
			if y >= 0 && y < fieldRows && x >= 0 && x < fieldCols {
				g.Field[y][x] = 1
			}
		}
	}
}

func (g *Game) clearRows() int {
	cleared := 0
	for i := 0; i < fieldRows; i++ {
		if rowComplete(g.Field[i]) {
			cleared++
			g.collapseRow(i)
		}
	}
	return cleared
}

func rowComplete(row [fieldCols]int) bool {
	for j := 0; j < fieldCols; j++ {
		if row[j] != 1 {
			return false
		}
	}
	return true
}

func (g *Game) collapseRow(row int) {
	for i := row; i > 0; i-- {
		g.Field[i] = g.Field[i-1]
	}
	g.Field[0] = [fieldCols]int{}
}

func (g *Game) recalculateStats(rows int) {
	if rows == 0 {
		return
	}
	switch rows {
	case 1:
		g.Score += 100
	case 2:
		g.Score += 300
	case 3:
		g.Score += 700
	case 4:
		g.Score += 1500
	}
	g.Lines += rows
	g.Level = 1 + g.Score/600
	g.Speed = initialSpeed - (g.Level-1)*speedDecrement
}

func (g *Game) updateHighScore() error {
	if g.HighScore != 0 && g.Score <= g.HighScore {
		return nil
	}
	best, found, err := g.store.Load()
	if err != nil {
		return err
	}
	if found && best > g.HighScore {
		g.HighScore = best
	}
	if g.Score > g.HighScore {
		if err := g.store.Save(g.Score); err != nil {
			return err
		}
		g.HighScore = g.Score
	}
	return nil
}

func (f *Figure) Rotate() {
	var rotated Figure
	for i := 0; i < figureSize; i++ {
		for j := 0; j < figureSize; j++ {
			rotated[i][j] = f[j][figureSize-1-i]
		}
	}
	*f = rotated
}

var figureShapes = [numFigures]Figure{
	// I
	{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	// O
	{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	},
	// J
	{
		{0, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
	// L
	{
		{0, 0, 0, 0},
		{0, 0, 1, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
	// Z
	{
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	},
	// S
	{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
	},
	// T
	{
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
}
