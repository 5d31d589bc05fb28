package main

type State int

const (
	StateStart State = iota
	StateSpawn
	StateMoving
	StateShifting
	StateAttaching
	StateGameOver
	StateExitError
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSpawn:
		return "spawn"
	case StateMoving:
		return "moving"
	case StateShifting:
		return "shifting"
	case StateAttaching:
		return "attaching"
	case StateGameOver:
		return "gameover"
	case StateExitError:
		return "exit_error"
	default:
		return "unknown"
	}
}

type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionPause
	ActionTerminate
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionRotate
)

func resolveAction(key string) Action {
	switch key {
	case "up":
		return ActionUp
	case "down":
		return ActionDown
	case "left":
		return ActionLeft
	case "right":
		return ActionRight
	case "r", "R":
		return ActionStart
	case " ":
		return ActionRotate
	case "p", "P":
		return ActionPause
	case "esc":
		return ActionTerminate
	}
	return ActionNone
}

// Step processes exactly one state. SPAWN, SHIFTING, and ATTACHING ignore
// the action and resolve unconditionally.
func (g *Game) Step(action Action) {
	switch g.State {
	case StateStart:
		g.onStart(action)
	case StateSpawn:
		g.onSpawn()
	case StateMoving:
		g.onMoving(action)
	case StateShifting:
		g.onShifting()
	case StateAttaching:
		g.onAttaching()
	case StateGameOver, StateExitError:
	}
}

// Advance feeds one action and then drains the unconditional states, so the
// session always comes to rest in START, MOVING, GAMEOVER, or EXIT_ERROR.
func (g *Game) Advance(action Action) {
	g.Step(action)
	for g.State == StateSpawn || g.State == StateShifting || g.State == StateAttaching {
		g.Step(ActionNone)
	}
}

func (g *Game) onStart(action Action) {
	switch action {
	case ActionStart:
		g.assignNextFigure()
		g.State = StateSpawn
	case ActionTerminate:
		g.State = StateGameOver
	}
}

func (g *Game) onSpawn() {
	if err := g.updateHighScore(); err != nil {
		g.Err = err
		g.State = StateExitError
		return
	}
	g.spawnFigure()
	if g.Collides() {
		g.State = StateGameOver
	} else {
		g.State = StateMoving
	}
}

func (g *Game) onMoving(action Action) {
	if g.Paused && action != ActionPause && action != ActionTerminate {
		return
	}
	switch action {
	case ActionUp:
		// reserved, no movement assigned
	case ActionDown:
		g.dropDown()
	case ActionLeft:
		g.moveHorizontal(-1)
	case ActionRight:
		g.moveHorizontal(1)
	case ActionRotate:
		g.rotateFigure()
	case ActionPause:
		g.Paused = !g.Paused
	case ActionTerminate:
		g.State = StateGameOver
		return
	}
	if g.Paused {
		return
	}
	g.State = StateShifting
}

func (g *Game) onShifting() {
	g.Pos.Y++
	if g.Collides() {
		g.Pos.Y--
		g.State = StateAttaching
	} else {
		g.State = StateMoving
	}
}

func (g *Game) onAttaching() {
	g.attachFigure()
	rows := g.clearRows()
	g.recalculateStats(rows)
	if g.Level > maxLevel {
		g.State = StateGameOver
	} else {
		g.State = StateSpawn
	}
}

func (g *Game) dropDown() {
	for !g.Collides() {
		g.Pos.Y++
	}
	g.Pos.Y--
}

func (g *Game) moveHorizontal(dx int) {
	g.Pos.X += dx
	if g.Collides() {
		g.Pos.X -= dx
	}
}

// Rotation is all-or-nothing: a colliding rotation is undone by rotating
// three more times.
func (g *Game) rotateFigure() {
	g.Figure.Rotate()
	if g.Collides() {
		for r := 0; r < 3; r++ {
			g.Figure.Rotate()
		}
	}
}
