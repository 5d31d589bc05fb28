package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

type tickMsg struct{}

type remoteBestMsg struct {
	best  int
	found bool
	err   error
}

type resultUploadedMsg struct {
	err error
}

type Model struct {
	width      int
	height     int
	config     Config
	themeIndex int
	game       *Game
	store      HighScoreStore
	sync       *ScoreSync

	syncWarning   string
	remoteBest    int
	hasRemoteBest bool
	reported      bool
}

func NewModel() Model {
	config, _ := loadConfig()
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	sync := NewScoreSyncFromEnv(config.Sync)
	model := Model{
		config:     config,
		themeIndex: index,
		sync:       sync,
	}
	store, err := NewFileStore()
	if err != nil {
		log.Errorf("high score store init error: %v", err)
		model.game = NewGame(nil, nil)
		model.game.Err = err
		model.game.State = StateExitError
		return model
	}
	model.store = store
	model.game = NewGame(nil, store)
	return model
}

func (m Model) Init() tea.Cmd {
	if m.sync.Enabled() {
		return m.sync.FetchBestCmd()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, m.updateTick()
	case remoteBestMsg:
		if msg.err != nil {
			log.Warnf("remote best fetch error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
			return m, nil
		}
		m.syncWarning = ""
		if msg.found {
			m.remoteBest = msg.best
			m.hasRemoteBest = true
		}
		return m, nil
	case resultUploadedMsg:
		if msg.err != nil {
			log.Warnf("result upload error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
			return m, nil
		}
		m.syncWarning = ""
		return m, nil
	case tea.KeyMsg:
		return m, m.updateKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	return viewGame(m)
}

func (m *Model) updateTick() tea.Cmd {
	if m.game.State != StateMoving {
		return nil
	}
	if m.game.Paused {
		return tickCmd(m.game.SpeedInterval())
	}
	m.game.Advance(ActionNone)
	cmds := []tea.Cmd{}
	if cmd := m.sessionEndCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.game.State == StateMoving {
		cmds = append(cmds, tickCmd(m.game.SpeedInterval()))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	switch m.game.State {
	case StateStart:
		switch key {
		case "t", "T":
			m.themeIndex = (m.themeIndex + 1) % len(themes)
			m.config.Theme = themes[m.themeIndex].Name
			_ = saveConfig(m.config)
			return nil
		case "q":
			return tea.Quit
		}
	case StateGameOver, StateExitError:
		if (key == "r" || key == "R") && m.store != nil {
			log.Debugf("session restart, previous score %d", m.game.Score)
			m.game = NewGame(nil, m.store)
			m.reported = false
			m.game.Advance(ActionStart)
			if cmd := m.sessionEndCmd(); cmd != nil {
				return cmd
			}
			return tickCmd(m.game.SpeedInterval())
		}
		return tea.Quit
	}
	action := resolveAction(key)
	if action == ActionNone {
		return nil
	}
	wasIdle := m.game.State == StateStart
	m.game.Advance(action)
	cmds := []tea.Cmd{}
	if cmd := m.sessionEndCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if wasIdle && m.game.State == StateMoving {
		cmds = append(cmds, tickCmd(m.game.SpeedInterval()))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// sessionEndCmd fires once per session when it reaches a terminal state.
func (m *Model) sessionEndCmd() tea.Cmd {
	if m.reported {
		return nil
	}
	switch m.game.State {
	case StateExitError:
		m.reported = true
		log.Errorf("session failed: %v", m.game.Err)
		return nil
	case StateGameOver:
		m.reported = true
		log.Debugf("session over: score=%d lines=%d level=%d", m.game.Score, m.game.Lines, m.game.Level)
		if !m.sync.Enabled() || m.game.Score == 0 {
			return nil
		}
		entry := ResultEntry{
			Score: m.game.Score,
			Lines: m.game.Lines,
			Level: m.game.Level,
			When:  time.Now().Format("2006-01-02 15:04"),
		}
		return tea.Batch(m.sync.UploadResultCmd(entry), m.sync.FetchBestCmd())
	}
	return nil
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}
