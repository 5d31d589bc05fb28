package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	PieceColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"51", "226", "93", "46", "196", "21", "208"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

const cellWidth = 2

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	if m.game.State == StateStart {
		return center(m.width, m.height, renderIntro(theme))
	}
	minWidth := fieldCols*cellWidth + 4 + 24
	minHeight := fieldRows + 4
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(m.game, theme)
	info := renderInfo(m, theme)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if banner := renderBanner(m.game, theme); banner != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", banner)
	}
	return center(m.width, m.height, content)
}

func renderIntro(theme Theme) string {
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("BLOCKFALL"))
	b.WriteString("\n\n")
	b.WriteString(highlightStyle(theme).Render("Press R to start!"))
	b.WriteString("\n\n")
	lines := []string{
		"Arrows: move, Down: drop",
		"Space: rotate",
		"P: pause, Esc: end game",
		fmt.Sprintf("T: theme (%s)", theme.Name),
		"Q: quit",
	}
	for _, line := range lines {
		b.WriteString(helpStyle(theme).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBoard(g *Game, theme Theme) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellEmpty := lipgloss.NewStyle()
	settled := lipgloss.NewStyle().Background(theme.TextColor)
	cellText := strings.Repeat(" ", cellWidth)
	board := make([][]int, fieldRows)
	for y := range board {
		board[y] = make([]int, fieldCols)
		for x := range board[y] {
			if g.Field[y][x] == 1 {
				board[y][x] = -1
			}
		}
	}
	for i := 0; i < figureSize; i++ {
		for j := 0; j < figureSize; j++ {
			if g.Figure[i][j] == 0 {
				continue
			}
			y := g.Pos.Y + i
			x := g.Pos.X + j
			if y >= 0 && y < fieldRows && x >= 0 && x < fieldCols {
				board[y][x] = g.Kind + 1
			}
		}
	}
	var b strings.Builder
	b.WriteString(border.Render("+" + strings.Repeat("-", fieldCols*cellWidth) + "+"))
	b.WriteString("\n")
	for y := 0; y < fieldRows; y++ {
		b.WriteString(border.Render("|"))
		for x := 0; x < fieldCols; x++ {
			val := board[y][x]
			if val == 0 {
				b.WriteString(cellEmpty.Render(cellText))
				continue
			}
			if val < 0 {
				b.WriteString(settled.Render(cellText))
				continue
			}
			color := theme.PieceColors[(val-1)%len(theme.PieceColors)]
			b.WriteString(lipgloss.NewStyle().Background(color).Render(cellText))
		}
		b.WriteString(border.Render("|"))
		b.WriteString("\n")
	}
	b.WriteString(border.Render("+" + strings.Repeat("-", fieldCols*cellWidth) + "+"))
	return b.String()
}

func renderInfo(m Model, theme Theme) string {
	g := m.game
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	b.WriteString(pad.Render(renderMiniFigure(g.Next, g.NextKind, theme)))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", g.Score)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Best:  %d", g.HighScore)))
	b.WriteString("\n")
	if m.hasRemoteBest {
		b.WriteString(pad.Render(fmt.Sprintf("World: %d", m.remoteBest)))
		b.WriteString("\n")
	}
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", g.Lines)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", g.Level)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Speed: %dms", g.Speed)))
	b.WriteString("\n\n")
	keys := []string{
		"Arrows: move",
		"Down: drop",
		"Space: rotate",
		"P: pause",
		"Esc: end game",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(pad.Render(warningStyle().Render(m.syncWarning)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderMiniFigure(f Figure, kind int, theme Theme) string {
	cellEmpty := lipgloss.NewStyle()
	cellText := strings.Repeat(" ", cellWidth)
	color := theme.PieceColors[kind%len(theme.PieceColors)]
	var b strings.Builder
	for i := 0; i < figureSize; i++ {
		for j := 0; j < figureSize; j++ {
			if f[i][j] == 0 {
				b.WriteString(cellEmpty.Render(cellText))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Background(color).Render(cellText))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBanner(g *Game, theme Theme) string {
	switch {
	case g.State == StateExitError:
		message := "Something went wrong."
		if g.Err != nil {
			message = g.Err.Error()
		}
		return warningStyle().Render("ERROR: "+message) + "\n" +
			helpStyle(theme).Render("R to retry, any other key to quit")
	case g.State == StateGameOver:
		return titleStyle(theme).Render(fmt.Sprintf("GAME OVER  --  Score %d", g.Score)) + "\n" +
			helpStyle(theme).Render("R to play again, any other key to quit")
	case g.Paused:
		return highlightStyle(theme).Render("Paused") + "  " +
			helpStyle(theme).Render("P to resume")
	}
	return ""
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
