package loop

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// styles holds the lipgloss styles bound to one connection's renderer.
type styles struct {
	title  lipgloss.Style
	dim    lipgloss.Style
	hud    lipgloss.Style
	alarm  lipgloss.Style
	box    lipgloss.Style
	header lipgloss.Style
	prompt lipgloss.Style
	err    lipgloss.Style
	table  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Foreground(lipgloss.Color("#64C8FF")).Bold(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#808080")),
		hud:    r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		alarm:  r.NewStyle().Foreground(lipgloss.Color("#FF5050")).Bold(true).Blink(true),
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#64C8FF")).Padding(1, 3).Align(lipgloss.Center),
		header: r.NewStyle().Bold(true),
		prompt: r.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#FF5050")),
		table:  r.NewStyle().Padding(0, 1),
	}
}

// titleArt is "ROTANDER" in the figlet "small" font.
var titleArt = []string{
	` ___  ___ _____ _   _  _ ___  ___ ___ `,
	`| _ \/ _ \_   _/_\ | \| |   \| __| _ \`,
	`|   / (_) || |/ _ \| .' | |) | _||   /`,
	`|_|_\\___/ |_/_/ \_\_|\_|___/|___|_|_\`,
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// writeBlock writes a multi-line block with its top-left corner at
// (col, row) and marks the covered cells dirty.
func (t *terminal) writeBlock(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		t.chunkWriter.WriteAt(max(col, 1), row+i, line)
		t.canvas.MarkTextDirty(max(col, 1), row+i, lipgloss.Width(line))
	}
}

// writeCentered writes a block centered on (centerX, centerY).
func (t *terminal) writeCentered(centerX, centerY int, block string) {
	w, h := lipgloss.Size(block)
	t.writeBlock(centerX-w/2, centerY-h/2, block)
}

// drawUI draws the game UI overlay.
func (t *terminal) drawUI(snap Snapshot) {
	termWidth := t.canvas.TerminalWidth()
	termHeight := t.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if t.isInactive {
		t.drawInactivityScreen(centerX, centerY)
		return
	}

	switch t.screen {
	case screenStart:
		t.drawStartScreen(centerX, centerY)
	case screenFinished:
		t.drawFinishedScreen(centerX, centerY)
	case screenGame:
		t.drawPlayingHUD(termWidth, termHeight, snap)
		switch snap.State {
		case StatePaused:
			t.drawPausedScreen(centerX, centerY)
		case StateComplete:
			t.drawCompleteScreen(centerX, centerY, snap)
		case StateEliminated:
			t.drawEliminatedScreen(centerX, centerY)
		}
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (t *terminal) drawInactivityScreen(centerX, centerY int) {
	left := int(InactivityDisconnectUser - time.Since(t.lastInput).Seconds())
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.styles.header.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %3d seconds.", left),
		"",
		t.styles.dim.Render("Press any key to continue"),
	)
	t.writeCentered(centerX, centerY, t.styles.box.Render(body))
}

// drawStartScreen draws the title screen.
func (t *terminal) drawStartScreen(centerX, centerY int) {
	art := t.styles.title.Render(strings.Join(titleArt, "\n"))

	controls := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return t.styles.table }).
		Rows(
			[]string{"A D / < >", "Move along the plane"},
			[]string{"W / SPACE", "Jump"},
			[]string{"S", "Drop faster"},
			[]string{"I O", "Rotate the plane"},
			[]string{"ESC", "Pause"},
			[]string{"Q", "Quit"},
		)

	prompt := strings.Repeat(" ", 26)
	if blinkOn() {
		prompt = t.styles.prompt.Render(">>  Press SPACE to Start  <<")
	}

	parts := []string{
		art,
		"",
		t.styles.dim.Render("~ a 2D world cut from 3D shapes ~"),
		"",
		controls.Render(),
		prompt,
	}
	if t.opts.Username != "" {
		parts = append(parts, "", t.styles.dim.Render("Playing as "+t.opts.Username))
	}
	if t.loadErr != nil {
		parts = append(parts, "", t.styles.err.Render(t.loadErr.Error()))
	}
	t.writeCentered(centerX, centerY, lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (t *terminal) drawPlayingHUD(termWidth, termHeight int, snap Snapshot) {
	st := t.styles
	l := t.session.Level()

	lines := []string{
		st.header.Render(fmt.Sprintf("Level %d: %s", t.opts.Levels.Current(), l.Name)),
		st.hud.Render(fmt.Sprintf("Points: %-6d", snap.Score)),
		st.hud.Render(fmt.Sprintf("Angle:  %5.1f°", snap.Angle*180/math.Pi)),
	}
	if snap.HasEnemies {
		enemy := fmt.Sprintf("Enemy:  %5.2f", snap.NearestEnemy)
		if snap.Alarm {
			lines = append(lines, st.alarm.Render(enemy+" !"))
		} else {
			lines = append(lines, st.hud.Render(enemy+"  "))
		}
	}
	t.writeBlock(2, 1, strings.Join(lines, "\n"))

	coords := fmt.Sprintf("X:%7.2f Y:%7.2f Z:%7.2f", snap.Position.X(), snap.Position.Y(), snap.Position.Z())
	t.writeBlock(2, termHeight, st.dim.Render(coords))

	if t.totalScore > 0 {
		total := fmt.Sprintf("Total: %-8d", t.totalScore)
		t.writeBlock(termWidth-len(total)-1, termHeight, st.dim.Render(total))
	}

	t.drawMinimap(termWidth, termHeight, snap)
}

// drawPausedScreen draws the pause overlay.
func (t *terminal) drawPausedScreen(centerX, centerY int) {
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.styles.header.Render("PAUSED"),
		"",
		t.styles.dim.Render("ESC / SPACE to resume, Q to quit"),
	)
	t.writeCentered(centerX, centerY, t.styles.box.Render(body))
}

// drawCompleteScreen draws the level complete overlay.
func (t *terminal) drawCompleteScreen(centerX, centerY int, snap Snapshot) {
	next := "Press SPACE for the next level"
	if !t.opts.Levels.HasNext() {
		next = "Press SPACE to finish"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.styles.title.Render("LEVEL COMPLETE"),
		"",
		fmt.Sprintf("Points left: %d", snap.Score),
		fmt.Sprintf("Total: %d", t.totalScore+snap.Score),
		"",
		t.styles.prompt.Render(next),
	)
	t.writeCentered(centerX, centerY, t.styles.box.Render(body))
}

// drawEliminatedScreen draws the out-of-points overlay.
func (t *terminal) drawEliminatedScreen(centerX, centerY int) {
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.styles.err.Render("ELIMINATED"),
		"",
		"You ran out of points.",
		fmt.Sprintf("Total score: %d", t.totalScore),
		"",
		t.styles.prompt.Render("Press SPACE to return to the title"),
	)
	t.writeCentered(centerX, centerY, t.styles.box.Render(body))
}

// drawFinishedScreen draws the final victory screen.
func (t *terminal) drawFinishedScreen(centerX, centerY int) {
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.styles.title.Render("ALL LEVELS CLEARED"),
		"",
		fmt.Sprintf("Final score: %d", t.totalScore),
		"",
		t.styles.prompt.Render("Press SPACE to play again"),
	)
	t.writeCentered(centerX, centerY, t.styles.box.Render(body))
}
