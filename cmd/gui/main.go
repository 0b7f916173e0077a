package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/gui"
	"github.com/tomz197/rotander/internal/level"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rotander",
	})

	start, err := config.GetEnvInt("ROTANDER_LEVEL", 1)
	if err != nil {
		logger.Fatal("ROTANDER_LEVEL", "err", err)
	}
	levels, err := level.NewManagerFromDir(config.GetEnv("ROTANDER_LEVELS", ""), start)
	if err != nil {
		logger.Fatal("levels", "err", err)
	}

	settings := config.Default()
	g, err := gui.NewGame(gui.Options{
		Levels:   levels,
		Settings: settings,
		Logger:   logger,
		Mute:     config.GetEnvBool("ROTANDER_MUTE"),
	})
	if err != nil {
		logger.Fatal("game", "err", err)
	}

	ebiten.SetWindowSize(settings.Display.WindowWidth, settings.Display.WindowHeight)
	ebiten.SetWindowTitle("Rotander")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(settings.Gameplay.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run", "err", err)
	}
}
