// Package main provides the entry point for the Snapframe desktop editor.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"snapframe/internal/app"
	"snapframe/internal/config"
	"snapframe/internal/logging"
	"snapframe/internal/version"
	"snapframe/ui/mainwindow"
	"snapframe/ui/prefs"
)

const appID = "io.snapframe.editor"

func main() {
	configPath := flag.String("config", "", "TOML configuration file (default $"+config.EnvPath+")")
	presetPath := flag.String("preset", "", "preset to apply and watch for changes")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(*configPath)
	app.SetupLogging(os.Stderr, cfg)
	if err != nil {
		logging.Logger().Warn("config", slog.Any("error", err))
	}
	logging.Logger().Info("starting", slog.String("version", version.String()))

	ed, err := app.NewEditor(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "snapframe:", err)
		os.Exit(1)
	}

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(&app.Theme{})

	win := mainwindow.New(a, ed, prefs.Load())
	win.SetTitle(version.String())

	if path := flag.Arg(0); path != "" {
		win.OpenImage(path)
	}
	if *presetPath != "" {
		win.LoadPreset(*presetPath, true)
	}

	win.ShowAndRun()
}
