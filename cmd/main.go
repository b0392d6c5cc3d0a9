package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"deckwatch/internal/core/clock"
	"deckwatch/internal/core/model"
	"deckwatch/internal/core/stopwatch"
	"deckwatch/internal/core/timefmt"
	"deckwatch/internal/platform"
	"deckwatch/internal/render"
	"deckwatch/internal/storage"
	"deckwatch/internal/ui/deck"
	"deckwatch/internal/ui/term"
	"deckwatch/internal/ui/tray"
	"deckwatch/resources"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

var (
	configPath string
	storePath  string
	columns    int
	rows       int
	pages      int
	keySize    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "deckwatch",
		Short:        "Stopwatch keys on a virtual control surface",
		SilenceUsage: true,
		RunE:         runDeckCmd,
	}

	defaults := model.DefaultAppConfig()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "key settings file (default: user config dir)")
	rootCmd.PersistentFlags().IntVar(&columns, "columns", defaults.Deck.Columns, "keys per row")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", defaults.Deck.Rows, "rows per page")
	rootCmd.PersistentFlags().IntVar(&pages, "pages", defaults.Deck.Pages, "number of pages")
	rootCmd.PersistentFlags().IntVar(&keySize, "key-size", defaults.Deck.KeySize, "key image size in pixels")

	rootCmd.AddCommand(newTermCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newResetCmd())
	return rootCmd
}

func loadAppConfig(cmd *cobra.Command) (model.AppConfig, error) {
	path, err := platform.ResolvePath(configPath, storage.ConfigFileName)
	if err != nil {
		return model.AppConfig{}, err
	}
	config, err := storage.LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("columns") {
		config.Deck.Columns = columns
	}
	if flags.Changed("rows") {
		config.Deck.Rows = rows
	}
	if flags.Changed("pages") {
		config.Deck.Pages = pages
	}
	if flags.Changed("key-size") {
		config.Deck.KeySize = keySize
	}
	if flags.Changed("store") {
		config.StorePath = storePath
	}
	return config.Clamp(), nil
}

func openStore(config model.AppConfig) (*storage.KeyStore, error) {
	path, err := platform.ResolvePath(config.StorePath, storage.KeysFileName)
	if err != nil {
		return nil, err
	}
	store, err := storage.OpenKeyStore(path)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	return store, nil
}

func runDeckCmd(cmd *cobra.Command, _ []string) error {
	config, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(config)
	if err != nil {
		return err
	}
	lock, err := platform.AcquireLock(store.Path())
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	renderer, err := render.New(config.Deck.KeySize)
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID("com.deckwatch.app")
	fyneApp.SetIcon(resources.MustIcon(renderer, true))

	deckWindow := deck.New(fyneApp, config.Deck, store)
	plugin, err := stopwatch.New(deckWindow, stopwatch.Options{
		Clock:    clock.Real(),
		Logger:   log.Default(),
		Renderer: renderer,
	})
	if err != nil {
		return err
	}

	onChange := func() {}
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, resources.MustIcon(renderer, false), resources.MustIcon(renderer, true), tray.Callbacks{
			OnShowDeck: deckWindow.Show,
			OnHideDeck: deckWindow.Hide,
			OnNextPage: func() {
				deckWindow.ShowPage(deckWindow.Page() + 1)
				deckWindow.Show()
			},
			OnQuit: fyneApp.Quit,
		})
		onChange = func() {
			trayManager.SetRunning(deckWindow.RunningCount())
		}
		onChange()
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	deckWindow.Attach(plugin, onChange)
	deckWindow.Show()
	fyneApp.Run()

	deckWindow.HideAll()
	plugin.Close()
	return nil
}

func newTermCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Run the deck in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTermCmd,
	}
}

func runTermCmd(cmd *cobra.Command, _ []string) error {
	config, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(config)
	if err != nil {
		return err
	}
	lock, err := platform.AcquireLock(store.Path())
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	logFile, err := openTermLog(store.Path())
	if err != nil {
		return err
	}
	defer logFile.Close()

	renderer, err := render.New(term.FaceSize)
	if err != nil {
		return err
	}
	surface := term.NewSurface(store)
	plugin, err := stopwatch.New(surface, stopwatch.Options{
		Logger:   log.New(logFile, "", log.LstdFlags),
		Renderer: renderer,
	})
	if err != nil {
		return err
	}
	defer plugin.Close()

	program := tea.NewProgram(term.NewModel(plugin, surface, config.Deck), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal deck: %w", err)
	}
	return nil
}

// openTermLog keeps log output from tearing the alt screen.
func openTermLog(storeFile string) (*os.File, error) {
	path := filepath.Join(filepath.Dir(storeFile), "term.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file and print its path",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path, err := platform.ResolvePath(configPath, storage.ConfigFileName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(storage.DefaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted keys and their time",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	config, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(config)
	if err != nil {
		return err
	}

	instances := store.Instances()
	nowMs := clock.NowMs(clock.Real())
	for _, instance := range instances {
		state := model.Normalize(store.Load(instance))
		status := "stopped"
		if state.Running {
			status = "running"
		}
		line := fmt.Sprintf("%-8s %-8s %s", instance, status, timefmt.Format(state.LiveElapsed(nowMs), state.Format))
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <instance>...",
		Short: "Forget the persisted state of keys",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, args []string) error {
	config, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(config)
	if err != nil {
		return err
	}
	lock, err := platform.AcquireLock(store.Path())
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	for _, instance := range args {
		if err := store.Delete(instance); err != nil {
			return fmt.Errorf("reset %s: %w", instance, err)
		}
	}
	return nil
}
