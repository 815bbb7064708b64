// Package cmd contains all CLI commands for kword.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/kword/internal/config"
	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/engine"
	"github.com/f3rmion/kword/internal/logger"
	"github.com/f3rmion/kword/internal/romanize"
	"github.com/f3rmion/kword/internal/settings"
	"github.com/f3rmion/kword/internal/store"
	"github.com/f3rmion/kword/internal/tui"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kword",
	Short: "kword - guess the romanization of Korean words",
	Long: `kword is a terminal quiz for reading Korean.

Each round shows a Korean word and its meaning. Type its romanization;
Revised Romanization and McCune-Reischauer are both accepted by default.
You get three tries per word. Streaks and win rate are kept between runs.

Running 'kword' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/kword)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log to stderr at debug level")
	rootCmd.PersistentFlags().String("dict", "", "word list to play with (.csv or .apkg)")
	rootCmd.PersistentFlags().String("store", "", "storage driver: sqlite, yaml or memory")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("dict", rootCmd.PersistentFlags().Lookup("dict"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Warning: reading .env:", err)
	}

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("KWORD")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// session holds everything a command needs to play.
type session struct {
	configDir string
	cfg       *config.Config
	log       *zap.Logger
	kv        store.Store
	romanizer *romanize.Romanizer
	engine    *engine.Engine
	settings  *settings.Store

	dict    *dictionary.Dictionary
	dictErr error
}

// openSession loads config, storage and the dictionary. In interactive mode
// the logger never writes to the terminal.
func openSession(interactive bool) (*session, error) {
	dir := getConfigDir()
	if err := config.EnsureConfigDir(dir); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if p := viper.GetString("dict"); p != "" {
		cfg.DictionaryPath = p
	}
	if d := viper.GetString("store"); d != "" {
		cfg.Storage.Driver = d
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	if viper.GetBool("verbose") && !interactive && cfg.Log.File == "" {
		log = logger.Verbose()
	}

	schemes, err := romanize.ParseSchemes(cfg.Romanization.Schemes)
	if err != nil {
		return nil, fmt.Errorf("romanization config: %w", err)
	}
	r := romanize.New(schemes...)

	kv, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path, dir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	s := &session{
		configDir: dir,
		cfg:       cfg,
		log:       log,
		kv:        kv,
		romanizer: r,
		engine:    engine.New(kv, engine.WithLogger(log), engine.WithRomanizer(r)),
		settings:  settings.NewStore(kv),
	}

	s.dict, s.dictErr = dictionary.LoadFile(cfg.DictionaryPath)
	if s.dictErr != nil {
		log.Warn("loading dictionary", zap.String("path", cfg.DictionaryPath), zap.Error(s.dictErr))
	} else {
		log.Debug("dictionary loaded", zap.String("path", cfg.DictionaryPath), zap.Int("entries", s.dict.Size()))
	}

	return s, nil
}

// requireDict returns the loaded dictionary or an error suggesting how to
// get one.
func (s *session) requireDict() (*dictionary.Dictionary, error) {
	if s.dictErr != nil {
		return nil, fmt.Errorf("%w\nRun 'kword init' for a starter word list or pass --dict", s.dictErr)
	}
	return s.dict, nil
}

func (s *session) Close() {
	if err := s.kv.Close(); err != nil {
		s.log.Warn("closing storage", zap.Error(err))
	}
	s.log.Sync()
}

// runTUI launches the interactive TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	app, err := tui.NewApp(cmd.Context(), tui.Deps{
		Engine:    s.engine,
		Settings:  s.settings,
		Romanizer: s.romanizer,
		Dict:      s.dict,
		DictErr:   s.dictErr,
		Config:    s.cfg,
		ConfigDir: s.configDir,
		Log:       s.log,
	})
	if err != nil {
		return fmt.Errorf("starting TUI: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
