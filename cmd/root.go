package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/abhisek/quizme/internal/config"
	"github.com/abhisek/quizme/internal/journal"
	"github.com/abhisek/quizme/internal/leitner"
	"github.com/abhisek/quizme/internal/session"
	"github.com/abhisek/quizme/internal/source"
	"github.com/abhisek/quizme/internal/ui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNoQuestionFile = errors.New("no question file: pass --questions or set questions in the config file")

func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "quizme NAME",
		Short: "Adaptive flashcard review in the terminal",
		Long: "quizme runs an adaptive review session over a JSON question file. Questions move between " +
			"Leitner boxes as you answer them: missed questions come back after a minute, correct ones " +
			"wait longer each time until they are known.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuiz(cmd, v, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a TOML config file (default $XDG_CONFIG_HOME/quizme/config.toml)")
	pf.Bool("color", true, "Use colored output")
	pf.Bool("verbose", false, "Log debug details to stderr")
	pf.String("journal", "", "SQLite DSN for the session journal (default: in-memory)")

	f := rootCmd.Flags()
	f.String("questions", "", "Path to the question data file")
	f.Bool("show-box-counts", true, "Print box counts after every answer")

	bindFlags(v, rootCmd, map[string]string{
		config.KeyColor:         "color",
		config.KeyVerbose:       "verbose",
		config.KeyJournalDSN:    "journal",
		config.KeyQuestions:     "questions",
		config.KeyShowBoxCounts: "show-box-counts",
	})

	rootCmd.AddCommand(
		newVersionCmd(),
		newValidateCmd(),
		newConfigCmd(v),
	)

	return rootCmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		// Lookup only fails on a typo in the table above.
		if err := v.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind flag %q: %v", name, err))
		}
	}
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}

// runQuiz loads the question file, builds the boxes and runs one session.
func runQuiz(cmd *cobra.Command, v *viper.Viper, name string) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	if cfg.Questions == "" {
		return errNoQuestionFile
	}

	bank, err := source.Load(cfg.Questions)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	reportDiagnostics(stderr, bank.Diagnostics)

	j, err := journal.Open(cfg.JournalDSN)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	palette := theme.For(cfg.Color)
	logger := newLogger(stderr, cfg.Verbose)
	console := session.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), palette)

	sink := j.SnapshotSink(ctx)
	if cfg.ShowBoxCounts {
		sink = leitner.MultiSink(sink, session.BoxCountSink(console, palette))
	}
	boxes := leitner.NewManager(leitner.WithSink(sink))
	for _, q := range bank.Questions {
		boxes.Register(q)
	}
	logger.Debug("session ready", "session", j.SessionID(), "questions", boxes.Len(), "skipped", len(bank.Diagnostics))

	console.Say(palette.Title.Render(fmt.Sprintf("Welcome, %s! Let's start your adaptive quiz session.", name)))

	start := time.Now()
	ctrl := session.New(boxes, console,
		session.WithRecorder(j),
		session.WithPalette(palette),
		session.WithLogger(logger),
	)
	res, err := ctrl.Run(ctx)
	if err != nil {
		return fmt.Errorf("run session: %w", err)
	}

	totals, err := j.Summary(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "warning: failed to summarize session: %v\n", err)
		return nil
	}
	console.Say("")
	console.Say(session.BuildSummary(res, totals, boxes.Snapshot(), time.Since(start)).Render(palette))
	return nil
}

func reportDiagnostics(w io.Writer, diags []source.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
