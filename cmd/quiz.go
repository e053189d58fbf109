package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/cardiz/internal/app"
	"github.com/abhisek/cardiz/internal/config"
	"github.com/abhisek/cardiz/internal/console"
	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/explain"
	"github.com/abhisek/cardiz/internal/llm"
	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/session"
	"github.com/abhisek/cardiz/internal/stats"
	"github.com/abhisek/cardiz/internal/store"
	"github.com/abhisek/cardiz/internal/telemetry"
)

// runQuiz loads the decks and stats, runs one session and saves the
// updated stats.
func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Plain && cfg.Mode == string(session.ModeFlash) {
		return errors.New("flash mode needs the terminal UI")
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	decks, err := deck.NewLoader(logger).Load(args...)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	// History is optional unless it also holds the stats.
	st, err := openStore(cfg)
	if err != nil {
		if cfg.Store == "sqlite" {
			return err
		}
		logger.Warn("history unavailable", "err", err)
	}
	if st != nil {
		defer st.Close()
	}

	statsStore, err := newStatsStore(cfg, st)
	if err != nil {
		return err
	}
	model, err := stats.Load(ctx, statsStore)
	if err != nil {
		return err
	}

	opts := []problemgen.Option{problemgen.WithFaces(cfg.Faces...)}
	if cfg.Line {
		opts = append(opts, problemgen.WithWeights())
	}
	pool := problemgen.NewPool(decks, model.Weight, cfg.Faces...)
	gen := problemgen.New(decks, pool, opts...)

	sessCfg := session.Config{
		Count:  cfg.Count,
		Mode:   session.Mode(cfg.Mode),
		Logger: logger,
	}
	if st != nil {
		sessCfg.Recorder = st.AnswerRepo()
	}
	sess := session.New(gen, model, sessCfg)
	logger.Info("session started", "session", sess.ID(), "mode", cfg.Mode, "decks", len(decks), "cards", pool.Len())

	if st != nil {
		names := make([]string, len(decks))
		for i, d := range decks {
			names[i] = d.Name
		}
		err := st.SessionRepo().Start(ctx, store.SessionStart{
			ID:        sess.ID(),
			Mode:      cfg.Mode,
			Decks:     names,
			Count:     cfg.Count,
			StartedAt: sess.StartedAt(),
		})
		if err != nil {
			logger.Warn("record session start", "err", err)
		}
	}

	runErr := runSession(ctx, cmd, cfg, sess, newExplainer(ctx, cfg, st, logger), logger)

	sum, err := finishSession(ctx, model, st, sess, logger)
	if err != nil {
		return errors.Join(runErr, err)
	}
	if runErr == nil {
		runErr = sum.Err
	}

	if sum.Mode != session.ModeFlash {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sum.Line())
		if rating := sum.Rating(); rating != "" {
			fmt.Fprintln(out, rating)
		}
	}
	return runErr
}

// finishSession saves the stats and closes the session's history row. It
// runs even after ctrl+c cancelled ctx, so the writes use a context that
// is never cancelled.
func finishSession(ctx context.Context, model *stats.Model, st *store.Store, sess *session.Session, logger *log.Logger) (*session.Summary, error) {
	ctx = context.WithoutCancel(ctx)

	if err := model.Save(ctx); err != nil {
		return nil, err
	}

	sum := sess.Summary()
	if st != nil {
		err := st.SessionRepo().End(ctx, store.SessionEnd{
			ID:      sum.SessionID,
			Phase:   sum.Phase.String(),
			Correct: sum.Correct,
			Total:   sum.Total,
			EndedAt: time.Now(),
		})
		if err != nil {
			logger.Warn("record session end", "err", err)
		}
	}
	logger.Info("session ended", "session", sum.SessionID, "phase", sum.Phase, "correct", sum.Correct, "total", sum.Total)
	return sum, nil
}

func runSession(ctx context.Context, cmd *cobra.Command, cfg config.Config, sess *session.Session, explainer explain.Explainer, logger *log.Logger) error {
	if !cfg.Plain {
		return app.Run(ctx, app.Options{
			Session:   sess,
			Explainer: explainer,
			Line:      cfg.Line,
			Logger:    logger,
		})
	}

	pr := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
	var err error
	if sess.Mode() == session.ModeType {
		_, err = pr.RunTyped(ctx, sess)
	} else {
		_, err = sess.Run(ctx, pr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newLogger(cfg config.Config) (*log.Logger, io.Closer, error) {
	if cfg.Plain && cfg.LogPath == "" {
		return telemetry.NewStderr(os.Stderr, cfg.LogLevel == "debug"), io.NopCloser(nil), nil
	}
	return telemetry.New(cfg.LogPath, cfg.LogLevel)
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

func newStatsStore(cfg config.Config, st *store.Store) (stats.Store, error) {
	if cfg.Store == "sqlite" {
		return st.CardStatsRepo(), nil
	}
	path := cfg.Stats
	if path == "" {
		p, err := stats.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return stats.NewFileStore(path), nil
}

// newExplainer returns nil when no LLM provider is configured.
func newExplainer(ctx context.Context, cfg config.Config, st *store.Store, logger *log.Logger) explain.Explainer {
	if !cfg.ExplainEnabled() {
		return nil
	}
	var sink llm.EventSink
	if st != nil {
		sink = st.EventRepo()
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, sink, logger)
	if err != nil {
		logger.Warn("explanations unavailable", "err", err)
		return nil
	}
	logger.Debug("explanations enabled", "provider", provider.Name(), "model", provider.ModelID())
	return explain.NewService(provider, explain.DefaultConfig())
}
