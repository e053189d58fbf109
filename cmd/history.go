package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/cardiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.SessionRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-16s  %-5s  %-9s  %-15s  %7s  %s\n",
			"ID", "Started", "Mode", "Phase", "Score", "Time", "Decks")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, r := range records {
			fmt.Fprintln(out, historyLine(r, time.Now()))
		}
		return nil
	},
}

func historyLine(r store.SessionRecord, now time.Time) string {
	phase := r.Phase
	if r.EndedAt.IsZero() {
		phase = "unfinished"
	}
	score := fmt.Sprintf("%d/%d", r.Correct, r.Total)
	if r.Total > 0 {
		score += fmt.Sprintf(" (%.0f%%)", float64(r.Correct)*100/float64(r.Total))
	}
	elapsed := "-"
	if d := r.Duration(); d > 0 {
		elapsed = fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%-8s  %-16s  %-5s  %-9s  %-15s  %7s  %s",
		shortID(r.ID),
		humanize.RelTime(r.StartedAt, now, "ago", "from now"),
		r.Mode,
		phase,
		score,
		elapsed,
		strings.Join(r.Decks, ", "),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
