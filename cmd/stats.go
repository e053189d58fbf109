package cmd

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/stats"
	"github.com/abhisek/cardiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [deck paths...]",
	Short: "Show card stats, heaviest first",
	Long: "Show the recorded answers of every card, sorted by sampling weight. With deck paths,\n" +
		"only the cards of those decks are listed, including cards never answered.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		var st *store.Store
		if cfg.Store == "sqlite" {
			if st, err = openStore(cfg); err != nil {
				return err
			}
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

		rows := statRows(model, nil)
		if len(args) > 0 {
			decks, err := deck.LoadPaths(args...)
			if err != nil {
				return err
			}
			ids := make([]string, 0)
			for _, dc := range deck.Flatten(decks) {
				ids = append(ids, dc.ID(decks))
			}
			rows = statRows(model, ids)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No stats recorded yet.")
			return nil
		}
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}

		fmt.Fprintf(out, "%-40s  %8s  %8s  %8s\n", "Card", "Correct", "Wrong", "Weight")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, r := range rows {
			fmt.Fprintf(out, "%-40s  %8s  %8s  %8.3f\n",
				truncate(r.id, 40),
				humanize.Comma(int64(r.stats.Correct)),
				humanize.Comma(int64(r.stats.Incorrect)),
				r.weight,
			)
		}
		return nil
	},
}

type statRow struct {
	id     string
	stats  stats.CardStats
	weight float64
}

// statRows returns rows for ids, or for every recorded card when ids is
// nil, sorted by weight descending then id.
func statRows(model *stats.Model, ids []string) []statRow {
	if ids == nil {
		for id := range model.Snapshot() {
			ids = append(ids, id)
		}
	}
	rows := make([]statRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, statRow{id: id, stats: model.Stats(id), weight: model.Weight(id)})
	}
	slices.SortFunc(rows, func(a, b statRow) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return rows
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 0, "Show at most this many cards (0 means all)")
}
