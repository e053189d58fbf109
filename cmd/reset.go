package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cardiz/internal/stats"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every card's stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprint(out, "Reset all card stats? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if cfg.Store == "sqlite" {
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.CardStatsRepo().Reset(ctx); err != nil {
				return fmt.Errorf("reset stats: %w", err)
			}
		} else {
			statsStore, err := newStatsStore(cfg, nil)
			if err != nil {
				return err
			}
			if err := stats.NewModel(statsStore).Save(ctx); err != nil {
				return err
			}
		}

		fmt.Fprintln(out, "Card stats reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
