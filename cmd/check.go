package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/cardiz/internal/deck"
)

var checkCmd = &cobra.Command{
	Use:   "check <deck paths...>",
	Short: "Validate decks and print their card counts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decks, err := deck.LoadPaths(args...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := 0
		for _, d := range decks {
			fmt.Fprintf(out, "%-24s  %6s cards  faces: %v\n", d.Name, humanize.Comma(int64(len(d.Cards))), d.Faces)
			total += len(d.Cards)
		}
		fmt.Fprintf(out, "\n%d %s, %s cards OK\n", len(decks), plural(len(decks), "deck", "decks"), humanize.Comma(int64(total)))
		return nil
	},
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
