package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genreCmd = &cobra.Command{
	Use:     "genres",
	Aliases: []string{"genre"},
	Short:   "Genre maintenance commands",
}

var listGenresCmd = &cobra.Command{
	Use:   "list",
	Short: "List all genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		genres, err := current.genres.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to get genres: %w", err)
		}
		if len(genres) == 0 {
			fmt.Fprintln(out(cmd), "No genres found.")
			return nil
		}

		fmt.Fprintf(out(cmd), "Genres (%d total):\n", len(genres))
		for _, g := range genres {
			fmt.Fprintf(out(cmd), "ID: %d | Name: %s\n", g.ID, g.Name)
		}
		return nil
	},
}

// dedupeGenresCmd folds genres whose names differ only in case or spacing.
// Run it before "migrate" on databases from releases without the unique index.
var dedupeGenresCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Merge duplicate genres into the lowest id",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		reports, err := current.genres.MergeDuplicates(ctx)
		if err != nil {
			return fmt.Errorf("failed to merge genres: %w", err)
		}
		if len(reports) == 0 {
			fmt.Fprintln(out(cmd), "No duplicate genres found.")
			return nil
		}

		removed := 0
		for _, r := range reports {
			warn.Fprintf(out(cmd), "%q: kept %d, merged %v\n", r.Name, r.KeptID, r.Removed)
			removed += len(r.Removed)
		}
		success.Fprintf(out(cmd), "Merged %d duplicate genres.\n", removed)
		return nil
	},
}

func init() {
	genreCmd.AddCommand(listGenresCmd)
	genreCmd.AddCommand(dedupeGenresCmd)
}
