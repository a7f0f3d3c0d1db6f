package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) mergeCommand() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "merge-result <result>...",
		Short: "Merge result documents left to right, later documents winning",
		Long: `Merge result documents, for example the outputs of sharded runs.
For each file the later document wins unless only the earlier entry is newest.`,
		Args: positional(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, locations []string) error {
			e, err := a.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			merged, err := loadResults(cmd.Context(), e, locations, false)
			if err != nil {
				return err
			}
			if err := a.writeResult(cmd.Context(), e, outputPath, merged); err != nil {
				return err
			}
			if outputPath != "" {
				a.out.Info("merged %d result documents into %s (%d files)", len(locations), outputPath, len(merged.Files))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the merged result here instead of stdout")
	return cmd
}
