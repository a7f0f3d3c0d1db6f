package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/status"
)

func (a *app) statusCommand() *cobra.Command {
	var (
		input    string
		results  []string
		excluded []string
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Classify every file by the results of the tests that verify it",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			in, err := model.Load(input)
			if err != nil {
				return err
			}
			merged, err := loadResults(cmd.Context(), e, results, false)
			if err != nil {
				return err
			}
			if merged == nil {
				merged = result.New()
			}
			a.out.StatusReport(status.Build(in, merged, excluded))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "verification input document (verify_files.json)")
	flags.StringArrayVarP(&results, "result", "r", nil, "result document, local path or s3://bucket/key (repeatable)")
	flags.StringArrayVar(&excluded, "exclude", nil, "file to leave out of the report (repeatable)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
