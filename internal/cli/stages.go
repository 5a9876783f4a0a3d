package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/protosim/internal/sim"
)

// StageInfo describes one operation stage.
type StageInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NewStagesCommand creates the stages command.
func NewStagesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stages",
		Short:         "List the operation stages in order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			var infos []StageInfo
			for i, name := range sim.Stages() {
				infos = append(infos, StageInfo{Index: i + 1, Name: name})
			}
			return formatter.Success(infos, func(w io.Writer) {
				for _, s := range infos {
					fmt.Fprintf(w, "%2d. %s\n", s.Index, s.Name)
				}
			})
		},
	}
}
