package cli

import (
	"fmt"

	"github.com/agentx-labs/skelgen/internal/content"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(contentCmd)
}

var contentCmd = &cobra.Command{
	Use:   "content <filename>...",
	Short: "Print the placeholder content generated for file names",
	Long: `Print the stub content the generator writes for each file name. The
content is chosen by extension; unknown extensions get a generic placeholder.

Example:
  skelgen content deploy_web.sh lang_mapping.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for i, name := range args {
			if len(args) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "==> %s <==\n", name)
			}
			if _, err := w.Write(content.Render(content.ForFile(name))); err != nil {
				return err
			}
		}
		return nil
	},
}
