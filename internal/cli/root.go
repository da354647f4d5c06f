package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/agentx-labs/skelgen/internal/branding"
	"github.com/agentx-labs/skelgen/internal/config"
	"github.com/agentx-labs/skelgen/internal/layout"
	"github.com/agentx-labs/skelgen/internal/scaffold"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

func init() {
	f := rootCmd.PersistentFlags()
	f.String("output-dir", ".", "Directory in which the output root is created")
	f.String("on-collision", string(scaffold.CollisionOverwrite), "What to do when the layout writes a path twice: overwrite or error")
	f.String("layout", "", "Layout YAML file to use instead of the built-in layout")
	f.Bool("quiet", false, "Only print the completion line")
	bindFlags()
}

// bindFlags lets the persistent flags override config keys.
func bindFlags() {
	f := rootCmd.PersistentFlags()
	_ = viper.BindPFlag(config.KeyOutputDir, f.Lookup("output-dir"))
	_ = viper.BindPFlag(config.KeyOnCollision, f.Lookup("on-collision"))
	_ = viper.BindPFlag(config.KeyLayoutFile, f.Lookup("layout"))
	_ = viper.BindPFlag(config.KeyQuiet, f.Lookup("quiet"))
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` wipes and regenerates a placeholder repository skeleton: top-level
documents, a nested directory tree with .gitkeep markers, and stub files whose
content is chosen by extension.

Run without arguments to generate the built-in layout in the current directory.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.OutOrStdout())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runGenerate(w io.Writer) error {
	s := config.Current()

	policy, err := scaffold.ParseCollisionPolicy(s.OnCollision)
	if err != nil {
		return err
	}

	l, err := loadLayout(s.LayoutFile)
	if err != nil {
		return err
	}

	gen := scaffold.New(osfs.New(s.OutputDir), w, scaffold.Options{
		BaseDir:     s.OutputDir,
		OnCollision: policy,
		Quiet:       s.Quiet,
	})
	result, err := gen.Generate(l)
	if err != nil {
		return err
	}

	printWarnings(w, result.Warnings)
	return nil
}

func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return layout.Default()
	}
	return layout.Load(path)
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "\nWarnings:")
	for _, msg := range warnings {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}
