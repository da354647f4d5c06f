package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agentx-labs/skelgen/internal/config"
	"github.com/agentx-labs/skelgen/internal/scaffold"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var planFormat string

func init() {
	planCmd.Flags().StringVar(&planFormat, "format", "tree", "Output format: tree, yaml, or json")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what would be generated without touching disk",
	Long: `Print every directory and file the generator would create, in write order,
followed by any path written more than once.

Examples:
  skelgen plan
  skelgen plan --format yaml --layout ./my-layout.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadLayout(config.Current().LayoutFile)
		if err != nil {
			return err
		}
		plan, err := scaffold.BuildPlan(l)
		if err != nil {
			return err
		}
		return writePlan(cmd.OutOrStdout(), planFormat, plan)
	},
}

// planView is the serialized form of a plan: modes as octal strings and
// marker files spelled out.
type planView struct {
	Root       string      `yaml:"root" json:"root"`
	Entries    []entryView `yaml:"entries" json:"entries"`
	Collisions []string    `yaml:"collisions,omitempty" json:"collisions,omitempty"`
}

type entryView struct {
	Kind string `yaml:"kind" json:"kind"`
	Path string `yaml:"path" json:"path"`
	Mode string `yaml:"mode" json:"mode"`
}

func newPlanView(p *scaffold.Plan) planView {
	v := planView{Root: p.Root, Collisions: p.Collisions()}
	for _, e := range p.Entries {
		v.Entries = append(v.Entries, entryView{
			Kind: string(e.Kind),
			Path: e.Path,
			Mode: fmt.Sprintf("%04o", e.Mode.Perm()),
		})
		if e.Kind == scaffold.KindDirectory {
			v.Entries = append(v.Entries, entryView{
				Kind: "marker",
				Path: e.Path + "/" + scaffold.MarkerName,
				Mode: "0644",
			})
		}
	}
	return v
}

func writePlan(w io.Writer, format string, p *scaffold.Plan) error {
	v := newPlanView(p)

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding plan as YAML: %w", err)
		}
		return enc.Close()

	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding plan as JSON: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil

	case "tree":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range v.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind, e.Mode, e.Path)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if len(v.Collisions) > 0 {
			fmt.Fprintln(w, "\nCollisions:")
			for _, c := range v.Collisions {
				fmt.Fprintf(w, "  - %s\n", c)
			}
		}
		return nil
	}

	return fmt.Errorf("unknown format %q: must be tree, yaml, or json", format)
}
