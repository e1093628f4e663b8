package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/preset"
	"github.com/spf13/cobra"
)

var (
	presetsFile     string
	presetsCategory string
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List edit presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := preset.LoadCatalog(presetsFile)
		if err != nil {
			return err
		}
		p, ok := c.Get(args[0])
		if !ok {
			return fmt.Errorf("preset %q: %w", args[0], errs.ErrUnknownKind)
		}
		return preset.Encode(cmd.OutOrStdout(), ".yaml", []preset.Preset{p})
	},
}

var presetsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every preset to a .yaml, .toml or .json file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := preset.LoadCatalog(presetsFile)
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := preset.Encode(f, filepath.Ext(args[0]), c.All()); err != nil {
			return err
		}
		return f.Close()
	},
}

func init() {
	presetsCmd.PersistentFlags().StringVar(&presetsFile, "presets", "", "extra presets file (.yaml, .toml, .json)")
	presetsCmd.Flags().StringVarP(&presetsCategory, "category", "c", "", "only list one category")
	presetsCmd.AddCommand(presetsShowCmd, presetsExportCmd)
	rootCmd.AddCommand(presetsCmd)
}

func runPresetsList(cmd *cobra.Command, _ []string) error {
	c, err := preset.LoadCatalog(presetsFile)
	if err != nil {
		return err
	}
	list := c.All()
	if presetsCategory != "" {
		cat, err := preset.ParseCategory(presetsCategory)
		if err != nil {
			return err
		}
		list = c.ByCategory(cat)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tCATEGORY\tFORMAT\tFILTER\tEFFECTS")
	for _, p := range list {
		st := p.State()
		effects := "-"
		if n := len(st.Effects); n > 0 {
			effects = st.Effects[0].Kind.String()
			if n > 1 {
				effects += fmt.Sprintf(" +%d", n-1)
			}
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", p.Name, p.Category, p.Format, st.FilterString(), effects)
	}
	return tw.Flush()
}
