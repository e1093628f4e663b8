package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/phoenyx/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a phoenyx manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := manifest.Locate(args[0])
	if err != nil {
		return fmt.Errorf("locate manifest: %w", err)
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	errors := manifest.Validate(m, filepath.Dir(path))
	if len(errors) == 0 {
		fmt.Fprintln(w, "  ✓ Manifest is valid")
		fmt.Fprintf(w, "  ✓ %d assets, %d variants, all files present\n", m.Stats.TotalAssets, m.Stats.TotalVariants)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}
