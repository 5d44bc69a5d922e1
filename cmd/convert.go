package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/accessblock/internal/bionic"
	"github.com/ziadkadry99/accessblock/internal/convert"
	"github.com/ziadkadry99/accessblock/internal/progress"
	"github.com/ziadkadry99/accessblock/internal/region"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file or glob>...",
	Short: "Write bionic reading versions of HTML and Markdown files",
	Long: `Transforms the content region of each input through the bionic reading
provider and writes <name>.bionic.html next to it, or into --out.
Patterns support ** and are expanded by accessblock, so quote them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out", "", "output directory (default: next to each input)")
	convertCmd.Flags().String("region", region.DefaultID, "id of the element to transform; the body is used when absent")
	convertCmd.Flags().Int("concurrency", 4, "max parallel provider calls")
	convertCmd.Flags().Int("fixation", bionic.DefaultFixation, fmt.Sprintf("fixation strength (%d-%d)", bionic.MinFixation, bionic.MaxFixation))
	convertCmd.Flags().Int("saccade", bionic.DefaultSaccade, fmt.Sprintf("saccade spacing (%d-%d)", bionic.MinSaccade, bionic.MaxSaccade))
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	regionID, _ := cmd.Flags().GetString("region")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	fixation, _ := cmd.Flags().GetInt("fixation")
	saccade, _ := cmd.Flags().GetInt("saccade")

	controls := bionic.Controls{Fixation: fixation, Saccade: saccade}
	if err := controls.Validate(); err != nil {
		return err
	}

	files, err := convert.Expand(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no HTML or Markdown files in %v", args)
	}

	converter := convert.New(newTransformer(cfg, logger), convert.Options{
		Region:      regionID,
		OutDir:      outDir,
		Concurrency: concurrency,
		Controls:    controls,
		Labels:      newLabels(cfg),
	}, logger.WithField("command", "convert"))

	results, err := converter.Run(cmd.Context(), files, progress.NewReporter("Converting"))
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.WithError(r.Err).WithField("file", r.Input).Error("conversion failed")
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "  %s -> %s\n", r.Input, r.Output)
		}
	}
	fmt.Fprintf(os.Stderr, "Converted %d of %d files\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d files failed to convert", failed)
	}
	return nil
}
