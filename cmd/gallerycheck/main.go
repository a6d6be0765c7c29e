// gallerycheck 在不打开窗口的情况下检查数据文件和编排配置
//
//	go run ./cmd/gallerycheck data/sample_people.tsv
//	go run ./cmd/gallerycheck -c data/choreography.yaml people.tsv
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/dataset"
)

func main() {
	if err := newCheckCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCheckCmd() *cobra.Command {
	var choreography string

	cmd := &cobra.Command{
		Use:          "gallerycheck [dataset...]",
		Short:        "Validate gallery datasets and choreography configs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && choreography == "" {
				return fmt.Errorf("nothing to check, pass a dataset or --choreography")
			}

			failed := 0
			if choreography != "" && !checkChoreography(cmd, choreography) {
				failed++
			}
			for _, path := range args {
				if !checkDataset(cmd, path) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed validation", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&choreography, "choreography", "c", "", "choreography config to validate")
	return cmd
}

func checkChoreography(cmd *cobra.Command, path string) bool {
	out := cmd.OutOrStdout()
	table, err := config.LoadChoreographyTable(path)
	if err != nil {
		fmt.Fprintf(out, "❌ %s: %v\n", path, err)
		return false
	}
	fmt.Fprintf(out, "✅ %s\n", path)
	for _, name := range config.TransitionNames() {
		cfg, _ := table.Get(name)
		fmt.Fprintf(out, "   %-10s %5d ms  max delay %4d ms\n", name, cfg.DurationMs, cfg.Cards.MaxDelayMs)
	}
	return true
}

func checkDataset(cmd *cobra.Command, path string) bool {
	out := cmd.OutOrStdout()
	records, err := dataset.LoadFile(path)
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", err)
		return false
	}

	departments := make(map[string]int)
	for _, r := range records {
		departments[r.Department]++
	}
	names := make([]string, 0, len(departments))
	for d := range departments {
		names = append(names, d)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "✅ %s: %d records\n", path, len(records))
	for _, d := range names {
		fmt.Fprintf(out, "   %-14s %d\n", d, departments[d])
	}
	return true
}
