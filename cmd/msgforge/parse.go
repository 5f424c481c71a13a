package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mqspecgen/msgforge/internal/config"
	"github.com/mqspecgen/msgforge/spec"
	"github.com/mqspecgen/msgforge/workbook"
)

func newParseCmd(shared *sharedFlags) *cobra.Command {
	var (
		sharedHeaderPath string
		outputPath       string
	)

	cmd := &cobra.Command{
		Use:   "parse <workbook>",
		Short: "Parse a workbook into the intermediate tree and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, shared, sharedHeaderPath, outputPath, args[0])
		},
	}

	cmd.Flags().StringVar(&sharedHeaderPath, "shared-header", "", "path to a separately supplied shared-header workbook")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the intermediate tree here instead of stdout")

	return cmd
}

func runParse(cmd *cobra.Command, shared *sharedFlags, sharedHeaderPath, outputPath, sourcePath string) error {
	cfg, err := resolveConfig(cmd, shared.configFile, shared.cfgFlags, shared.auditFlags, shared.logCfg)
	if err != nil {
		return err
	}

	if err := installLogger(shared.logCfg); err != nil {
		return err
	}

	it, err := parseWorkbooks(sourcePath, sharedHeaderPath, cfg)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal intermediate tree: %w", err)
	}

	encoded = append(encoded, '\n')

	if outputPath == "" || outputPath == "-" {
		_, err = os.Stdout.Write(encoded)
	} else {
		err = os.WriteFile(outputPath, encoded, 0o644)
	}

	if err != nil {
		return fmt.Errorf("write intermediate tree: %w", err)
	}

	return nil
}

func parseWorkbooks(sourcePath, sharedHeaderPath string, cfg config.Config) (*spec.IntermediateTree, error) {
	main, err := workbook.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	defer main.Close()

	var shared *workbook.Workbook

	if sharedHeaderPath != "" {
		shared, err = workbook.Open(sharedHeaderPath)
		if err != nil {
			return nil, err
		}
		defer shared.Close()
	}

	return spec.Parse(main, shared, spec.Options{
		SourcePath:       sourcePath,
		SharedHeaderPath: sharedHeaderPath,
		MaxNestingDepth:  cfg.Parser.MaxNestingDepth,
	})
}
