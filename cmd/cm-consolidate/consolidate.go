package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"content-migrator/internal/consolidate"
	"content-migrator/internal/exportio"
	"content-migrator/internal/model"
)

type consolidateFlags struct {
	inputs []string
	outDir string
	dump   bool
}

func newConsolidateCmd(global *globalFlags) *cobra.Command {
	flags := &consolidateFlags{}

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge content models from one or more exports",
		Long: `Reads each --in export, consolidates its content models and writes the
result under <out>/<input name>/ as schema.json plus chunk files.
Several inputs are consolidated concurrently and independently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(cmd, global, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.inputs, "in", nil, "Input export file (repeatable)")
	cmd.Flags().StringVar(&flags.outDir, "out", "", "Output directory")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "Dump merged models at debug level")

	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runConsolidate(cmd *cobra.Command, global *globalFlags, flags *consolidateFlags) error {
	cfg, log, err := global.load(cmd)
	if err != nil {
		return err
	}

	names, err := outputNames(flags.inputs)
	if err != nil {
		return err
	}

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}

	inputs := make([][]model.ContentModel, 0, len(flags.inputs))

	for _, path := range flags.inputs {
		models, err := exportio.ReadFile(path)
		if err != nil {
			return err
		}

		log.Infof("Read %d content models from %s", len(models), path)
		inputs = append(inputs, models)
	}

	var results []*consolidate.Result

	if len(inputs) == 1 {
		results = []*consolidate.Result{engine.Consolidate(inputs[0])}
	} else {
		results, err = engine.RunBatch(cmd.Context(), inputs, cfg.Output.Workers)
		if err != nil {
			return fmt.Errorf("batch consolidation failed: %w", err)
		}
	}

	for i, res := range results {
		log.Diagnostics(res.Diagnostics)

		if flags.dump {
			log.Dump("merged content models of "+flags.inputs[i], res.Models)
		}

		log.Infof("Consolidated %d content models of %s into %d (type order %v)",
			len(inputs[i]), flags.inputs[i], len(res.Models), res.TypeOrder)

		w := exportio.NewWriter(filepath.Join(flags.outDir, names[i]), cfg.Output.ChunkSize, log)

		_, err = w.Write(res.Models)
		if err != nil {
			return err
		}
	}

	return nil
}

// outputNames derives one output directory name per input from its base name
// without extension.
func outputNames(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input files given")
	}

	seen := make(map[string]string, len(inputs))
	names := make([]string, 0, len(inputs))

	for _, path := range inputs {
		base := filepath.Base(path)
		name := strings.TrimSuffix(base, filepath.Ext(base))

		if name == "" || name == "." || name == string(filepath.Separator) {
			return nil, fmt.Errorf("cannot derive output name from input %q", path)
		}

		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("inputs %q and %q both write to output %q", prev, path, name)
		}

		seen[name] = path
		names = append(names, name)
	}

	return names, nil
}
