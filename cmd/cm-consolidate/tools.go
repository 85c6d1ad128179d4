package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"content-migrator/internal/exportio"
	"content-migrator/internal/signature"
)

func newNormalizeUIDCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-uid RAW...",
		Short: "Print the canonical form of raw identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := global.load(cmd)
			if err != nil {
				return err
			}

			norm, err := cfg.Normalizer()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, raw := range args {
				fmt.Fprintf(out, "%s\t%s\n", raw, norm.Normalize(raw))
			}

			return nil
		},
	}
}

func newSignatureCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "signature",
		Short: "Print the structural signature of every field of every model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := exportio.ReadFile(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range models {
				for i, f := range m.FieldMapping {
					if f == nil {
						continue
					}

					fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", m.TargetUID, i, f.UID(), signature.Of(f))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&input, "in", "", "Input export file")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
