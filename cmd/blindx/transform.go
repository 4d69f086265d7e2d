package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newTransformCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Blinds embeddings read as JSON from stdin",
		Long: `Reads one embedding as a JSON array of 384 numbers, or a batch as a JSON
array of such arrays, and writes the blinded result in the same shape.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}

			session, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer session.Clear()

			var out any
			if isBatch(data) {
				var batch [][]float64
				if err := json.Unmarshal(data, &batch); err != nil {
					return fmt.Errorf("failed to parse embedding batch: %w", err)
				}
				out, err = session.TransformBatch(cmd.Context(), batch)
			} else {
				var embedding []float64
				if err := json.Unmarshal(data, &embedding); err != nil {
					return fmt.Errorf("failed to parse embedding: %w", err)
				}
				out, err = session.Transform(cmd.Context(), embedding)
			}
			if err != nil {
				return err
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
		},
	}
}

// isBatch reports whether the JSON document is an array of arrays.
func isBatch(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return false
	}
	rest := bytes.TrimSpace(data[1:])
	return len(rest) > 0 && rest[0] == '['
}
