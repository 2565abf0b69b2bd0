package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the visitor log as JSON",
	Long: `Writes every visitor summary as a JSON array, to stdout or to a file
with --out. The field names match the persisted session format, so exports
from different machines can be merged with plain tooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sums, err := st.LoadSummaries()
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(sums, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode visitor log: %w", err)
		}
		data = append(data, '\n')

		if exportOut == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Exported %d visitors to %s\n", len(sums), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
}
