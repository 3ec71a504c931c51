package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylus/internal/catalog"
	"stylus/internal/config"
	"stylus/internal/ipc"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the catalog with records from a JSON file",
		Long: `Replace the entire catalog with the records read from a JSON file.
The file holds an array of record objects. Existing records are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			var records []*catalog.Record
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				count, err := client.SetAll(records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records\n", count)
				return nil
			})
		},
	}
	return cmd
}
