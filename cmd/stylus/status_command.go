package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stylus/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and catalog status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), status)
				}

				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				runningKind := statusWarn
				if status.Running {
					runningKind = statusOK
				}
				fmt.Fprintln(stdout, renderStatusLine("Running", runningKind, yesNo(status.Running), colorize))
				fmt.Fprintln(stdout, renderStatusLine("PID", statusInfo, strconv.Itoa(status.PID), colorize))
				if status.UptimeSecs > 0 {
					uptime := (time.Duration(status.UptimeSecs) * time.Second).String()
					fmt.Fprintln(stdout, renderStatusLine("Uptime", statusInfo, uptime, colorize))
				}
				fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, status.SocketPath, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Lock", statusInfo, status.LockPath, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Database", statusInfo, status.DatabasePath, colorize))
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Catalog", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, renderStatusLine("Records", statusInfo, strconv.Itoa(status.Records), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Indexed", statusInfo, strconv.Itoa(status.Indexed), colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit status as JSON")
	return cmd
}
