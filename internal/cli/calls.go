package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newCallsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calls",
		Short: "List recent calls and whether they triggered automation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}

			calls, err := rt.client.ListCalls(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load calls: %w", err)
			}
			if len(calls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No calls yet.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "TIME\tDIRECTION\tFROM\tTO\tSTATUS\tDURATION\tAUTOMATION")
			for _, c := range calls {
				when := dash
				if c.StartedAt != nil {
					when = c.StartedAt.Local().Format(time.DateTime)
				} else if c.CreatedAt != nil {
					when = c.CreatedAt.Local().Format(time.DateTime)
				}
				duration := dash
				if c.DurationSeconds != nil {
					duration = strconv.Itoa(*c.DurationSeconds) + "s"
				}
				automation := "no"
				if c.ShouldTriggerAutomation {
					automation = "queued"
				}
				status := c.Status
				if status == "" {
					status = "unknown"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					when, orDash(c.Direction), orDash(c.FromNumber), orDash(c.ToNumber), status, duration, automation)
			}
			return tw.Flush()
		},
	}
}
