package cli

import (
	"fmt"
	"io"

	"github.com/jrsteele09/callwa-dashboard/api"
	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the automation settings",
	}
	cmd.AddCommand(newSettingsShowCmd(opts))
	cmd.AddCommand(newSettingsSetCmd(opts))
	return cmd
}

func newSettingsShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the automation settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}

			settings, err := rt.client.GetAutomationSettings(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load automation settings: %w", err)
			}
			return printSettings(cmd.OutOrStdout(), settings)
		},
	}
}

func newSettingsSetCmd(opts *options) *cobra.Command {
	var (
		enabled     bool
		minDuration int
		delay       int
		sendMode    string
		include     string
		exclude     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more automation settings",
		Long: `Send only the flags given on the command line to the backend, for example:

  dashboard settings set --enabled=false
  dashboard settings set --min-duration 30 --send-mode thank_you_only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var update api.AutomationSettingsUpdate
			if flags.Changed("enabled") {
				update.Enabled = utils.Ptr(enabled)
			}
			if flags.Changed("min-duration") {
				update.MinCallDurationSeconds = utils.Ptr(minDuration)
			}
			if flags.Changed("delay") {
				update.DelaySeconds = utils.Ptr(delay)
			}
			if flags.Changed("send-mode") {
				update.SendMode = utils.Ptr(sendMode)
			}
			if flags.Changed("include-categories") {
				update.IncludeCategories = utils.Ptr(include)
			}
			if flags.Changed("exclude-categories") {
				update.ExcludeCategories = utils.Ptr(exclude)
			}
			if err := update.Validate(); err != nil {
				return err
			}

			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}

			saved, err := rt.client.UpdateAutomationSettings(cmd.Context(), update)
			if err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved successfully.")
			return printSettings(cmd.OutOrStdout(), saved)
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", true, "Enable or pause automation")
	cmd.Flags().IntVar(&minDuration, "min-duration", 0, "Minimum call duration in seconds")
	cmd.Flags().IntVar(&delay, "delay", 0, "Delay before sending, in seconds")
	cmd.Flags().StringVar(&sendMode, "send-mode", "", "One of thank_you_only, thank_you_and_full_catalog, thank_you_and_filtered_catalog")
	cmd.Flags().StringVar(&include, "include-categories", "", "Comma separated categories to include")
	cmd.Flags().StringVar(&exclude, "exclude-categories", "", "Comma separated categories to exclude")

	return cmd
}

func printSettings(w io.Writer, s *api.AutomationSettings) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Enabled:\t%t\n", s.Enabled)
	fmt.Fprintf(tw, "Minimum duration:\t%ds\n", s.MinCallDurationSeconds)
	if s.DelaySeconds != nil {
		fmt.Fprintf(tw, "Delay:\t%ds\n", *s.DelaySeconds)
	} else {
		fmt.Fprintf(tw, "Delay:\t%s\n", dash)
	}
	fmt.Fprintf(tw, "Send mode:\t%s\n", orDash(utils.Value(s.SendMode)))
	fmt.Fprintf(tw, "Include categories:\t%s\n", orDash(utils.Value(s.IncludeCategories)))
	fmt.Fprintf(tw, "Exclude categories:\t%s\n", orDash(utils.Value(s.ExcludeCategories)))
	return tw.Flush()
}
