package cli

import (
	"fmt"
	"time"

	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/jrsteele09/callwa-dashboard/session"
	"github.com/spf13/cobra"
)

func newWhoAmICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}

			snapshot, err := rt.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			user := snapshot.User
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Email:\t%s\n", user.Email)
			fmt.Fprintf(tw, "User ID:\t%d\n", user.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", orDash(utils.Value(user.FullName)))
			fmt.Fprintf(tw, "Role:\t%s\n", orDash(utils.Value(user.Role)))
			if user.TenantID != nil {
				fmt.Fprintf(tw, "Tenant ID:\t%d\n", *user.TenantID)
			} else {
				fmt.Fprintf(tw, "Tenant ID:\t%s\n", dash)
			}
			fmt.Fprintf(tw, "Active:\t%t\n", user.IsActive)
			if expiry, ok := session.TokenExpiry(snapshot.Token); ok {
				fmt.Fprintf(tw, "Token expires:\t%s (%s)\n", expiry.Local().Format(time.DateTime), time.Until(expiry).Round(time.Minute))
			}
			return tw.Flush()
		},
	}
}
