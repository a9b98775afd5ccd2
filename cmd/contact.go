package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/reqhiem/website/lite"
	"github.com/reqhiem/website/notify"
)

func newContact() lite.Registerable[Config] {
	return &lite.Command[Config, notify.Submission]{
		Name:  "contact",
		Short: "Send a contact form submission through the Brevo relay",
		Long:  "Useful to verify the relay configuration without going through the website.",
		Flags: func(flags *pflag.FlagSet, req *notify.Submission) {
			flags.StringVar(&req.Name, "name", "", "sender name")
			flags.StringVar(&req.Email, "email", "", "sender email")
			flags.StringVar(&req.Message, "message", "", "message body")
		},
		Run: func(cmd *lite.Root[Config], req *notify.Submission) error {
			if !req.Valid() {
				return fmt.Errorf("all of --name, --email and --message are required")
			}
			mailer := notify.NewMailer(&cmd.Config.Brevo)
			err := mailer.Send(cmd.Context(), *req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sent")
			return nil
		},
	}
}
