package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/spf13/pflag"

	"github.com/reqhiem/website/content"
	"github.com/reqhiem/website/httpd"
	"github.com/reqhiem/website/lite"
	"github.com/reqhiem/website/notify"
)

func newServe() lite.Registerable[Config] {
	type serveRequest struct {
		addr string
	}
	return &lite.Command[Config, serveRequest]{
		Name:  "serve",
		Short: "Serve the portfolio API over HTTP",
		Flags: func(flags *pflag.FlagSet, req *serveRequest) {
			flags.StringVar(&req.addr, "addr", ":8080", "listen address")
		},
		Run: func(cmd *lite.Root[Config], req *serveRequest) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			site, err := content.Load(cmd.Config.SiteFile)
			if err != nil {
				// the API stays useful without static content
				logger.Warnf(ctx, "site data unavailable: %s", err)
			}
			pages, err := content.LoadPages(cmd.Config.PagesDir)
			if err != nil {
				logger.Warnf(ctx, "pages unavailable: %s", err)
			}
			mailer := notify.NewMailer(&cmd.Config.Brevo)
			if !mailer.Configured() {
				logger.Warnf(ctx, "contact relay not configured, /api/contact will answer 500")
			}
			server := &httpd.Server{
				Insights: cmd.Config.insights(),
				Mailer:   mailer,
				Site:     site,
				Pages:    pages,
			}
			return server.Serve(ctx, req.addr)
		},
	}
}
