package cmd

import (
	"context"

	"github.com/databricks/databricks-sdk-go"
	"github.com/spf13/pflag"

	"github.com/reqhiem/website/github"
	"github.com/reqhiem/website/insights"
	"github.com/reqhiem/website/lite"
	"github.com/reqhiem/website/notify"
)

const productName = "website"
const productVersion = "0.1.0"

type Config struct {
	Username string
	Months   int
	GitHub   github.Config
	Brevo    notify.Config
	SiteFile string
	PagesDir string
}

func (c *Config) insights() *insights.Service {
	return &insights.Service{
		Login:  c.Username,
		Months: c.Months,
		GitHub: github.NewClient(&c.GitHub),
	}
}

func Run(ctx context.Context) {
	databricks.WithProduct(productName, productVersion)
	lite.New[Config](ctx, lite.Init[Config]{
		Name:      productName,
		Version:   productVersion,
		Short:     "Backend for the bilingual portfolio website",
		EnvPrefix: "WEBSITE",
		Bind: func(flags *pflag.FlagSet, cfg *Config) {
			flags.StringVar(&cfg.Username, "username", "reqhiem", "GitHub login behind the insights widget")
			flags.IntVar(&cfg.Months, "months", insights.DefaultMonths, "Width of the activity series in months (1..12)")
			flags.StringVar(&cfg.GitHub.Pat, "github-token", "", "GitHub Personal Access Token (optional, widget degrades without it)")
			flags.StringVar(&cfg.Brevo.APIKey, "brevo-api-key", "", "Brevo API key for the contact relay")
			flags.StringVar(&cfg.Brevo.ContactEmail, "contact-email", "", "Address receiving contact form submissions")
			flags.StringVar(&cfg.SiteFile, "site-file", "content/site.yml", "Path to the site data file")
			flags.StringVar(&cfg.PagesDir, "pages-dir", "content/pages", "Directory with markdown pages")
		},
	}).With(
		newServe(),
		newInsights(),
		newRepos(),
		newContact(),
	).Run(ctx)
}
