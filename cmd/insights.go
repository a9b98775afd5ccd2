package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/nwidger/jsoncolor"
	"github.com/spf13/pflag"

	"github.com/reqhiem/website/lite"
	"github.com/reqhiem/website/render"
)

const insightsTemplate = `{{.Profile.Login}} ({{.Profile.Name}}) — {{.Profile.Followers}} followers
repos={{.Summary.TotalRepos}} stars={{.Summary.TotalStars}} forks={{.Summary.TotalForks}}

Languages{{range .LanguagesChart}}
  {{.Name}}	{{.Bytes}}	{{.Percent}}%{{end}}

Activity{{range .ActivityPoints}}
  {{.Month}}	{{.Count}}{{end}}
`

func newInsights() lite.Registerable[Config] {
	type insightsRequest struct {
		asJSON bool
	}
	return &lite.Command[Config, insightsRequest]{
		Name:  "insights",
		Short: "Fetch and show the GitHub insights the website renders",
		Flags: func(flags *pflag.FlagSet, req *insightsRequest) {
			flags.BoolVar(&req.asJSON, "json", false, "print raw JSON")
		},
		Run: func(cmd *lite.Root[Config], req *insightsRequest) error {
			updates := render.Spinner(&cmd.Command)
			updates <- fmt.Sprintf("fetching insights for %s", cmd.Config.Username)
			data := cmd.Config.insights().Fetch(cmd.Context())
			close(updates)
			if !req.asJSON {
				return render.RenderTemplate(cmd.OutOrStdout(), insightsTemplate, data)
			}
			var raw []byte
			var err error
			if color.NoColor {
				raw, err = json.MarshalIndent(data, "", "  ")
			} else {
				raw, err = jsoncolor.MarshalIndent(data, "", "  ")
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}
}
