package cmd

import (
	"github.com/spf13/pflag"

	"github.com/reqhiem/website/github"
	"github.com/reqhiem/website/lite"
	"github.com/reqhiem/website/render"
)

const reposTemplate = `Name	Language	Stars	Pushed{{range .}}
{{.Name}}	{{.Language}}	{{.Stars}}	{{.PushedAt.Format "2006-01-02"}}{{end}}
`

func newRepos() lite.Registerable[Config] {
	type reposRequest struct {
		limit int
	}
	return &lite.Command[Config, reposRequest]{
		Name:  "repos",
		Short: "List public repositories of the configured user",
		Flags: func(flags *pflag.FlagSet, req *reposRequest) {
			flags.IntVar(&req.limit, "limit", 50, "number of repositories to list")
		},
		Run: func(cmd *lite.Root[Config], req *reposRequest) error {
			gh := github.NewClient(&cmd.Config.GitHub)
			repos, err := gh.ListRepos(cmd.Context(), cmd.Config.Username, github.ListReposOptions{
				Sort:      "pushed",
				Direction: "desc",
				PerPage:   req.limit,
			})
			if err != nil {
				return err
			}
			return render.RenderTemplate(cmd.OutOrStdout(), reposTemplate, repos)
		},
	}
}
