package github

import (
	"context"
	"time"

	"github.com/databricks/databricks-sdk-go/httpclient"
	"github.com/google/go-querystring/query"
)

type ListReposOptions struct {
	// Type filters repositories: all, owner, member. Default is "owner".
	Type string `url:"type,omitempty"`

	// Sort specifies the ordering: created, updated, pushed, full_name.
	Sort string `url:"sort,omitempty"`

	// Direction in which to sort: asc, desc.
	Direction string `url:"direction,omitempty"`

	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

type Repo struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	DefaultBranch string    `json:"default_branch"`
	Stars         int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	IsFork        bool      `json:"fork"`
	IsPrivate     bool      `json:"private"`
	IsArchived    bool      `json:"archived"`
	Topics        []string  `json:"topics"`
	HtmlURL       string    `json:"html_url"`
	Visibility    string    `json:"visibility"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
}

type Repositories []Repo

// ListRepos fetches the public repositories of a user through the REST
// API. The insights pipeline goes through GraphQL instead; this feeds
// the `repos` CLI command.
func (c *Client) ListRepos(ctx context.Context, login string, opts ListReposOptions) (Repositories, error) {
	qs, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	url := c.cfg.baseURL() + "/users/" + login + "/repos"
	if encoded := qs.Encode(); encoded != "" {
		url += "?" + encoded
	}
	var repos Repositories
	err = c.api.Do(ctx, "GET", url, httpclient.WithResponseUnmarshal(&repos))
	if err != nil {
		return nil, translate(err)
	}
	return repos, nil
}
