package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/databricks/databricks-sdk-go/httpclient"
)

// userInsightsQuery is the single query behind the portfolio insights
// widget: profile, the 50 most recently pushed owned non-fork repos with
// their top 5 languages by size, and a contribution calendar bounded by
// the $from/$to window.
const userInsightsQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    login
    name
    followers { totalCount }
    repositories(first: 50, ownerAffiliations: OWNER, isFork: false, orderBy: {field: PUSHED_AT, direction: DESC}) {
      totalCount
      nodes {
        name
        url
        stargazerCount
        forkCount
        pushedAt
        isPrivate
        languages(first: 5, orderBy: {field: SIZE, direction: DESC}) {
          edges { size node { name } }
        }
      }
    }
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        weeks {
          contributionDays { date contributionCount }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Followers struct {
		TotalCount int `json:"totalCount"`
	} `json:"followers"`
	Repositories struct {
		TotalCount int        `json:"totalCount"`
		Nodes      []RepoNode `json:"nodes"`
	} `json:"repositories"`
	ContributionsCollection struct {
		ContributionCalendar ContributionCalendar `json:"contributionCalendar"`
	} `json:"contributionsCollection"`
}

type RepoNode struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	StargazerCount int    `json:"stargazerCount"`
	ForkCount      int    `json:"forkCount"`
	PushedAt       string `json:"pushedAt"`
	IsPrivate      bool   `json:"isPrivate"`
	Languages      struct {
		Edges []LanguageEdge `json:"edges"`
	} `json:"languages"`
}

type LanguageEdge struct {
	Size int `json:"size"`
	Node struct {
		Name string `json:"name"`
	} `json:"node"`
}

type ContributionCalendar struct {
	Weeks []Week `json:"weeks"`
}

type Week struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

type ContributionDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

// UserInsights runs the insights query for one login. The from/to pair
// bounds the contribution calendar and is expected to span the trailing
// twelve months, wider than any aggregation window the caller derives.
func (c *Client) UserInsights(ctx context.Context, login string, from, to time.Time) (*User, error) {
	var response struct {
		Data struct {
			User *User `json:"user"`
		} `json:"data"`
		Errors []GraphQLError `json:"errors,omitempty"`
	}
	err := c.api.Do(ctx, "POST", c.cfg.baseURL()+"/graphql",
		httpclient.WithRequestData(graphQLRequest{
			Query: userInsightsQuery,
			Variables: map[string]any{
				"login": login,
				"from":  from.Format(time.RFC3339),
				"to":    to.Format(time.RFC3339),
			},
		}),
		httpclient.WithResponseUnmarshal(&response))
	if err != nil {
		return nil, translate(err)
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %w", response.Errors[0])
	}
	if response.Data.User == nil {
		return nil, fmt.Errorf("graphql: %w", ErrNotFound)
	}
	return response.Data.User, nil
}

func translate(err error) error {
	var httpErr *httpclient.HttpError
	if !errors.As(err, &httpErr) {
		return err
	}
	var body struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	ghErr := &Error{HttpError: httpErr, Message: httpErr.Message}
	if json.Unmarshal([]byte(httpErr.Message), &body) == nil && body.Message != "" {
		ghErr.Message = body.Message
		ghErr.DocumentationURL = body.DocumentationURL
	}
	return ghErr
}
