// Package insights turns one GitHub GraphQL round trip into the two
// chart-ready series of the portfolio: a top-6 language share breakdown
// and a trailing month-by-month activity line. Fetching never fails
// from the caller's point of view: any misconfiguration or upstream
// problem degrades to a fully-shaped empty result so the page renders
// with "no data" placeholders instead of an error state.
package insights

import (
	"context"
	"time"

	"github.com/databricks/databricks-sdk-go/logger"

	"github.com/reqhiem/website/github"
)

const (
	// DefaultMonths is the width of the activity series.
	DefaultMonths = 6

	// maxMonths caps the aggregation window at the fetch window. The
	// calendar query always spans the trailing twelve months, so wider
	// aggregation windows would emit months with no data behind them.
	maxMonths = 12
)

type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
}

type Summary struct {
	TotalRepos int `json:"totalRepos"`
	TotalStars int `json:"totalStars"`
	TotalForks int `json:"totalForks"`
}

type RepoSummary struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Stars    int    `json:"stars"`
	PushedAt string `json:"pushed_at"`
}

type LanguageShare struct {
	Name    string `json:"name"`
	Bytes   int    `json:"bytes"`
	Percent int    `json:"percent"`
}

type ActivityPoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Data struct {
	Profile        Profile         `json:"profile"`
	Summary        Summary         `json:"summary"`
	TopRepos       []RepoSummary   `json:"topRepos"`
	RecentRepos    []RepoSummary   `json:"recentRepos"`
	LanguagesChart []LanguageShare `json:"languagesChart"`
	ActivityPoints []ActivityPoint `json:"activityPoints"`
}

// Empty is the sentinel returned for every degraded fetch. It is fully
// shaped, so consumers only ever check for emptiness, never for nil.
func Empty(login string) Data {
	return Data{
		Profile: Profile{
			Login: login,
			Name:  login,
		},
		TopRepos:       []RepoSummary{},
		RecentRepos:    []RepoSummary{},
		LanguagesChart: []LanguageShare{},
		ActivityPoints: []ActivityPoint{},
	}
}

type Service struct {
	Login  string
	Months int
	GitHub *github.Client

	// now is overridable in tests; zero means time.Now.
	now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Fetch resolves the insights for the configured login. It never
// returns an error: each degradation reason is logged and collapsed
// into the empty sentinel, trading widget fidelity for page
// availability.
func (s *Service) Fetch(ctx context.Context) Data {
	if s.Login == "" {
		logger.Warnf(ctx, "github insights degraded: no login configured")
		return Empty(s.Login)
	}
	if s.GitHub == nil || !s.GitHub.Authenticated() {
		logger.Warnf(ctx, "github insights degraded: no credentials, skipping fetch for %s", s.Login)
		return Empty(s.Login)
	}
	now := s.clock()
	from := time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, now.Location())
	user, err := s.GitHub.UserInsights(ctx, s.Login, from, now)
	if err != nil {
		logger.Warnf(ctx, "github insights degraded: upstream: %s", err)
		return Empty(s.Login)
	}
	return Aggregate(user, s.Months, now)
}
