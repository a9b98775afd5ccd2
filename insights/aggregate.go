package insights

import (
	"math"
	"sort"
	"time"

	"github.com/reqhiem/website/counters"
	"github.com/reqhiem/website/github"
)

const (
	topLanguages = 6
	topRepoCount = 5
)

// Aggregate is a pure fold from the raw GraphQL user node into the
// presentation-ready record. Running it twice over the same input
// yields identical output.
func Aggregate(user *github.User, months int, now time.Time) Data {
	if months <= 0 {
		months = DefaultMonths
	}
	if months > maxMonths {
		months = maxMonths
	}
	repos := user.Repositories.Nodes
	summary := Summary{
		TotalRepos: len(repos),
	}
	for _, repo := range repos {
		summary.TotalStars += repo.StargazerCount
		summary.TotalForks += repo.ForkCount
	}
	return Data{
		Profile: Profile{
			Login:     user.Login,
			Name:      displayName(user),
			Followers: user.Followers.TotalCount,
		},
		Summary:        summary,
		TopRepos:       topRepos(repos),
		RecentRepos:    recentRepos(repos),
		LanguagesChart: languagesChart(repos),
		ActivityPoints: activityPoints(user.ContributionsCollection.ContributionCalendar, months, now),
	}
}

func displayName(user *github.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Login
}

// languagesChart merges per-repository language sizes by name, converts
// to rounded percentage shares of the grand total, and keeps the top 6
// by raw bytes. Rounded shares of a truncated chart may not sum to 100;
// that imprecision is accepted rather than renormalized.
func languagesChart(repos []github.RepoNode) []LanguageShare {
	totals := counters.New[string]()
	for _, repo := range repos {
		for _, edge := range repo.Languages.Edges {
			totals.AddN(edge.Node.Name, edge.Size)
		}
	}
	totalBytes := totals.Total()
	chart := []LanguageShare{}
	for _, stat := range totals.Stats() {
		percent := 0
		if totalBytes > 0 {
			percent = int(math.Round(float64(stat.Count) / float64(totalBytes) * 100))
		}
		chart = append(chart, LanguageShare{
			Name:    stat.Key,
			Bytes:   stat.Count,
			Percent: percent,
		})
		if len(chart) == topLanguages {
			break
		}
	}
	return chart
}

// activityPoints pre-seeds one bucket per trailing calendar month ending
// at now's month, then folds the week/day calendar grid into them. Days
// outside the window are ignored; months with no activity stay at zero.
func activityPoints(calendar github.ContributionCalendar, months int, now time.Time) []ActivityPoint {
	buckets := counters.New[string]()
	for i := months - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		buckets.SeedKey(month.Format("2006-01"))
	}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			if len(day.Date) < 7 {
				continue
			}
			buckets.AddExisting(day.Date[:7], day.ContributionCount)
		}
	}
	points := []ActivityPoint{}
	for _, bucket := range buckets.Ordered() {
		points = append(points, ActivityPoint{
			Month: bucket.Key,
			Count: bucket.Count,
		})
	}
	return points
}

func topRepos(repos []github.RepoNode) []RepoSummary {
	sorted := make([]github.RepoNode, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StargazerCount > sorted[j].StargazerCount
	})
	out := []RepoSummary{}
	for _, repo := range sorted {
		if repo.IsPrivate {
			continue
		}
		out = append(out, RepoSummary{
			Name:     repo.Name,
			URL:      repo.URL,
			Stars:    repo.StargazerCount,
			PushedAt: repo.PushedAt,
		})
		if len(out) == topRepoCount {
			break
		}
	}
	return out
}

// recentRepos relies on the query ordering repositories by most
// recently pushed descending.
func recentRepos(repos []github.RepoNode) []RepoSummary {
	out := []RepoSummary{}
	for _, repo := range repos {
		if repo.IsPrivate {
			continue
		}
		out = append(out, RepoSummary{
			Name:     repo.Name,
			URL:      repo.URL,
			Stars:    repo.StargazerCount,
			PushedAt: repo.PushedAt,
		})
		if len(out) == topRepoCount {
			break
		}
	}
	return out
}
