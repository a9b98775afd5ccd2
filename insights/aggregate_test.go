package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqhiem/website/github"
)

func repoWithLanguages(name string, langs ...github.LanguageEdge) github.RepoNode {
	repo := github.RepoNode{Name: name, URL: "https://github.com/reqhiem/" + name}
	repo.Languages.Edges = langs
	return repo
}

func lang(name string, size int) github.LanguageEdge {
	edge := github.LanguageEdge{Size: size}
	edge.Node.Name = name
	return edge
}

func userWithRepos(repos ...github.RepoNode) *github.User {
	user := &github.User{Login: "reqhiem"}
	user.Repositories.TotalCount = len(repos)
	user.Repositories.Nodes = repos
	return user
}

func calendarDays(days ...github.ContributionDay) github.ContributionCalendar {
	return github.ContributionCalendar{
		Weeks: []github.Week{{ContributionDays: days}},
	}
}

var anchor = time.Date(2024, time.February, 15, 10, 30, 0, 0, time.UTC)

func TestLanguagesMergedAcrossRepos(t *testing.T) {
	user := userWithRepos(
		repoWithLanguages("a", lang("Go", 300)),
		repoWithLanguages("b", lang("TypeScript", 200)),
		repoWithLanguages("c", lang("Go", 100)),
	)
	data := Aggregate(user, 6, anchor)
	require.Len(t, data.LanguagesChart, 2)
	assert.Equal(t, LanguageShare{Name: "Go", Bytes: 400, Percent: 67}, data.LanguagesChart[0])
	assert.Equal(t, LanguageShare{Name: "TypeScript", Bytes: 200, Percent: 33}, data.LanguagesChart[1])
}

func TestLanguagesZeroTotalBytes(t *testing.T) {
	user := userWithRepos(
		repoWithLanguages("a", lang("Go", 0)),
		repoWithLanguages("b", lang("TypeScript", 0)),
	)
	data := Aggregate(user, 6, anchor)
	require.Len(t, data.LanguagesChart, 2)
	for _, share := range data.LanguagesChart {
		assert.Equal(t, 0, share.Percent)
	}
}

func TestLanguagesTruncatedToTopSix(t *testing.T) {
	repos := []github.RepoNode{}
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("lang-%d", i)
		repos = append(repos, repoWithLanguages(name, lang(name, 100)))
	}
	data := Aggregate(userWithRepos(repos...), 6, anchor)
	require.Len(t, data.LanguagesChart, 6)
	sum := 0
	for i, share := range data.LanguagesChart {
		if i > 0 {
			assert.GreaterOrEqual(t, data.LanguagesChart[i-1].Bytes, share.Bytes)
		}
		sum += share.Percent
	}
	// eight equal languages, six kept: rounded shares cannot reach 100
	assert.Less(t, sum, 100)
}

func TestActivityBuckets(t *testing.T) {
	user := userWithRepos()
	user.ContributionsCollection.ContributionCalendar = calendarDays(
		github.ContributionDay{Date: "2024-01-15", ContributionCount: 5},
		github.ContributionDay{Date: "2024-01-20", ContributionCount: 3},
		github.ContributionDay{Date: "2024-02-01", ContributionCount: 2},
	)
	data := Aggregate(user, 2, anchor)
	assert.Equal(t, []ActivityPoint{
		{Month: "2024-01", Count: 8},
		{Month: "2024-02", Count: 2},
	}, data.ActivityPoints)
}

func TestActivityWindowContiguousAcrossYearBoundary(t *testing.T) {
	data := Aggregate(userWithRepos(), 6, anchor)
	require.Len(t, data.ActivityPoints, 6)
	assert.Equal(t, "2023-09", data.ActivityPoints[0].Month)
	assert.Equal(t, "2024-02", data.ActivityPoints[5].Month)
	for i := 1; i < len(data.ActivityPoints); i++ {
		prev, err := time.Parse("2006-01", data.ActivityPoints[i-1].Month)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 1, 0).Format("2006-01"), data.ActivityPoints[i].Month)
	}
}

func TestActivityDaysOutsideWindowIgnored(t *testing.T) {
	user := userWithRepos()
	user.ContributionsCollection.ContributionCalendar = calendarDays(
		github.ContributionDay{Date: "2023-03-10", ContributionCount: 50},
		github.ContributionDay{Date: "2024-02-10", ContributionCount: 1},
	)
	data := Aggregate(user, 2, anchor)
	assert.Equal(t, []ActivityPoint{
		{Month: "2024-01", Count: 0},
		{Month: "2024-02", Count: 1},
	}, data.ActivityPoints)
}

func TestMonthsClamped(t *testing.T) {
	assert.Len(t, Aggregate(userWithRepos(), 0, anchor).ActivityPoints, DefaultMonths)
	assert.Len(t, Aggregate(userWithRepos(), -3, anchor).ActivityPoints, DefaultMonths)
	assert.Len(t, Aggregate(userWithRepos(), 20, anchor).ActivityPoints, 12)
}

func TestSummaryCoversAllRepos(t *testing.T) {
	a := repoWithLanguages("a", lang("Go", 100))
	a.StargazerCount = 10
	a.ForkCount = 2
	b := repoWithLanguages("b")
	b.StargazerCount = 3
	b.ForkCount = 1
	b.IsPrivate = true
	data := Aggregate(userWithRepos(a, b), 6, anchor)
	assert.Equal(t, Summary{TotalRepos: 2, TotalStars: 13, TotalForks: 3}, data.Summary)
	// private repos are counted in the summary but never listed
	require.Len(t, data.TopRepos, 1)
	assert.Equal(t, "a", data.TopRepos[0].Name)
}

func TestTopReposSortedByStars(t *testing.T) {
	a := repoWithLanguages("a")
	a.StargazerCount = 1
	b := repoWithLanguages("b")
	b.StargazerCount = 7
	c := repoWithLanguages("c")
	c.StargazerCount = 4
	data := Aggregate(userWithRepos(a, b, c), 6, anchor)
	require.Len(t, data.TopRepos, 3)
	assert.Equal(t, "b", data.TopRepos[0].Name)
	assert.Equal(t, "c", data.TopRepos[1].Name)
	assert.Equal(t, "a", data.TopRepos[2].Name)
	// recent repos keep the pushed-at ordering of the query
	assert.Equal(t, "a", data.RecentRepos[0].Name)
}

func TestAggregateIsIdempotent(t *testing.T) {
	user := userWithRepos(
		repoWithLanguages("a", lang("Go", 300), lang("TypeScript", 200)),
	)
	user.ContributionsCollection.ContributionCalendar = calendarDays(
		github.ContributionDay{Date: "2024-02-01", ContributionCount: 2},
	)
	first := Aggregate(user, 6, anchor)
	second := Aggregate(user, 6, anchor)
	assert.Equal(t, first, second)
}

func TestDisplayNameFallsBackToLogin(t *testing.T) {
	user := userWithRepos()
	data := Aggregate(user, 6, anchor)
	assert.Equal(t, "reqhiem", data.Profile.Name)
	user.Name = "Joaquin"
	assert.Equal(t, "Joaquin", Aggregate(user, 6, anchor).Profile.Name)
}
