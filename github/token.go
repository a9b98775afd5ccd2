package github

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/oauth2"
)

// TokenSource resolves the credential used against the GitHub API.
// The portfolio runs fine without one: an empty token degrades the
// insights widget to its empty state instead of failing the page.
type TokenSource struct {
	// Anonymous skips all lookups and presents no credential.
	Anonymous bool

	// Pat is a classic or fine-grained Personal Access Token.
	Pat string

	cached oauth2.TokenSource
}

func (g *TokenSource) Token() (*oauth2.Token, error) {
	if g.Pat != "" {
		return &oauth2.Token{
			TokenType:   "Bearer",
			AccessToken: g.Pat,
		}, nil
	}
	if g.Anonymous {
		return &oauth2.Token{}, nil
	}
	if g.cached != nil {
		return g.cached.Token()
	}
	for _, ts := range []oauth2.TokenSource{
		&envTokenSource{"GITHUB_TOKEN"},
		&ghCliTokenSource{},
		&anonymousTokenSource{},
	} {
		token, err := ts.Token()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		g.cached = oauth2.ReuseTokenSource(token, ts)
		return token, nil
	}
	return &oauth2.Token{}, nil
}

type anonymousTokenSource struct{}

func (e *anonymousTokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{}, nil
}

type envTokenSource struct {
	Name string
}

func (e *envTokenSource) Token() (*oauth2.Token, error) {
	value, ok := os.LookupEnv(e.Name)
	if !ok || value == "" {
		return nil, fs.ErrNotExist
	}
	return &oauth2.Token{
		TokenType:   "Bearer",
		AccessToken: value,
	}, nil
}

type ghCliTokenSource struct {
	Path string
}

func (cli *ghCliTokenSource) Token() (*oauth2.Token, error) {
	if cli.Path == "" {
		cli.Path = "gh"
	}
	result, err := exec.Command(cli.Path, "auth", "token").Output()
	if err != nil {
		return nil, fs.ErrNotExist
	}
	return &oauth2.Token{
		TokenType:   "Bearer",
		AccessToken: strings.TrimSpace(string(result)),
	}, nil
}
