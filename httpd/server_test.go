package httpd_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqhiem/website/content"
	"github.com/reqhiem/website/github"
	"github.com/reqhiem/website/httpd"
	"github.com/reqhiem/website/insights"
	"github.com/reqhiem/website/notify"
)

func testSite() *content.Site {
	return &content.Site{
		Meta: content.Meta{
			Title: "Joaquin Gomez",
			Routes: []content.Route{
				{Path: "/about", LabelES: "Sobre mí", LabelEN: "About"},
			},
		},
		Person: content.Person{
			Name:   "Joaquin Gomez",
			Emails: []content.Email{{Value: "hello@example.com", Primary: true}},
		},
	}
}

func testServer(t *testing.T, mailer *notify.Mailer) *httptest.Server {
	s := &httpd.Server{
		Insights: &insights.Service{
			Login:  "reqhiem",
			Months: 6,
			GitHub: github.NewClient(&github.Config{
				TokenSource: github.TokenSource{Anonymous: true},
			}),
		},
		Mailer: mailer,
		Site:   testSite(),
		Pages: []content.Page{
			{Slug: "about", Locale: content.LocaleEN, Title: "About me", HTML: "<h1>Hello</h1>"},
			{Slug: "about", Locale: content.LocaleES, Title: "Sobre mí", HTML: "<h1>Hola</h1>"},
		},
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func brevoStub(t *testing.T, status int) *notify.Mailer {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(upstream.Close)
	return notify.NewMailer(&notify.Config{
		APIKey:       "secret",
		ContactEmail: "me@example.com",
		BaseURL:      upstream.URL,
	})
}

func postContact(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	resp, err := http.Post(srv.URL+"/api/contact", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestContactSuccess(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, body := postContact(t, srv, `{"name":"A","email":"a@b.c","message":"hi"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestContactMissingFields(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, body := postContact(t, srv, `{"name":"A","email":"","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", body["error"])
}

func TestContactMalformedBody(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, body := postContact(t, srv, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", body["error"])
}

func TestContactUnconfiguredMailer(t *testing.T) {
	srv := testServer(t, notify.NewMailer(&notify.Config{}))
	resp, body := postContact(t, srv, `{"name":"A","email":"a@b.c","message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestContactUpstreamFailurePassthrough(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusBadRequest))
	resp, body := postContact(t, srv, `{"name":"A","email":"a@b.c","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Failed to send email", body["error"])
}

func TestInsightsAlwaysAnswers(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, err := http.Get(srv.URL + "/api/insights")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var data insights.Data
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	// anonymous client: the widget degrades to the empty sentinel
	assert.Equal(t, insights.Empty("reqhiem"), data)
}

func TestSiteEndpoint(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, err := http.Get(srv.URL + "/api/site?locale=en")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	nav := body["nav"].([]any)
	require.Len(t, nav, 1)
	assert.Equal(t, "About", nav[0].(map[string]any)["label"])
}

func TestSiteEndpointRejectsUnknownLocale(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, err := http.Get(srv.URL + "/api/site?locale=fr")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPageEndpoint(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, err := http.Get(srv.URL + "/api/pages/en/about")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page content.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, "About me", page.Title)

	resp, err = http.Get(srv.URL + "/api/pages/en/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContactMethodNotAllowed(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, err := http.Get(srv.URL + "/api/contact")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, brevoStub(t, http.StatusCreated))
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
