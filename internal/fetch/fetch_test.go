package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>posting</body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "posting")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURL_NonOKReturnsPartialResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
	require.NotNil(t, result, "partial result lets callers inspect the status")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, bad := range []string{"", "not a url", "/relative/path"} {
		_, err := URL(context.Background(), bad, nil)
		assert.Error(t, err, bad)
	}
}

func TestExtractMainText(t *testing.T) {
	html := `<html><body>
		<nav>Home / Jobs</nav>
		<div class="cookie-banner">We use cookies</div>
		<div class="job-description">
			<p>Build Go services.</p>
			<p>Ship weekly.</p>
		</div>
		<footer>All rights reserved</footer>
	</body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Build Go services.")
	assert.Contains(t, text, "Ship weekly.")
	assert.NotContains(t, text, "Home / Jobs")
	assert.NotContains(t, text, "cookies")
	assert.NotContains(t, text, "All rights reserved")
}

func TestExtractMainText_FirstMatchingSelectorWins(t *testing.T) {
	html := `<html><body>
		<div class="posting-content">second choice</div>
		<div class="job-description">first choice</div>
	</body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "first choice", text)
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>bare page</p></body></html>", []string{".nope"})
	require.NoError(t, err)
	assert.Equal(t, "bare page", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body><div class="job-description">
		<p>Real content</p>
		<form id="application-form">First name</form>
		<div class="eeo-statement">Equal opportunity</div>
	</div></body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors(), PlatformNoiseSelectors(PlatformUnknown)...)
	require.NoError(t, err)
	assert.Contains(t, text, "Real content")
	assert.NotContains(t, text, "First name")
	assert.NotContains(t, text, "Equal opportunity")
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		title   string
		company string
	}{
		{
			"pipe separator",
			`<html><head><title>Backend Engineer | Acme Corp</title></head></html>`,
			"Backend Engineer", "Acme Corp",
		},
		{
			"dash separator",
			`<html><head><title>Backend Engineer - Acme Corp</title></head></html>`,
			"Backend Engineer", "Acme Corp",
		},
		{
			"at separator",
			`<html><head><title>Backend Engineer at Acme Corp</title></head></html>`,
			"Backend Engineer", "Acme Corp",
		},
		{
			"og:site_name wins the company hint",
			`<html><head>
				<meta property="og:site_name" content="Acme Careers">
				<title>Backend Engineer | Jobs</title>
			</head></html>`,
			"Backend Engineer", "Acme Careers",
		},
		{
			"no separator",
			`<html><head><title>Backend Engineer</title></head></html>`,
			"Backend Engineer", "",
		},
		{
			"no title",
			`<html><head></head></html>`,
			"", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, company := PageTitle(tt.html)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.company, company)
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		platform Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/careers/job/123", PlatformWorkday},
		{"https://acme.workday.com/job/123", PlatformWorkday},
		{"https://careers.acme.com/jobs/123", PlatformUnknown},
		{"::not-a-url::", PlatformUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.platform, DetectPlatform(tt.url), tt.url)
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   short   "))
	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
