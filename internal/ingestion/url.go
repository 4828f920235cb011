package ingestion

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/umukozihr/resume-tailor/internal/fetch"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// minPostingLength is the minimum extracted text length to treat a page as a
// usable job posting.
const minPostingLength = 40

// FetchOptions configures URL ingestion.
type FetchOptions struct {
	Timeout    time.Duration
	UseBrowser bool
	Verbose    bool
}

// IngestFromURL fetches the resource at urlStr, extracts company, title and
// posting text best-effort, and applies the same validation as IngestDirect.
// Network and HTTP failures surface as *FetchError; pages with no extractable
// text surface as *ParseError.
func (ing *Ingester) IngestFromURL(ctx context.Context, urlStr string) (*types.JobDescription, error) {
	opts := fetch.DefaultOptions()
	useBrowser := false
	verbose := false
	if ing.FetchOptions != nil {
		if ing.FetchOptions.Timeout > 0 {
			opts.Timeout = ing.FetchOptions.Timeout
		}
		useBrowser = ing.FetchOptions.UseBrowser
		verbose = ing.FetchOptions.Verbose
	}

	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[INGEST] %s (platform: %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Cause: err}
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	html := result.HTML
	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, &ParseError{URL: urlStr, Message: err.Error()}
	}

	// SPA boards render the posting client-side; fall back to a headless
	// browser when the plain fetch yields too little text.
	if useBrowser && fetch.ShouldUseBrowser(text) {
		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, opts.Timeout, verbose)
		if browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil && len(rendered) > len(text) {
				html = browserHTML
				text = rendered
			}
		} else if verbose {
			log.Printf("[INGEST] browser fallback failed: %v", browserErr)
		}
	}

	if len(strings.TrimSpace(text)) < minPostingLength {
		return nil, &ParseError{URL: urlStr, Message: "no extractable job posting text"}
	}

	title, company := fetch.PageTitle(html)

	job := types.JobDescription{
		Company: company,
		Title:   title,
		Region:  types.RegionUS,
		RawText: text,
		URL:     urlStr,
	}
	return ing.IngestDirect(job)
}
