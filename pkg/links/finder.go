package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

// Exact hrefs that are navigation noise, not links worth reporting.
var linkBlacklist = map[string]bool{
	"\\":                  true,
	"/":                   true,
	"#":                   true,
	"mailto:":             true,
	"tel:":                true,
	"javascript:":         true,
	"data:":               true,
	"whatsapp:":           true,
	"sms:":                true,
	"javascript:void(0)":  true,
	"javascript:void(0);": true,
}

// Tried in order; the first match is treated as the page's main content.
var mainContentSelectors = []string{
	"article",
	`[role="main"]`,
	".post-content",
	".entry-content",
	".content",
	"main",
	".article-body",
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var imageLinkFilters = []string{
	"/images/", "/media/", "/img/", "/picture/", "/photo/", "/photos/", "unsplash",
}

// PageLinks holds the categorized links of one fetched page. The category
// slices carry hrefs as written in the document; CrawlOrder resolves them.
type PageLinks struct {
	base *url.URL

	All      []string
	MainText []string
	Other    []string
	// Subsets of MainText.
	Images  []string
	Regular []string
}

// Summary is the count view returned by the /links endpoint.
type Summary struct {
	TotalLinks                 int `json:"total_links"`
	MainTextLinks              int `json:"main_text_links"`
	ImageLinksWithinMainText   int `json:"image_links_within_main_text"`
	RegularLinksWithinMainText int `json:"regular_links_within_main_text"`
	OtherLinks                 int `json:"other_links"`
}

func (p *PageLinks) Summary() Summary {
	return Summary{
		TotalLinks:                 len(p.All),
		MainTextLinks:              len(p.MainText),
		ImageLinksWithinMainText:   len(p.Images),
		RegularLinksWithinMainText: len(p.Regular),
		OtherLinks:                 len(p.Other),
	}
}

// CrawlOrder returns the links a crawler should follow from this page:
// regular main-text links first, then everything else, resolved against the
// page URL, http(s) only, deduplicated.
func (p *PageLinks) CrawlOrder() []string {
	seen := make(map[string]bool)
	var ordered []string
	for _, href := range append(append([]string{}, p.Regular...), p.Other...) {
		abs, ok := p.resolve(href)
		if !ok || seen[abs] {
			continue
		}
		seen[abs] = true
		ordered = append(ordered, abs)
	}
	return ordered
}

func (p *PageLinks) resolve(href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := ref
	if p.base != nil {
		abs = p.base.ResolveReference(ref)
	}
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}

// Finder fetches pages and categorizes their links.
type Finder struct {
	client *resty.Client
}

func NewFinder() *Finder {
	return &Finder{client: resty.New()}
}

// Analyze fetches the page and categorizes every link on it.
func (f *Finder) Analyze(pageURL string) (*PageLinks, error) {
	resp, err := f.client.R().Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: %s", pageURL, resp.Status())
	}
	return f.AnalyzeHTML(pageURL, string(resp.Body()))
}

// AnalyzeHTML categorizes the links of an already-fetched document.
func (f *Finder) AnalyzeHTML(pageURL, htmlContent string) (*PageLinks, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &PageLinks{}
	if base, err := url.Parse(pageURL); err == nil {
		page.base = base
	}

	main := findMainContent(doc)
	inMain := make(map[*html.Node]bool)
	if main != nil {
		main.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			inMain[s.Get(0)] = true
		})
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if linkBlacklist[href] {
			return
		}
		page.All = append(page.All, href)
		if inMain[s.Get(0)] {
			page.MainText = append(page.MainText, href)
		} else {
			page.Other = append(page.Other, href)
		}
	})

	for _, href := range page.MainText {
		if isImageLink(href) {
			page.Images = append(page.Images, href)
		} else {
			page.Regular = append(page.Regular, href)
		}
	}

	return page, nil
}

func findMainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return nil
}

func isImageLink(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	for _, filter := range imageLinkFilters {
		if strings.Contains(lower, filter) {
			return true
		}
	}
	return false
}
