// Package extractor turns crawled pages into typed business facets.
// Every function here is pure: selector or pattern misses produce empty
// values rather than errors.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/company-analyzer/pkg/utils"
)

// AnalysisWindow is the number of body text characters used for heuristics.
const AnalysisWindow = 2000

// Document is a parsed, queryable view of an HTML page.
type Document struct {
	doc      *goquery.Document
	bodyText string
}

// SiblingPair is a matched element's text together with the text of the
// element that immediately follows it.
type SiblingPair struct {
	Text     string
	NextText string
}

// NewDocument parses html. Script and style contents are dropped so they
// never leak into the visible text.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style, noscript").Remove()

	return &Document{
		doc:      doc,
		bodyText: doc.Find("body").Text(),
	}, nil
}

func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Meta returns the content attribute of <meta name="name">.
func (d *Document) Meta(name string) string {
	sel := d.doc.Find("meta").FilterFunction(func(_ int, s *goquery.Selection) bool {
		n, _ := s.Attr("name")
		return strings.EqualFold(n, name)
	})
	return strings.TrimSpace(sel.First().AttrOr("content", ""))
}

// Texts returns the trimmed, non-empty text of every element matching selector.
func (d *Document) Texts(selector string) []string {
	var texts []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// FirstText returns the trimmed text of the first element matching selector.
func (d *Document) FirstText(selector string) string {
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// SiblingPairs pairs each of the first limit elements matching selector with
// the text of its next element sibling.
func (d *Document) SiblingPairs(selector string, limit int) []SiblingPair {
	var pairs []SiblingPair
	d.doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		pairs = append(pairs, SiblingPair{
			Text:     strings.TrimSpace(s.Text()),
			NextText: strings.TrimSpace(s.Next().Text()),
		})
		return true
	})
	return pairs
}

// Links returns every anchor href in document order.
func (d *Document) Links() []string {
	var links []string
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links
}

// BodyText returns the full visible text of the body.
func (d *Document) BodyText() string {
	return d.bodyText
}

// AnalysisText returns the body text cut to AnalysisWindow characters.
func (d *Document) AnalysisText() string {
	return utils.Truncate(d.bodyText, AnalysisWindow)
}
