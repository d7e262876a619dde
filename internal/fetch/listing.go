package fetch

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const articleClass = "normaslegales_articulos"

var listingDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

// Issue is one bulletin announced on the listing page.
type Issue struct {
	Date time.Time
	URL  string
}

// ParseListing extracts the issues published on a listing page. Articles
// without a readable date or download link are skipped. Relative links are
// resolved against base.
func ParseListing(r io.Reader, base *url.URL) ([]Issue, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var issues []Issue
	for _, article := range findAll(doc, isIssueArticle) {
		date, ok := articleDate(article)
		if !ok {
			continue
		}
		href := firstHref(article)
		if href == "" {
			continue
		}
		link, err := url.Parse(href)
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}
		issues = append(issues, Issue{Date: date, URL: link.String()})
	}
	return issues, nil
}

func isIssueArticle(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "article" {
		return false
	}
	return strings.Contains(attr(n, "class"), articleClass)
}

// articleDate reads the "Fecha: DD/MM/YYYY" paragraph of an article.
func articleDate(article *html.Node) (time.Time, bool) {
	for c := article.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "p" {
			continue
		}
		text := textContent(c)
		_, value, ok := strings.Cut(text, "Fecha:")
		if !ok {
			continue
		}
		m := listingDatePattern.FindStringSubmatch(value)
		if m == nil {
			return time.Time{}, false
		}
		t, err := time.Parse("02/01/2006", m[0])
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func firstHref(n *html.Node) string {
	for _, a := range findAll(n, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a" && attr(n, "href") != ""
	}) {
		return attr(a, "href")
	}
	return ""
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
