package processors

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTMLCleaner turns rendered markup into the visible text handed to the chunker
type HTMLCleaner struct {
	// Tags removed together with their content before text extraction
	removeTags []string
	// Joined between text nodes
	separator string
}

// NewHTMLCleaner creates a cleaner that drops script and style content
func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{"script", "style"},
		separator:  "\n",
	}
}

// VisibleText returns every non-blank text node in document order, each
// trimmed, joined by newlines. Comments and doctype are not text.
func (hc *HTMLCleaner) VisibleText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(hc.removeTags, ", ")).Remove()

	var parts []string
	for _, node := range doc.Nodes {
		collectText(node, &parts)
	}

	return strings.Join(parts, hc.separator), nil
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}

// ImageSources returns the src attribute of every img element in document
// order. Elements without a src, or with an empty one, are skipped. Values are
// returned exactly as written in the markup, duplicates included.
func ImageSources(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var sources []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			sources = append(sources, src)
		}
	})

	return sources, nil
}
