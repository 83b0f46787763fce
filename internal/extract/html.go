package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/claritygate/claritygate/internal/document"
	"github.com/claritygate/claritygate/internal/model"
)

// SectionsFromHTML builds document sections from an HTML source, so
// claims in exported or web-rendered documents get the same locations as
// in the Markdown original. Visible text is grouped under the most recent
// heading; text before any heading lands in a "preamble" section.
func SectionsFromHTML(htmlContent string) ([]model.Section, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var sections []model.Section
	var current *model.Section
	var text strings.Builder

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(text.String())
			sections = append(sections, *current)
		}
		text.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				flush()
				title := strings.TrimSpace(nodeText(n))
				current = &model.Section{
					Slug:  document.Slugify(title),
					Title: title,
					Level: int(n.Data[1] - '0'),
				}
				return // heading text is the title, not body text
			}
		}

		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if current == nil {
					current = &model.Section{Slug: "preamble"}
				}
				text.WriteString(t)
				text.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	flush()

	return sections, nil
}

// nodeText concatenates the text nodes under n.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
