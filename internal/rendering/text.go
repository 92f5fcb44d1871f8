package rendering

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements start a new line in plain text output
var blockElements = map[string]bool{
	"div": true, "section": true, "header": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "p": true,
	"ul": true, "li": true, "hr": true,
}

// PlainText extracts the visible text of a rendered document, one block per line.
// List items are prefixed with "- ".
func PlainText(doc *Document) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "no document"}
	}
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.HTML))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered document", Cause: err}
	}

	root := page.Find("#" + PreviewElementID)
	if root.Length() == 0 {
		return "", &RenderError{Message: "rendered document has no preview element"}
	}

	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			name := goquery.NodeName(c)
			switch {
			case name == "#text":
				b.WriteString(c.Text())
			case name == "style" || name == "script" || strings.HasPrefix(name, "#"):
			default:
				block := blockElements[name]
				if block {
					b.WriteByte('\n')
				}
				if name == "li" {
					b.WriteString("- ")
				}
				walk(c)
				if block {
					b.WriteByte('\n')
				}
			}
		})
	}
	walk(root)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
