package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	textPolicy = bluemonday.NewPolicy()
)

func init() {
	// Block structure only; emphasis, headings and links collapse to their text.
	textPolicy.AllowElements("p", "br", "ul", "ol", "li", "pre")
}

// MarkdownToText renders model output for a plain terminal.
func MarkdownToText(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	// 1. Render HTML
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse([]byte(md)), renderer)

	// 2. Sanitize tags
	sanitized := textPolicy.SanitizeBytes(unsafeHTML)

	// 3. Flatten to text
	text, err := html2text.FromString(string(sanitized), html2text.Options{OmitLinks: true})
	if err != nil {
		return strings.TrimSpace(md)
	}
	return strings.TrimSpace(text)
}
