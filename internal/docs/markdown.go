package docs

import (
	"io"
	"path"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/monster-js/documentation/internal/site"
)

var (
	sourceKey = parser.NewContextKey()
	resultKey = parser.NewContextKey()
)

// convertResult collects what the AST pass learns about one document.
type convertResult struct {
	title  string
	broken []string
}

// resolveFunc maps a Markdown link found in the doc at from to a URL.
type resolveFunc func(from, dest string) (string, bool)

// docTransformer rewrites links to .md files and records the first
// top-level heading.
type docTransformer struct {
	resolve resolveFunc
}

func (t *docTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	from, _ := pc.Get(sourceKey).(string)
	result, _ := pc.Get(resultKey).(*convertResult)
	if result == nil {
		result = &convertResult{}
	}
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && result.title == "" {
				result.title = plainText(node, source)
			}
		case *ast.Link:
			dest := string(node.Destination)
			if !isMarkdownLink(dest) {
				return ast.WalkContinue, nil
			}
			if target, ok := t.resolve(from, dest); ok {
				node.Destination = []byte(target)
			} else {
				result.broken = append(result.broken, dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

func newMarkdown(styleName string, resolve resolveFunc) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(styleName),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(&docTransformer{resolve: resolve}, 100)),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// newSanitizer cleans rendered docs. Raw HTML passes through goldmark, so
// scripts and event handlers are removed here while highlighting classes
// and heading ids survive.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("div", "span")
	p.AllowAttrs("class").Globally()
	p.RequireNoFollowOnLinks(false)
	return p
}

// HighlightCSS writes the stylesheet for the code highlighting style.
// Unknown style names fall back to the chroma default.
func HighlightCSS(w io.Writer, styleName string) error {
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, styles.Get(styleName))
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func isMarkdownLink(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || site.IsExternal(dest) {
		return false
	}
	p := dest
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := path.Ext(p)
	return ext == ".md" || ext == ".mdx"
}

func splitFragment(dest string) (string, string) {
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		return dest[:i], dest[i:]
	}
	return dest, ""
}
