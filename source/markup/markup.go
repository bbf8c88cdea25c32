// Package markup extracts messages from HTML templates.
//
// A message is the content of a <trans> element:
//
//	<trans id="cart.summary">
//	  Hello <b>{name}</b>, you have
//	  <plural value="{count}" _0="no items" one="# item" other="# items"/>
//	  worth <number value="{total}" format="currency"/>.
//	</trans>
//
// {name} is a named argument and any other {expression} a positional one.
// plural, select and selectordinal take their cases as attributes; number
// and date take value and an optional format. Every other element is kept
// as inline markup.
package markup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	i18n "github.com/goliatone/go-i18n-icu"
)

// Logger is used for unbalanced or skipped markup.
var Logger = log.With().Str("sys", "markup").Logger()

// UseGlobalLogger rebuilds Logger from the current global zerolog logger.
func UseGlobalLogger() {
	Logger = log.With().Str("sys", "markup").Logger()
}

const defaultRoot = "trans"

type Config struct {
	// Dir makes origins relative to it.
	Dir string
	// Root is the message element name, "trans" by default.
	Root string
}

func (c Config) root() string {
	if c.Root != "" {
		return strings.ToLower(c.Root)
	}
	return defaultRoot
}

// Element is the inline node recorded for a markup element.
type Element struct {
	Name  string
	Attrs map[string]string
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

// FileUnit extracts one template file.
type FileUnit struct {
	Path   string
	Config Config
}

func (u FileUnit) Name() string { return u.Path }

func (u FileUnit) Messages(context.Context) ([]i18n.SourceMessage, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, fmt.Errorf("markup: open %s: %w", u.Path, err)
	}
	defer f.Close()
	return Parse(u.Path, f, u.Config)
}

// Glob returns one unit per file matching the patterns, without duplicates.
func Glob(cfg Config, patterns ...string) ([]i18n.Unit, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("markup: glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)

	units := make([]i18n.Unit, 0, len(paths))
	for _, path := range paths {
		units = append(units, FileUnit{Path: path, Config: cfg})
	}
	return units, nil
}

// Parse reads a template and returns its messages.
func Parse(filename string, r io.Reader, cfg Config) ([]i18n.SourceMessage, error) {
	file := filename
	if cfg.Dir != "" {
		if rel, err := filepath.Rel(cfg.Dir, filename); err == nil {
			file = rel
		}
	}
	file = filepath.ToSlash(file)

	roots, err := scan(r, cfg.root())
	if err != nil {
		return nil, fmt.Errorf("markup: %s: %w", filename, err)
	}

	out := make([]i18n.SourceMessage, 0, len(roots))
	for _, root := range roots {
		c := converter{file: file}
		out = append(out, i18n.SourceMessage{
			ID:    root.attrs["id"],
			Nodes: c.nodes(root.children),
			Pos:   c.position(root.line, root.col),
		})
	}
	return out, nil
}

// item is a text run or an element of a message tree.
type item struct {
	text     string
	isText   bool
	name     string
	attrs    map[string]string
	attrList []html.Attribute
	children []*item
	line     int
	col      int
}

// scan tokenizes the template and returns the message root elements.
func scan(r io.Reader, rootName string) ([]*item, error) {
	z := html.NewTokenizer(r)
	z.SetMaxBuf(0)

	var (
		roots []*item
		stack []*item
		line  = 1
		col   = 1
	)

	advance := func(raw []byte) {
		for _, b := range raw {
			if b == '\n' {
				line++
				col = 1
				continue
			}
			col++
		}
	}

	for {
		tt := z.Next()
		startLine, startCol := line, col
		advance(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			if len(stack) > 0 {
				Logger.Warn().Int("line", stack[0].line).Msg("Unclosed message element")
				roots = append(roots, stack[0])
			}
			return roots, nil

		case html.TextToken:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, &item{text: string(z.Text()), isText: true, line: startLine, col: startCol})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			el := &item{name: tok.Data, attrs: attrMap(tok.Attr), attrList: tok.Attr, line: startLine, col: startCol}

			if len(stack) == 0 {
				if tok.Data != rootName {
					continue
				}
				if tt == html.SelfClosingTagToken {
					continue
				}
				stack = append(stack, el)
				continue
			}

			top := stack[len(stack)-1]
			top.children = append(top.children, el)
			if _, void := voidElements[tok.Data]; tt == html.StartTagToken && !void {
				stack = append(stack, el)
			}

		case html.EndTagToken:
			if len(stack) == 0 {
				continue
			}
			name, _ := z.TagName()
			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == string(name) {
					idx = i
					break
				}
			}
			if idx < 0 {
				Logger.Debug().Int("line", startLine).Str("tag", string(name)).Msg("Ignoring unmatched end tag")
				continue
			}
			if idx == 0 {
				roots = append(roots, stack[0])
			}
			stack = stack[:idx]
		}
	}
}

func attrMap(attrs []html.Attribute) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Val
	}
	return out
}
