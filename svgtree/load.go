package svgtree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/benoitkugler/svgscene/css"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Load reads an SVG document from `r`.
// Style attributes and <style> elements are parsed, and
// <use> elements are instantiated, so that the returned tree
// is ready for style resolution.
// The error mode of `opts` determines if unsupported elements are ignored,
// logged or trigger an error.
func Load(r io.Reader, opts Options) (*Tree, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("invalid svg document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("invalid svg document: no root element")
	}
	if root.Tag != "svg" {
		return nil, fmt.Errorf("invalid svg document: unexpected root element <%s>", root.Tag)
	}

	l := loader{tree: NewTree(), mode: opts.ErrorMode}
	rootID, err := l.element(root)
	if err != nil {
		return nil, err
	}
	l.tree.Root = rootID
	if err := l.tree.instantiateUses(); err != nil {
		return nil, err
	}
	logger.Debug("svg document loaded",
		zap.Int("elements", l.tree.Len()), zap.Int("stylesheets", len(l.tree.Sheets)))
	return l.tree, nil
}

// LoadFile reads the SVG document stored in `filename`.
func LoadFile(filename string, opts Options) (*Tree, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, opts)
}

type loader struct {
	tree *Tree
	mode ErrorMode
}

// charData concatenates the direct text content of `e`.
func charData(e *etree.Element) string {
	var b strings.Builder
	for _, tok := range e.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}

// element adds `e` and its descendants to the tree.
func (l *loader) element(e *etree.Element) (NodeID, error) {
	kind := KindOf(e.Tag)
	if kind == Unknown {
		err := l.mode.Handle("cannot process svg element "+e.Tag, zap.String("tag", e.Tag))
		if err != nil {
			return NoNode, err
		}
	}

	id := l.tree.NewElement(kind, e.Tag)
	el := l.tree.Element(id)
	for _, attr := range e.Attr {
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		// plain attributes take precedence over prefixed ones (xlink:href)
		if _, has := el.Attrs[attr.Key]; has && attr.Space != "" {
			continue
		}
		el.Attrs[attr.Key] = attr.Value

		switch attr.Key {
		case "id":
			el.ID = strings.TrimSpace(attr.Value)
		case "class":
			for _, class := range strings.Fields(attr.Value) {
				el.AddClass(class)
			}
		case "style":
			decls, err := css.ParseDeclarations(attr.Value)
			if err != nil {
				return NoNode, fmt.Errorf("invalid style attribute in <%s>: %w", e.Tag, err)
			}
			el.Inline = decls
		default:
			if _, ok := PropertyByName(attr.Key); ok {
				el.Presentation = append(el.Presentation, css.Declaration{
					Property: attr.Key,
					Value:    strings.TrimSpace(attr.Value),
				})
			}
		}
	}
	el.Text = charData(e)

	if kind == Style {
		if typ := el.Attrs["type"]; typ == "" || typ == "text/css" {
			sheet, err := css.ParseStylesheet(el.Text)
			if err != nil {
				return NoNode, fmt.Errorf("invalid style sheet: %w", err)
			}
			l.tree.Sheets = append(l.tree.Sheets, sheet)
		}
	}

	for _, child := range e.ChildElements() {
		if child.Space != "" && child.Space != "svg" { // foreign content, like Inkscape metadata
			logger.Debug("skipping foreign element", zap.String("tag", child.FullTag()))
			continue
		}
		childID, err := l.element(child)
		if err != nil {
			return NoNode, err
		}
		if err := l.tree.Attach(id, childID); err != nil {
			return NoNode, err
		}
	}
	return id, nil
}
