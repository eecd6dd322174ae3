package tags

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/stockgen/pkg/parser"
)

// ErrSyntax marks a section file that does not parse cleanly. Such files are
// never rewritten.
var ErrSyntax = errors.New("section file has syntax errors")

// Change is one rewritten tag value.
type Change struct {
	Field  string `json:"field"`
	From   string `json:"from"`
	To     string `json:"to"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Unknown is a tag value that is neither allowed nor rewritable.
type Unknown struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// FileResult is the outcome of rewriting one section file.
type FileResult struct {
	Path     string
	Changes  []Change
	Unknowns []Unknown

	// Output is the rewritten source. Nil when nothing changed.
	Output []byte
}

// Changed reports whether any value was rewritten.
func (r *FileResult) Changed() bool {
	return len(r.Changes) > 0
}

// Rewriter normalizes tag arrays in parsed section sources.
//
// Only plain string literals that are direct elements of an array assigned
// to a normalized field (`moods: [...]`, `"purpose": [...]`) are considered.
// Identifiers, template literals, strings with escape sequences and strings
// anywhere else are left alone. Replacements are spliced into the original
// bytes, so formatting and quote style are preserved.
type Rewriter struct {
	parser *parser.ParserManager
	vocab  *VocabularySet
}

// NewRewriter creates a Rewriter. The ParserManager stays owned by the caller.
func NewRewriter(pm *parser.ParserManager, vocab *VocabularySet) *Rewriter {
	return &Rewriter{parser: pm, vocab: vocab}
}

type edit struct {
	start, end uint
	text       string
}

// Rewrite parses source as the language implied by path and normalizes its
// tag arrays.
func (rw *Rewriter) Rewrite(ctx context.Context, source []byte, path string) (*FileResult, error) {
	tree, err := rw.parser.ParseFile(ctx, source, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s: %w", path, ErrSyntax)
	}

	result := &FileResult{Path: path}
	var edits []edit
	rw.visit(root, source, result, &edits)

	if len(edits) > 0 {
		slices.SortFunc(edits, func(a, b edit) int { return cmp.Compare(a.start, b.start) })
		result.Output = splice(source, edits)
	}
	return result, nil
}

func (rw *Rewriter) visit(node *ts.Node, source []byte, result *FileResult, edits *[]edit) {
	if node == nil {
		return
	}
	if node.Kind() == "pair" {
		rw.visitPair(node, source, result, edits)
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		rw.visit(node.NamedChild(i), source, result, edits)
	}
}

func (rw *Rewriter) visitPair(pair *ts.Node, source []byte, result *FileResult, edits *[]edit) {
	field := propertyName(pair.ChildByFieldName("key"), source)
	vocab := rw.vocab.Lookup(field)
	if vocab == nil {
		return
	}
	value := pair.ChildByFieldName("value")
	if value == nil || value.Kind() != "array" {
		return
	}

	for i := uint(0); i < value.NamedChildCount(); i++ {
		elem := value.NamedChild(i)
		text, start, end, ok := stringLiteral(elem, source)
		if !ok {
			continue
		}
		pos := elem.StartPosition()
		line, column := int(pos.Row)+1, int(pos.Column)+1

		normalized, outcome := Normalize(text, vocab)
		switch outcome {
		case OutcomeRewritten:
			*edits = append(*edits, edit{start: start, end: end, text: normalized})
			result.Changes = append(result.Changes, Change{
				Field: field, From: text, To: normalized, Line: line, Column: column,
			})
		case OutcomeUnknown:
			result.Unknowns = append(result.Unknowns, Unknown{
				Field: field, Value: text, Line: line, Column: column,
			})
		}
	}
}

// propertyName returns the name of an object key written as an identifier
// or a plain string literal.
func propertyName(key *ts.Node, source []byte) string {
	if key == nil {
		return ""
	}
	switch key.Kind() {
	case "property_identifier":
		return key.Utf8Text(source)
	case "string":
		if text, _, _, ok := stringLiteral(key, source); ok {
			return text
		}
	}
	return ""
}

// stringLiteral returns the contents of a quoted string node and their byte
// range. Strings containing escape sequences are rejected.
func stringLiteral(node *ts.Node, source []byte) (string, uint, uint, bool) {
	if node == nil || node.Kind() != "string" {
		return "", 0, 0, false
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() != "string_fragment" {
			return "", 0, 0, false
		}
	}
	start, end := node.StartByte()+1, node.EndByte()-1
	if end < start {
		return "", 0, 0, false
	}
	return string(source[start:end]), start, end, true
}

// splice applies non-overlapping edits sorted by start.
func splice(source []byte, edits []edit) []byte {
	var buf bytes.Buffer
	buf.Grow(len(source))
	last := uint(0)
	for _, e := range edits {
		buf.Write(source[last:e.start])
		buf.WriteString(e.text)
		last = e.end
	}
	buf.Write(source[last:])
	return buf.Bytes()
}
