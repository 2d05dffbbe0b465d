// Package page parses server-rendered HTML and tracks the delete triggers
// and display state of the loaded document.
package page

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/evcraddock/delc/internal/comment"
)

const (
	// TriggerClass marks an element as a delete trigger.
	TriggerClass = "del-comment"
	// CommentIDAttr holds the trigger's comment ID.
	CommentIDAttr = "data-cid"
)

// Trigger is one delete control on a page. Triggers compare by element,
// so two buttons for the same comment are distinct triggers.
type Trigger struct {
	CommentID comment.ID
	node      *html.Node
}

// Label returns the text of the comment the trigger belongs to, without
// the trigger's own text.
func (t Trigger) Label() string {
	if t.node == nil || t.node.Parent == nil {
		return ""
	}
	var sb strings.Builder
	collectText(t.node.Parent, t.node, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Page is a parsed HTML document. It is safe for concurrent use.
type Page struct {
	path string

	mu  sync.RWMutex
	doc *html.Node
}

// Parse reads an HTML document served at path.
func Parse(r io.Reader, path string) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", path, err)
	}
	return &Page{path: path, doc: doc}, nil
}

// Standalone builds a page holding a single trigger for id. It is used
// when deleting by ID without loading a page from the server.
func Standalone(id comment.ID) *Page {
	src := `<html><body><div class="comment"><button class="` + TriggerClass + `" data-cid="` +
		html.EscapeString(id.String()) + `">delete</button></div></body></html>`
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// html.Parse only fails on reader errors.
		panic(fmt.Sprintf("parsing standalone page: %v", err))
	}
	return &Page{path: "", doc: doc}
}

// Path returns the path the page was loaded from.
func (p *Page) Path() string {
	return p.path
}

// Triggers returns every delete trigger currently in the document, in
// document order. Marked elements without a comment ID, or with a blank
// one, are skipped. IDs are kept exactly as written in the attribute.
func (p *Page) Triggers() []Trigger {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Trigger
	walk(p.doc, func(n *html.Node) {
		if n.Type != html.ElementNode || !hasClass(n, TriggerClass) {
			return
		}
		id := getAttr(n, CommentIDAttr)
		if strings.TrimSpace(id) == "" {
			return
		}
		out = append(out, Trigger{CommentID: comment.ID(id), node: n})
	})
	return out
}

// TriggersFor returns the triggers carrying id.
func (p *Page) TriggersFor(id comment.ID) []Trigger {
	var out []Trigger
	for _, t := range p.Triggers() {
		if t.CommentID == id {
			out = append(out, t)
		}
	}
	return out
}

// InsertTrigger appends a new trigger for id to the document body and
// returns it. It models content added after the page has loaded.
func (p *Page) InsertTrigger(id comment.ID) Trigger {
	p.mu.Lock()
	defer p.mu.Unlock()

	btn := &html.Node{
		Type:     html.ElementNode,
		Data:     "button",
		DataAtom: atom.Button,
		Attr: []html.Attribute{
			{Key: "class", Val: TriggerClass},
			{Key: CommentIDAttr, Val: id.String()},
		},
	}
	btn.AppendChild(&html.Node{Type: html.TextNode, Data: "delete"})

	wrap := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	wrap.AppendChild(btn)

	body := findFirst(p.doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if body == nil {
		body = p.doc
	}
	body.AppendChild(wrap)

	return Trigger{CommentID: id, node: btn}
}

// Display returns the CSS display value set inline on the element with
// the given id, and whether the element exists.
func (p *Page) Display(elementID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := p.elementByID(elementID)
	if n == nil {
		return "", false
	}
	return styleProperty(getAttr(n, "style"), "display"), true
}

// SetDisplay sets the inline display style of the element with the given
// id. It reports false if no such element exists.
func (p *Page) SetDisplay(elementID, display string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.elementByID(elementID)
	if n == nil {
		return false
	}
	setAttr(n, "style", setStyleProperty(getAttr(n, "style"), "display", display))
	return true
}

// Render writes the current document as HTML.
func (p *Page) Render(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var buf bytes.Buffer
	if err := html.Render(&buf, p.doc); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

func (p *Page) elementByID(id string) *html.Node {
	return findFirst(p.doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && getAttr(n, "id") == id
	})
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n, skip *html.Node, sb *strings.Builder) {
	if n == skip {
		return
	}
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, skip, sb)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
