package playlist

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"recents-server/internal/mediatypes"
	"recents-server/internal/metrics"
)

// RecentNodeName is the title of nodes built by Materialize.
const RecentNodeName = "Recently Played"

var (
	// ErrNoRoot means the tree has no root container to attach nodes to.
	ErrNoRoot = errors.New("playlist root container unavailable")
	// ErrInvalidLimit is returned for negative limits.
	ErrInvalidLimit = errors.New("invalid playlist limit")
)

// Item is a single playable entry.
type Item struct {
	Name string              `json:"name"`
	MRL  string              `json:"mrl"`
	Type mediatypes.FileType `json:"type"`
}

func newItem(mrl string) Item {
	return Item{Name: ItemName(mrl), MRL: mrl, Type: mediatypes.ForMRL(mrl)}
}

// Node is a playlist container.
type Node struct {
	Name     string  `json:"name"`
	ReadOnly bool    `json:"readOnly"`
	Items    []Item  `json:"items"`
	Children []*Node `json:"children,omitempty"`
	Count    int     `json:"count"`
}

// Tree is a playlist hierarchy. The zero value has no root.
type Tree struct {
	mu   sync.Mutex
	root *Node
}

// NewTree returns a tree with an empty root container.
func NewTree() *Tree {
	return &Tree{root: &Node{Name: "Playlist"}}
}

// Root returns the root container, or nil.
func (t *Tree) Root() *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// Materialize creates a read-only "Recently Played" node under the root and
// fills it with entries[:limit]. A limit of 0, or one larger than the list,
// takes every entry.
func (t *Tree) Materialize(entries []string, limit int) (*Node, error) {
	node, err := t.materialize(entries, limit)
	if err != nil {
		metrics.PlaylistMaterializationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PlaylistMaterializationsTotal.WithLabelValues("success").Inc()
	return node, nil
}

func (t *Tree) materialize(entries []string, limit int) (*Node, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.root == nil {
		return nil, ErrNoRoot
	}

	if limit == 0 || limit > len(entries) {
		limit = len(entries)
	}

	node := &Node{
		Name:     RecentNodeName,
		ReadOnly: true,
		Items:    make([]Item, 0, limit),
	}
	for _, mrl := range entries[:limit] {
		node.Items = append(node.Items, newItem(mrl))
	}
	node.Count = len(node.Items)

	t.root.Children = append(t.root.Children, node)
	t.root.Count = len(t.root.Children)
	return node, nil
}

// ItemName derives a display name from an MRL: the last path element when
// there is one, otherwise the MRL itself.
func ItemName(mrl string) string {
	p := mrl
	if strings.Contains(mrl, "://") {
		u, err := url.Parse(mrl)
		if err != nil {
			return mrl
		}
		p = u.Path
	}
	p = strings.ReplaceAll(p, "\\", "/")
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		return mrl
	}
	return base
}
