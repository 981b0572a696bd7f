package playlist

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"recents-server/internal/filesystem"
)

// WPL structure based on Windows Media Player playlist format
type WPL struct {
	XMLName xml.Name `xml:"smil"`
	Head    WPLHead  `xml:"head"`
	Body    WPLBody  `xml:"body"`
}

type WPLHead struct {
	Title string    `xml:"title"`
	Meta  []WPLMeta `xml:"meta"`
}

type WPLMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type WPLBody struct {
	Seq WPLSeq `xml:"seq"`
}

type WPLSeq struct {
	Media []WPLMedia `xml:"media"`
}

type WPLMedia struct {
	Src string `xml:"src,attr"`
}

const wplGenerator = "recents-server"

// ExportWPL renders a node as a WPL document.
func ExportWPL(node *Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("nil playlist node")
	}

	doc := WPL{
		Head: WPLHead{
			Title: node.Name,
			Meta: []WPLMeta{
				{Name: "Generator", Content: wplGenerator},
				{Name: "ItemCount", Content: strconv.Itoa(len(node.Items))},
			},
		},
	}
	for _, item := range node.Items {
		doc.Body.Seq.Media = append(doc.Body.Seq.Media, WPLMedia{Src: item.MRL})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte("<?wpl version=\"1.0\"?>\n"), out...), nil
}

// ParseWPL reads a WPL file into a node. Media sources are kept verbatim,
// in file order; blank sources are skipped.
func ParseWPL(wplPath string) (*Node, error) {
	data, err := filesystem.ReadFileWithRetry(wplPath, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, err
	}

	node, err := DecodeWPL(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", wplPath, err)
	}
	if node.Name == "" {
		node.Name = strings.TrimSuffix(filepath.Base(wplPath), filepath.Ext(wplPath))
	}
	return node, nil
}

// DecodeWPL parses WPL content.
func DecodeWPL(data []byte) (*Node, error) {
	var wpl WPL
	if err := xml.Unmarshal(data, &wpl); err != nil {
		return nil, err
	}

	node := &Node{Name: wpl.Head.Title}
	for _, media := range wpl.Body.Seq.Media {
		src := strings.TrimSpace(media.Src)
		if src == "" {
			continue
		}
		node.Items = append(node.Items, newItem(src))
	}
	node.Count = len(node.Items)
	return node, nil
}

// MRLs returns the media sources of a node in order.
func (n *Node) MRLs() []string {
	out := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		out = append(out, item.MRL)
	}
	return out
}
