package playlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"recents-server/internal/mediatypes"
)

func TestMaterializeLimits(t *testing.T) {
	entries := []string{"file:///a.mkv", "file:///b.mkv", "http://example.com/c.mp3"}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"zero means all", 0, entries},
		{"limit larger than list", 10, entries},
		{"exact length", 3, entries},
		{"prefix", 2, entries[:2]},
		{"single", 1, entries[:1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree()
			node, err := tree.Materialize(entries, tt.limit)
			if err != nil {
				t.Fatalf("Materialize() error = %v", err)
			}
			if diff := deep.Equal(node.MRLs(), tt.want); diff != nil {
				t.Error(diff)
			}
			if node.Count != len(tt.want) {
				t.Errorf("Count = %d, want %d", node.Count, len(tt.want))
			}
			if node.Name != RecentNodeName || !node.ReadOnly {
				t.Errorf("node = %q readOnly=%v, want read-only %q", node.Name, node.ReadOnly, RecentNodeName)
			}
		})
	}
}

func TestMaterializeAttachesToRoot(t *testing.T) {
	tree := NewTree()

	first, err := tree.Materialize([]string{"a"}, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	second, err := tree.Materialize([]string{"b"}, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	root := tree.Root()
	if len(root.Children) != 2 || root.Children[0] != first || root.Children[1] != second {
		t.Errorf("root children = %v, want both nodes in creation order", root.Children)
	}
}

func TestMaterializeEmptyList(t *testing.T) {
	node, err := NewTree().Materialize(nil, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(node.Items) != 0 {
		t.Errorf("Items = %v, want none", node.Items)
	}
}

func TestMaterializeWithoutRoot(t *testing.T) {
	var tree Tree
	node, err := tree.Materialize([]string{"a"}, 0)
	if !errors.Is(err, ErrNoRoot) {
		t.Fatalf("Materialize() error = %v, want ErrNoRoot", err)
	}
	if node != nil {
		t.Errorf("node = %v, want nil", node)
	}
}

func TestMaterializeNegativeLimit(t *testing.T) {
	_, err := NewTree().Materialize([]string{"a"}, -1)
	if !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("Materialize() error = %v, want ErrInvalidLimit", err)
	}
}

func TestItemName(t *testing.T) {
	tests := []struct {
		mrl  string
		want string
	}{
		{"file:///home/me/Movies/film.mkv", "film.mkv"},
		{"/home/me/song.mp3", "song.mp3"},
		{`C:\Videos\clip.avi`, "clip.avi"},
		{"http://example.com/radio/stream.ogg", "stream.ogg"},
		{"http://example.com/", "http://example.com/"},
		{"dvd://", "dvd://"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.mrl, func(t *testing.T) {
			if got := ItemName(tt.mrl); got != tt.want {
				t.Errorf("ItemName(%q) = %q, want %q", tt.mrl, got, tt.want)
			}
		})
	}
}

func TestExportWPL(t *testing.T) {
	node, err := NewTree().Materialize([]string{"file:///a.mkv", "http://example.com/b&c.mp3"}, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	data, err := ExportWPL(node)
	if err != nil {
		t.Fatalf("ExportWPL() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`<?wpl version="1.0"?>`,
		"<title>Recently Played</title>",
		`<media src="file:///a.mkv"></media>`,
		`b&amp;c.mp3`,
		`content="2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WPL output missing %q:\n%s", want, out)
		}
	}

	if _, err := ExportWPL(nil); err == nil {
		t.Error("ExportWPL(nil) succeeded")
	}
}

func TestParseWPL(t *testing.T) {
	dir := t.TempDir()
	wplPath := filepath.Join(dir, "evening.wpl")
	content := `<?wpl version="1.0"?>
<smil>
  <head>
    <meta name="Generator" content="Microsoft Windows Media Player -- 12.0.19041.1"/>
  </head>
  <body>
    <seq>
      <media src="..\Music\one.mp3"/>
      <media src="  "/>
      <media src="file:///C:/Music/two.flac"/>
    </seq>
  </body>
</smil>`
	if err := os.WriteFile(wplPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write playlist: %v", err)
	}

	node, err := ParseWPL(wplPath)
	if err != nil {
		t.Fatalf("ParseWPL() error = %v", err)
	}

	if node.Name != "evening" {
		t.Errorf("Name = %q, want name derived from file", node.Name)
	}
	want := []Item{
		{Name: "one.mp3", MRL: `..\Music\one.mp3`, Type: mediatypes.FileTypeAudio},
		{Name: "two.flac", MRL: "file:///C:/Music/two.flac", Type: mediatypes.FileTypeAudio},
	}
	if diff := deep.Equal(node.Items, want); diff != nil {
		t.Error(diff)
	}
}

func TestExportThenDecodeKeepsOrder(t *testing.T) {
	entries := []string{"c", "a", "b"}
	node, err := NewTree().Materialize(entries, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	data, err := ExportWPL(node)
	if err != nil {
		t.Fatalf("ExportWPL() error = %v", err)
	}

	decoded, err := DecodeWPL(data)
	if err != nil {
		t.Fatalf("DecodeWPL() error = %v", err)
	}
	if decoded.Name != RecentNodeName {
		t.Errorf("Name = %q", decoded.Name)
	}
	if diff := deep.Equal(decoded.MRLs(), entries); diff != nil {
		t.Error(diff)
	}
}

func TestParseWPLErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ParseWPL(filepath.Join(dir, "missing.wpl")); err == nil {
		t.Error("ParseWPL succeeded for a missing file")
	}

	bad := filepath.Join(dir, "bad.wpl")
	if err := os.WriteFile(bad, []byte("<smil><head>"), 0o644); err != nil {
		t.Fatalf("Failed to write playlist: %v", err)
	}
	if _, err := ParseWPL(bad); err == nil {
		t.Error("ParseWPL succeeded for malformed XML")
	}
}

func TestMaterializeClassifiesItems(t *testing.T) {
	node, err := NewTree().Materialize([]string{"file:///a.mkv", "dvd:///dev/sr0", "http://example.com/live"}, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	want := []mediatypes.FileType{mediatypes.FileTypeVideo, mediatypes.FileTypeDisc, mediatypes.FileTypeStream}
	for i, item := range node.Items {
		if item.Type != want[i] {
			t.Errorf("Items[%d].Type = %v, want %v", i, item.Type, want[i])
		}
	}
}
