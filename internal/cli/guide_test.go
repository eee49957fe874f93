package cli

import (
	"strings"
	"testing"
	"testing/fstest"

	builtindocs "github.com/aidanlsb/scribe/docs"
)

func TestBundledGuideTopicsLoad(t *testing.T) {
	topics, err := loadGuideTopics(builtindocs.FS)
	if err != nil {
		t.Fatalf("loadGuideTopics: %v", err)
	}
	if len(topics) == 0 || topics[0].ID != "workflow" {
		t.Fatalf("expected workflow first, got %+v", topics)
	}
	for _, topic := range topics {
		if topic.Title == "" || !strings.HasSuffix(topic.Path, topic.ID+".md") {
			t.Errorf("bad topic %+v", topic)
		}
	}
}

func TestLoadGuideTopicsMissingPage(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.yaml": {Data: []byte("topics:\n  - id: ghost\n")},
	}
	if _, err := loadGuideTopics(fsys); err == nil {
		t.Fatal("expected an error for a topic without a page")
	}
}

func TestFindGuideTopic(t *testing.T) {
	topics := []guideTopic{{ID: "tei", Title: "TEI encoding"}}
	if _, ok := findGuideTopic(topics, " TEI.md "); !ok {
		t.Fatal("expected case and extension insensitive match")
	}
	if _, ok := findGuideTopic(topics, "flat"); ok {
		t.Fatal("unexpected match for flat")
	}
}

func TestSearchGuide(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.yaml": {Data: []byte("topics:\n  - id: a\n    title: First\n  - id: b\n")},
		"guide/a.md":       {Data: []byte("# First\n\nUse cert=\"low\" here.\n")},
		"guide/b.md":       {Data: []byte("CERT again\nand CERT twice\n")},
	}

	matches, err := searchGuide(fsys, "cert", 10)
	if err != nil {
		t.Fatalf("searchGuide: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %+v", matches)
	}
	if matches[0].Topic != "a" || matches[0].Line != 3 || matches[0].Title != "First" {
		t.Errorf("unexpected first match %+v", matches[0])
	}
	if matches[1].Title != "b" {
		t.Errorf("missing title should fall back to id, got %q", matches[1].Title)
	}

	limited, err := searchGuide(fsys, "cert", 2)
	if err != nil {
		t.Fatalf("searchGuide: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit not applied: %+v", limited)
	}
}
