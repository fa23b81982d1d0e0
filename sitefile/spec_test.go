package sitefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRejectsBrokenReferences(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "zero_level_id",
			yaml: "levels:\n  - id: 0\n    name: L1\n",
			want: ErrZeroID,
		},
		{
			name: "duplicate_level_id",
			yaml: "levels:\n  - id: 1\n  - id: 1\n",
			want: ErrDuplicateID,
		},
		{
			name: "anchor_on_unknown_level",
			yaml: "anchors:\n  - id: 1\n    level: 9\n",
			want: ErrUnknownID,
		},
		{
			name: "unknown_reference_anchor",
			yaml: "anchors:\n  - id: 1\nlifts:\n  - id: 2\n    reference_anchors: [1, 7]\n",
			want: ErrUnknownID,
		},
		{
			name: "door_visits_unknown_level",
			yaml: "levels:\n  - id: 1\nanchors:\n  - id: 2\n  - id: 3\nlifts:\n  - id: 4\n    reference_anchors: [2, 3]\n    cabin:\n      doors:\n        front:\n          visits: [5]\n",
			want: ErrUnknownID,
		},
		{
			name: "door_without_visits",
			yaml: "levels:\n  - id: 1\nanchors:\n  - id: 2\n  - id: 3\nlifts:\n  - id: 4\n    reference_anchors: [2, 3]\n    cabin:\n      doors:\n        front: {width: 0.75, visits: []}\n",
			want: ErrEmptyVisits,
		},
		{
			name: "door_visits_omitted",
			yaml: "levels:\n  - id: 1\nanchors:\n  - id: 2\n  - id: 3\nlifts:\n  - id: 4\n    reference_anchors: [2, 3]\n    cabin:\n      doors:\n        back:\n          width: 0.5\n",
			want: ErrEmptyVisits,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestParseRejectsMalformedLifts(t *testing.T) {
	cases := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "one_reference_anchor",
			yaml:     "anchors:\n  - id: 1\nlifts:\n  - id: 2\n    name: solo\n    reference_anchors: [1]\n",
			contains: "two reference anchors",
		},
		{
			name:     "unknown_face",
			yaml:     "anchors:\n  - id: 1\nlifts:\n  - id: 2\n    reference_anchors: [1, 1]\n    cabin:\n      doors:\n        roof: {}\n",
			contains: "roof",
		},
		{
			name:     "unknown_door_kind",
			yaml:     "anchors:\n  - id: 1\nlifts:\n  - id: 2\n    reference_anchors: [1, 1]\n    cabin:\n      doors:\n        back:\n          kind: revolving\n",
			contains: "revolving",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			if err == nil || !strings.Contains(err.Error(), c.contains) {
				t.Fatalf("expected error mentioning %q, got %v", c.contains, err)
			}
		})
	}
}

func TestLoadSpecFallsBackToEmbeddedSites(t *testing.T) {
	spec, err := LoadSpec("demo.yaml")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if spec.Name != "demo" || len(spec.Levels) != 2 || len(spec.Lifts) != 2 {
		t.Fatalf("unexpected demo site %+v", spec)
	}
	front, ok := spec.Lifts[0].Cabin.Doors["front"]
	if !ok || front.Width != 0.75 || len(front.Visits) != 2 {
		t.Fatalf("unexpected front door %+v", front)
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("name: local\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if spec.Name != "local" {
		t.Fatalf("expected the disk copy, got %q", spec.Name)
	}
}

func TestCleanSitePath(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"demo.yaml":                "sites/demo.yaml",
		"sites/demo.yaml":          "sites/demo.yaml",
		"sitefile/sites/demo.yaml": "sites/demo.yaml",
	}
	for in, want := range cases {
		if got := cleanSitePath(in); got != want {
			t.Fatalf("cleanSitePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatchedFileKinds(t *testing.T) {
	cases := []struct {
		path         string
		site, script bool
	}{
		{"a/site.yaml", true, false},
		{"a/SITE.YML", true, false},
		{"edits.tengo", false, true},
		{"notes.txt", false, false},
	}
	for _, c := range cases {
		if IsSiteFile(c.path) != c.site || IsScriptFile(c.path) != c.script {
			t.Fatalf("%s: site=%v script=%v", c.path, IsSiteFile(c.path), IsScriptFile(c.path))
		}
	}
}
