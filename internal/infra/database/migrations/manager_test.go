package migrations

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"20260101000000_permissions.sql", true},
		{"2026_roles.sql", false},
		{"roles.sql", false},
		{"20261399000000_bad.sql", false},
	}
	for _, tt := range tests {
		_, err := parseTimestamp(tt.name)
		if (err == nil) != tt.ok {
			t.Errorf("%s: err = %v", tt.name, err)
		}
	}
}

func TestLoadSeedsOrdersByTimestamp(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/seed/20260102000000_b.sql": {Data: []byte("SELECT 2;")},
		"sql/seed/20260101000000_a.sql": {Data: []byte("SELECT 1;")},
		"sql/seed/README.md":            {Data: []byte("ignorado")},
	}
	files, err := loadSeeds(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0].Name != "20260101000000_a.sql" || files[1].Content != "SELECT 2;" {
		t.Errorf("files = %+v", files)
	}
}

func TestLoadSeedsWithoutDirectory(t *testing.T) {
	files, err := loadSeeds(fstest.MapFS{})
	if err != nil || files != nil {
		t.Errorf("got %v, %v", files, err)
	}
}

func TestEmbeddedSchemaHasUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, schemaDir)
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups[strings.TrimSuffix(e.Name(), ".up.sql")] = true
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs[strings.TrimSuffix(e.Name(), ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatal("no schema migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("migration %s has no down file", v)
		}
	}
}

func TestEmbeddedSeedsCoverEveryModule(t *testing.T) {
	files, err := loadSeeds(embeddedMigrations)
	if err != nil {
		t.Fatal(err)
	}
	var all strings.Builder
	for _, f := range files {
		all.WriteString(f.Content)
	}
	for _, module := range []string{"users", "teams", "roles", "sessions", "cases", "todos", "dispositions", "archive", "knowledge", "audit"} {
		if !strings.Contains(all.String(), "('"+module+"', ") {
			t.Errorf("module %s missing from permission catalogue", module)
		}
	}
}
