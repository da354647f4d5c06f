package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalLayout = `schema_version: "1.0.0"
name: demo
top_level_files:
  - name: README.md
    lines: ["# demo", ""]
directories:
  - docs
  - docs/guides
files:
  - dir: docs/guides
    names: [intro.md, setup.sh]
`

func TestDefault(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if l.Name != "frontend_integrations" {
		t.Errorf("Name = %q, want %q", l.Name, "frontend_integrations")
	}

	wantTop := []string{
		"README.md", "LICENSE", "CONTRIBUTING.md", "CHANGELOG.md", "CODE_OF_CONDUCT.md",
		"CITATION.cff", "requirements.txt", "package.json", "Makefile",
	}
	if len(l.TopLevelFiles) != len(wantTop) {
		t.Fatalf("got %d top-level files, want %d", len(l.TopLevelFiles), len(wantTop))
	}
	for i, name := range wantTop {
		if l.TopLevelFiles[i].Name != name {
			t.Errorf("top_level_files[%d] = %q, want %q", i, l.TopLevelFiles[i].Name, name)
		}
	}

	if got := len(l.Directories); got != 79 {
		t.Errorf("got %d directories, want 79", got)
	}
	if l.Directories[0] != "docs" || l.Directories[len(l.Directories)-1] != "test_env/experimental_config" {
		t.Errorf("directory order changed: first %q, last %q", l.Directories[0], l.Directories[len(l.Directories)-1])
	}
	if got := len(l.Files); got != 62 {
		t.Errorf("got %d file groups, want 62", got)
	}
	if got := l.FileCount(); got != 136 {
		t.Errorf("FileCount() = %d, want 136", got)
	}
}

func TestDefaultMakefileKeepsTabs(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	for _, f := range l.TopLevelFiles {
		if f.Name != "Makefile" {
			continue
		}
		for _, line := range f.Lines {
			if strings.HasPrefix(line, "\tnpm install") {
				return
			}
		}
		t.Fatalf("Makefile lines lost their tab indentation: %q", f.Lines)
	}
	t.Fatal("Makefile missing from built-in layout")
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	a.Directories[0] = "mutated"
	a.TopLevelFiles[0].Lines[0] = "mutated"

	b, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if b.Directories[0] != "docs" {
		t.Errorf("Directories[0] = %q after mutating another copy", b.Directories[0])
	}
	if b.TopLevelFiles[0].Lines[0] != "# frontend_integrations" {
		t.Errorf("README first line = %q after mutating another copy", b.TopLevelFiles[0].Lines[0])
	}
}

func TestDefaultTablesHaveNoDuplicates(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, d := range l.Directories {
		if seen[d] {
			t.Errorf("duplicate directory %q", d)
		}
		seen[d] = true
	}
	for _, df := range l.Files {
		if !seen[df.Dir] {
			t.Errorf("file group %q is not in the directory list", df.Dir)
		}
	}
}

func TestParseMinimal(t *testing.T) {
	l, err := Parse("test", []byte(minimalLayout))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if l.Name != "demo" {
		t.Errorf("Name = %q, want demo", l.Name)
	}
	if len(l.TopLevelFiles) != 1 || len(l.TopLevelFiles[0].Lines) != 2 {
		t.Errorf("unexpected top-level files: %+v", l.TopLevelFiles)
	}
	if l.FileCount() != 2 {
		t.Errorf("FileCount() = %d, want 2", l.FileCount())
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"missing name", strings.Replace(minimalLayout, "name: demo\n", "", 1), "name"},
		{"absolute directory", strings.Replace(minimalLayout, "  - docs\n", "  - /etc\n", 1), "/directories/0"},
		{"nested stub name", strings.Replace(minimalLayout, "intro.md", "sub/intro.md", 1), "/files/0/names/0"},
		{"unknown key", minimalLayout + "extra: true\n", "extra"},
		{"lines not strings", strings.Replace(minimalLayout, `["# demo", ""]`, "[1, 2]", 1), "/top_level_files/0/lines/0"},
		{"empty document", "", "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", []byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			var invalid *InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want *InvalidError", err)
			}
			if len(invalid.Issues) == 0 {
				t.Fatal("InvalidError has no issues")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse("test", []byte("name: [unterminated"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("error should mention YAML parsing, got: %v", err)
	}
}

func TestParseRejectsEscapingPaths(t *testing.T) {
	docs := map[string]string{
		"dot-dot directory":  strings.Replace(minimalLayout, "  - docs/guides\n", "  - docs/../../outside\n", 1),
		"dot-dot file group": strings.Replace(minimalLayout, "  - dir: docs/guides\n", "  - dir: ..\n", 1),
		"dot-dot stub name":  strings.Replace(minimalLayout, "intro.md", "..", 1),
		"dot-dot root name":  strings.Replace(minimalLayout, "name: demo", `name: ".."`, 1),
		"dot-dot top-level":  strings.Replace(minimalLayout, "name: README.md", "name: ../README.md", 1),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("test", []byte(doc))
			if !errors.Is(err, ErrPathEscapesRoot) {
				t.Errorf("error = %v, want ErrPathEscapesRoot", err)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"v1.4.2", false},
		{"1.99.0", false},
		{"0.9.0", true},
		{"2.0.0", true},
		{"banana", true},
	}

	for _, tt := range tests {
		doc := strings.Replace(minimalLayout, `"1.0.0"`, `"`+tt.version+`"`, 1)
		_, err := Parse("test", []byte(doc))
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedVersion) {
				t.Errorf("version %q: error = %v, want ErrUnsupportedVersion", tt.version, err)
			}
		} else if err != nil {
			t.Errorf("version %q: unexpected error %v", tt.version, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte(minimalLayout), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Name != "demo" {
		t.Errorf("Name = %q, want demo", l.Name)
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"docs", "docs", false},
		{"docs/architecture", "docs/architecture", false},
		{"docs/./api", "docs/api", false},
		{"docs/../tests", "tests", false},
		{"", "", true},
		{".", "", true},
		{"..", "", true},
		{"../x", "", true},
		{"docs/../../x", "", true},
		{"/etc", "", true},
		{`docs\api`, "", true},
		{"C:/Windows", "", true},
	}

	for _, tt := range tests {
		got, err := CleanPath(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrPathEscapesRoot) {
				t.Errorf("CleanPath(%q) error = %v, want ErrPathEscapesRoot", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("CleanPath(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CleanPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
