package scaffold

import (
	"fmt"
	"os"
	"path"

	"github.com/agentx-labs/skelgen/internal/content"
	"github.com/agentx-labs/skelgen/internal/layout"
)

// MarkerName is the file written into every declared directory.
const MarkerName = ".gitkeep"

const (
	dirPerm        os.FileMode = 0o755
	filePerm       os.FileMode = 0o644
	executablePerm os.FileMode = 0o755
)

// EntryKind identifies what an Entry creates.
type EntryKind string

const (
	KindRoot      EntryKind = "root"
	KindTopLevel  EntryKind = "top-level"
	KindDirectory EntryKind = "directory"
	KindFile      EntryKind = "file"
)

// Entry is one step of a plan. Path is slash-separated and starts with the
// root name. For KindDirectory, Lines hold the marker written to Path/.gitkeep.
type Entry struct {
	Kind  EntryKind   `yaml:"kind" json:"kind"`
	Path  string      `yaml:"path" json:"path"`
	Mode  os.FileMode `yaml:"mode" json:"mode"`
	Lines []string    `yaml:"lines,omitempty" json:"lines,omitempty"`
}

// Plan is the ordered list of filesystem operations for one layout.
type Plan struct {
	Root    string  `yaml:"root" json:"root"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// MarkerLines returns the content of the .gitkeep written into dir.
func MarkerLines(dir string) []string {
	return []string{fmt.Sprintf("# .gitkeep to keep %s directory in version control.", dir)}
}

func fileMode(name string) os.FileMode {
	if content.Extension(name) == ".sh" {
		return executablePerm
	}
	return filePerm
}

// BuildPlan turns a layout into an ordered plan without touching disk: the
// root, then top-level files, then directories with markers, then stubs.
func BuildPlan(l *layout.Layout) (*Plan, error) {
	if err := l.CheckPaths(); err != nil {
		return nil, err
	}

	root := l.Name
	p := &Plan{Root: root}
	p.Entries = append(p.Entries, Entry{Kind: KindRoot, Path: root, Mode: dirPerm})

	for _, f := range l.TopLevelFiles {
		rel, _ := layout.CleanPath(f.Name)
		p.Entries = append(p.Entries, Entry{
			Kind:  KindTopLevel,
			Path:  path.Join(root, rel),
			Mode:  fileMode(rel),
			Lines: f.Lines,
		})
	}

	for _, d := range l.Directories {
		rel, _ := layout.CleanPath(d)
		p.Entries = append(p.Entries, Entry{
			Kind:  KindDirectory,
			Path:  path.Join(root, rel),
			Mode:  dirPerm,
			Lines: MarkerLines(d),
		})
	}

	for _, df := range l.Files {
		dir, _ := layout.CleanPath(df.Dir)
		for _, name := range df.Names {
			p.Entries = append(p.Entries, Entry{
				Kind:  KindFile,
				Path:  path.Join(root, dir, name),
				Mode:  fileMode(name),
				Lines: content.ForFile(name),
			})
		}
	}

	return p, nil
}

// Files returns every file path the plan writes, markers included, in order.
func (p *Plan) Files() []string {
	var files []string
	for _, e := range p.Entries {
		switch e.Kind {
		case KindTopLevel, KindFile:
			files = append(files, e.Path)
		case KindDirectory:
			files = append(files, path.Join(e.Path, MarkerName))
		}
	}
	return files
}

// Collisions returns the paths written more than once, and file paths that
// are also used as directories, in order of first conflict.
func (p *Plan) Collisions() []string {
	dirs := map[string]bool{}
	for _, e := range p.Entries {
		if e.Kind == KindRoot || e.Kind == KindDirectory {
			for d := e.Path; d != "." && d != "/" && !dirs[d]; d = path.Dir(d) {
				dirs[d] = true
			}
		}
	}
	for _, f := range p.Files() {
		for d := path.Dir(f); d != "." && d != "/" && !dirs[d]; d = path.Dir(d) {
			dirs[d] = true
		}
	}

	var out []string
	reported := map[string]bool{}
	written := map[string]bool{}
	for _, f := range p.Files() {
		conflict := written[f] || dirs[f]
		written[f] = true
		if conflict && !reported[f] {
			reported[f] = true
			out = append(out, f)
		}
	}
	return out
}
