package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/skelgen/internal/content"
	"github.com/agentx-labs/skelgen/internal/layout"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var (
	// ErrRootNotDirectory is returned when the output root exists but is not
	// a directory. Nothing is removed in that case.
	ErrRootNotDirectory = errors.New("output root exists and is not a directory")

	// ErrCollision is returned under CollisionError when two entries write
	// the same path.
	ErrCollision = errors.New("layout writes the same path more than once")
)

// CollisionPolicy decides what happens when a plan writes a path twice.
type CollisionPolicy string

const (
	// CollisionOverwrite lets the last write win and records a warning.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionError refuses to generate anything.
	CollisionError CollisionPolicy = "error"
)

// ParseCollisionPolicy converts a config value to a policy. Empty means
// CollisionOverwrite.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionError:
		return CollisionError, nil
	}
	return "", fmt.Errorf("invalid collision policy %q: must be %q or %q", s, CollisionOverwrite, CollisionError)
}

// Options tune a Generator.
type Options struct {
	// BaseDir prefixes paths in progress output and Result.OutputDir. It does
	// not affect where files are written; that is the filesystem's root.
	BaseDir     string
	OnCollision CollisionPolicy
	// Quiet suppresses per-path progress lines. The completion line is
	// always written.
	Quiet bool
}

// Result holds the outcome of a generation run. Dirs and Files are relative
// to the output root, in write order.
type Result struct {
	OutputDir string
	Dirs      []string
	Files     []string
	Warnings  []string
}

// Generator writes layouts into a billy filesystem.
type Generator struct {
	fs   billy.Filesystem
	out  io.Writer
	opts Options
}

// New returns a Generator writing into fsys and reporting progress to out.
func New(fsys billy.Filesystem, out io.Writer, opts Options) *Generator {
	if out == nil {
		out = io.Discard
	}
	if opts.OnCollision == "" {
		opts.OnCollision = CollisionOverwrite
	}
	return &Generator{fs: fsys, out: out, opts: opts}
}

// Generate wipes the layout's output root and rebuilds it. A failure aborts
// the remaining steps and leaves whatever was already written in place.
func (g *Generator) Generate(l *layout.Layout) (*Result, error) {
	plan, err := BuildPlan(l)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputDir: g.display(plan.Root)}

	if collisions := plan.Collisions(); len(collisions) > 0 {
		if g.opts.OnCollision == CollisionError {
			return nil, fmt.Errorf("%w: %s", ErrCollision, strings.Join(collisions, ", "))
		}
		for _, c := range collisions {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s is written more than once; the last write wins", c))
		}
	}

	if err := g.removeRoot(plan.Root); err != nil {
		return nil, err
	}

	for _, e := range plan.Entries {
		rel := strings.TrimPrefix(strings.TrimPrefix(e.Path, plan.Root), "/")

		switch e.Kind {
		case KindRoot:
			if err := g.mkdir(e.Path); err != nil {
				return nil, err
			}
			g.progress("Created directory: %s\n", g.display(e.Path))

		case KindTopLevel:
			if err := g.writeFile(e.Path, e.Lines, e.Mode); err != nil {
				return nil, err
			}
			result.Files = append(result.Files, rel)
			g.progress("Created top-level file: %s\n", g.display(e.Path))

		case KindDirectory:
			if err := g.mkdir(e.Path); err != nil {
				return nil, err
			}
			if err := g.writeFile(path.Join(e.Path, MarkerName), e.Lines, filePerm); err != nil {
				return nil, err
			}
			result.Dirs = append(result.Dirs, rel)
			result.Files = append(result.Files, path.Join(rel, MarkerName))
			g.progress("Created directory and .gitkeep: %s\n", g.display(e.Path))

		case KindFile:
			if err := g.writeFile(e.Path, e.Lines, e.Mode); err != nil {
				return nil, err
			}
			result.Files = append(result.Files, rel)
			g.progress("Created file: %s\n", g.display(e.Path))
		}
	}

	fmt.Fprintf(g.out, "File tree creation for %s completed with a comprehensive structure!\n", l.Name)
	return result, nil
}

// removeRoot deletes a previous output root. Anything other than a directory
// at that path is left alone and reported.
func (g *Generator) removeRoot(root string) error {
	name := filepath.FromSlash(root)
	info, err := g.fs.Lstat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking output root %s: %w", g.display(root), err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDirectory, g.display(root))
	}
	if err := util.RemoveAll(g.fs, name); err != nil {
		return fmt.Errorf("removing existing output root %s: %w", g.display(root), err)
	}
	return nil
}

func (g *Generator) mkdir(p string) error {
	if err := g.fs.MkdirAll(filepath.FromSlash(p), dirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", g.display(p), err)
	}
	return nil
}

func (g *Generator) writeFile(p string, lines []string, mode os.FileMode) error {
	if err := g.mkdir(path.Dir(p)); err != nil {
		return err
	}
	if err := util.WriteFile(g.fs, filepath.FromSlash(p), content.Render(lines), mode); err != nil {
		return fmt.Errorf("writing %s: %w", g.display(p), err)
	}
	return nil
}

func (g *Generator) progress(format string, args ...any) {
	if g.opts.Quiet {
		return
	}
	fmt.Fprintf(g.out, format, args...)
}

func (g *Generator) display(p string) string {
	return filepath.Join(g.opts.BaseDir, filepath.FromSlash(p))
}
