package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed layout.yaml
var builtinYAML []byte

// SupportedVersions is the schema_version range this build understands.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

var (
	// ErrUnsupportedVersion is returned when schema_version is missing,
	// malformed, or outside SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported layout schema version")

	// ErrPathEscapesRoot is returned for absolute paths and paths that
	// climb out of the output root.
	ErrPathEscapesRoot = errors.New("path escapes output root")
)

var (
	builtin     *Layout
	builtinOnce sync.Once
	builtinErr  error

	versionConstraint = mustConstraint(SupportedVersions)
)

func mustConstraint(c string) *semver.Constraints {
	vc, err := semver.NewConstraint(c)
	if err != nil {
		panic(fmt.Sprintf("invalid version constraint %q: %v", c, err))
	}
	return vc
}

// InvalidError reports the schema violations found in a layout document.
type InvalidError struct {
	Source string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("layout %s is invalid: %s", e.Source, strings.Join(msgs, "; "))
}

// Default returns a copy of the built-in layout.
func Default() (*Layout, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse("built-in", builtinYAML)
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	return builtin.Clone(), nil
}

// Load reads and parses a layout file from disk.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse validates data against the layout schema, decodes it, and checks the
// schema version and path confinement. source names the document in errors.
func Parse(source string, data []byte) (*Layout, error) {
	res, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating layout %s: %w", source, err)
	}
	if !res.Valid {
		return nil, &InvalidError{Source: source, Issues: res.Issues}
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", source, err)
	}

	if err := CheckVersion(l.SchemaVersion); err != nil {
		return nil, fmt.Errorf("layout %s: %w", source, err)
	}
	if err := l.CheckPaths(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", source, err)
	}
	return &l, nil
}

// CheckVersion reports whether v satisfies SupportedVersions. A leading "v"
// is tolerated.
func CheckVersion(v string) error {
	sv, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, v, err)
	}
	if !versionConstraint.Check(sv) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, sv, SupportedVersions)
	}
	return nil
}

// CheckPaths verifies that every path in the layout stays inside the output
// root and that the root name and stub names are single path elements.
func (l *Layout) CheckPaths() error {
	if err := checkSegment(l.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	for _, f := range l.TopLevelFiles {
		if _, err := CleanPath(f.Name); err != nil {
			return fmt.Errorf("top-level file: %w", err)
		}
	}
	for _, d := range l.Directories {
		if _, err := CleanPath(d); err != nil {
			return fmt.Errorf("directory: %w", err)
		}
	}
	for _, df := range l.Files {
		if _, err := CleanPath(df.Dir); err != nil {
			return fmt.Errorf("files: %w", err)
		}
		for _, name := range df.Names {
			if err := checkSegment(name); err != nil {
				return fmt.Errorf("files in %s: %w", df.Dir, err)
			}
		}
	}
	return nil
}

// CleanPath normalizes a slash-separated relative path and rejects any path
// that is empty, absolute, the root itself, or outside the root.
func CleanPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrPathEscapesRoot)
	}
	if strings.Contains(p, `\`) || path.IsAbs(p) || (len(p) >= 2 && p[1] == ':') {
		return "", fmt.Errorf("%w: %q is not a relative slash path", ErrPathEscapesRoot, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrPathEscapesRoot, p)
	}
	return cleaned, nil
}

func checkSegment(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q is not a single path element", ErrPathEscapesRoot, name)
	}
	return nil
}
