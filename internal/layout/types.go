package layout

// Layout is the full description of one generated skeleton.
type Layout struct {
	SchemaVersion string         `yaml:"schema_version" json:"schema_version"`
	Name          string         `yaml:"name" json:"name"`
	TopLevelFiles []TopLevelFile `yaml:"top_level_files" json:"top_level_files"`
	Directories   []string       `yaml:"directories" json:"directories"`
	Files         []DirFiles     `yaml:"files" json:"files"`
}

// TopLevelFile is written verbatim under the output root.
type TopLevelFile struct {
	Name  string   `yaml:"name" json:"name"`
	Lines []string `yaml:"lines" json:"lines"`
}

// DirFiles lists the stub files created inside Dir.
type DirFiles struct {
	Dir   string   `yaml:"dir" json:"dir"`
	Names []string `yaml:"names" json:"names"`
}

// FileCount returns the number of stub files across all directories.
func (l *Layout) FileCount() int {
	n := 0
	for _, df := range l.Files {
		n += len(df.Names)
	}
	return n
}

// Clone returns a deep copy so callers can modify the result freely.
func (l *Layout) Clone() *Layout {
	c := &Layout{
		SchemaVersion: l.SchemaVersion,
		Name:          l.Name,
		Directories:   append([]string(nil), l.Directories...),
	}
	for _, f := range l.TopLevelFiles {
		c.TopLevelFiles = append(c.TopLevelFiles, TopLevelFile{
			Name:  f.Name,
			Lines: append([]string(nil), f.Lines...),
		})
	}
	for _, df := range l.Files {
		c.Files = append(c.Files, DirFiles{
			Dir:   df.Dir,
			Names: append([]string(nil), df.Names...),
		})
	}
	return c
}
