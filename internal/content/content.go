package content

import (
	"fmt"
	"sort"
	"strings"
)

// Rule produces the placeholder lines for a file name.
type Rule func(name string) []string

// rules is keyed by extension, leading dot included.
var rules = map[string]Rule{
	".py": func(name string) []string {
		return []string{"# " + name, "# Python code placeholder."}
	},
	".yaml": yamlRule,
	".yml":  yamlRule,
	".json": func(name string) []string {
		return []string{"{", fmt.Sprintf(`  "description": "Placeholder for %s"`, name), "}"}
	},
	".txt": func(name string) []string {
		return []string{"# " + name, "# Text notes or data."}
	},
	".sh": func(name string) []string {
		return []string{"#!/usr/bin/env bash", "# " + name, "echo 'Running script...'"}
	},
	".ipynb": func(string) []string {
		return []string{`{"cells":[],"metadata":{},"nbformat":4,"nbformat_minor":5}`}
	},
	".md": func(name string) []string {
		return []string{"# " + name, "# Markdown documentation."}
	},
	".mmd": func(name string) []string {
		return []string{"%% Mermaid diagram for " + name, "graph LR;", "A-->B;"}
	},
}

func yamlRule(name string) []string {
	return []string{"# " + name, "# YAML config file placeholder."}
}

// Fallback is the rule applied to any extension not in the table.
func Fallback(name string) []string {
	return []string{"# " + name, "# Placeholder content. Adjust as needed."}
}

// ForFile returns the placeholder lines for name, chosen by its extension.
func ForFile(name string) []string {
	if rule, ok := rules[Extension(name)]; ok {
		return rule(name)
	}
	return Fallback(name)
}

// Known reports whether ext (with its leading dot) has a dedicated rule.
func Known(ext string) bool {
	_, ok := rules[ext]
	return ok
}

// Extensions returns the extensions with a dedicated rule, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(rules))
	for ext := range rules {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extension returns the suffix of the final path element starting at its last
// dot. Leading dots do not start an extension, so ".gitkeep" and "..env" have
// none, while "archive.tar.gz" yields ".gz".
func Extension(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	base := strings.TrimLeft(name, ".")
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return base[i:]
}

// Render joins lines with newlines and terminates the result with one.
func Render(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
