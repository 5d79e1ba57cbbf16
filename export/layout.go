// Package export writes decomposition results as a dataset directory: layer
// graphs, per-axiom JSON or YAML documents and a manifest with checksums.
package export

import (
	"path/filepath"
	"strings"
)

// Layout holds dataset-relative file paths.
type Layout struct {
	RoleGraph       string `yaml:"role_graph"`
	TaxonomyGraph   string `yaml:"taxonomy_graph"`
	SchemaGraph     string `yaml:"schema_graph"`
	AssertionGraph  string `yaml:"assertion_graph"`
	Taxonomy        string `yaml:"taxonomy"`
	Schema          string `yaml:"schema"`
	RoleDomainRange string `yaml:"roles_domain_range"`
	RoleHierarchy   string `yaml:"roles_hierarchy"`
	ClassAssertions string `yaml:"class_assertions"`
	Manifest        string `yaml:"manifest"`
}

// DefaultLayout returns the standard dataset layout.
func DefaultLayout() Layout {
	return Layout{
		RoleGraph:       "rbox/roles.nt",
		TaxonomyGraph:   "tbox/taxonomy.nt",
		SchemaGraph:     "tbox/schema.nt",
		AssertionGraph:  "abox/class_assertions.nt",
		Taxonomy:        "tbox/taxonomy.json",
		Schema:          "tbox/schema.json",
		RoleDomainRange: "rbox/roles_domain_range.json",
		RoleHierarchy:   "rbox/roles_hierarchy.json",
		ClassAssertions: "abox/class_assertions.json",
		Manifest:        "manifest.yaml",
	}
}

// Merge copies the non-empty paths of other into l.
func (l *Layout) Merge(other Layout) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&l.RoleGraph, other.RoleGraph)
	set(&l.TaxonomyGraph, other.TaxonomyGraph)
	set(&l.SchemaGraph, other.SchemaGraph)
	set(&l.AssertionGraph, other.AssertionGraph)
	set(&l.Taxonomy, other.Taxonomy)
	set(&l.Schema, other.Schema)
	set(&l.RoleDomainRange, other.RoleDomainRange)
	set(&l.RoleHierarchy, other.RoleHierarchy)
	set(&l.ClassAssertions, other.ClassAssertions)
	set(&l.Manifest, other.Manifest)
}

// withExtension replaces the extension of rel with ext.
func withExtension(rel, ext string) string {
	if ext == "" {
		return rel
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
}
