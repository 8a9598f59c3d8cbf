// Package registration models one course-registration YAML file and the
// content rules it must satisfy.
package registration

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Grading tracks a student can choose between.
const (
	GradingHomeworks = "homeworks"
	GradingProject   = "project"
)

// requiredFields in the order they are reported when missing.
var requiredFields = []string{
	"github_username",
	"first_name",
	"last_name",
	"repo",
	"grading",
	"agreement",
	"agree_to_rules",
}

// Registration is the typed view of a registration document. Repo and
// AgreeToRules are loosely typed on the wire (string-or-null, string-or-bool)
// and stay `any`.
type Registration struct {
	GithubUsername string `json:"github_username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Repo           any    `json:"repo,omitempty"`
	Grading        string `json:"grading"`
	Agreement      string `json:"agreement"`
	AgreeToRules   any    `json:"agree_to_rules,omitempty"`
}

// File is one parsed registration file. Raw keeps the top-level document so
// a missing key can be told apart from a present-but-empty one; Reg is the
// typed view and stays zero when the document does not fit the typed shape
// (ill-typed fields then surface as content findings, not load errors).
type File struct {
	Path string
	Raw  map[string]any
	Reg  Registration
}

// Load reads and parses the registration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registration file: %w", err)
	}
	return Parse(path, data)
}

// Parse parses a registration document. The given path is only used in
// messages, so callers may pass the repository-relative form students see.
// An empty document (or comments only) parses into Raw == nil without error.
func Parse(path string, data []byte) (*File, error) {
	f := &File{Path: path}
	if err := yaml.Unmarshal(data, &f.Raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if f.Raw == nil {
		return f, nil
	}
	// Best effort: a document whose fields do not fit the typed shape is
	// still validated field by field from Raw.
	_ = yaml.Unmarshal(data, &f.Reg)
	return f, nil
}

// Has reports whether the document contains the top-level key, whatever its
// value.
func (f *File) Has(key string) bool {
	_, ok := f.Raw[key]
	return ok
}
