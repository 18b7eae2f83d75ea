package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a dry-run conformance scenario.
//
// A scenario materializes a fixture tree in a fresh working root, then
// drives the command under test through a sequence of run and
// dry-run-check steps.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for report comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// DryRunFlag overrides the marker token appended for dry-run checks.
	// Empty means DefaultDryRunFlag.
	DryRunFlag string `yaml:"dry_run_flag,omitempty"`

	// Setup describes the fixture tree created in the working root before
	// any step runs.
	Setup []SetupEntry `yaml:"setup,omitempty"`

	// Steps is the ordered list of harness operations.
	Steps []Step `yaml:"steps"`
}

// SetupEntry creates one fixture entry. Exactly one of Path or Dir must be
// set: Path writes a file with Content, Dir creates an empty directory.
type SetupEntry struct {
	// Path is a slash-separated relative file path.
	Path string `yaml:"path,omitempty"`

	// Content is the file content written to Path.
	Content string `yaml:"content,omitempty"`

	// Dir is a slash-separated relative directory path, created empty.
	Dir string `yaml:"dir,omitempty"`
}

// Step is one harness operation. Exactly one of Run or DryRunCheck must be
// set.
type Step struct {
	// Run executes the command with this argument list and asserts the
	// expected exit code.
	Run []string `yaml:"run,omitempty"`

	// DryRunCheck executes the command with this argument list plus the
	// dry-run flag and verifies the working root did not drift.
	DryRunCheck []string `yaml:"dry_run_check,omitempty"`

	// ExitCode is the expected exit code for Run steps. Defaults to 0.
	// Ignored for DryRunCheck steps, which always require success.
	ExitCode int `yaml:"exit_code,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Returns an error if
// the file doesn't exist, is malformed, contains unknown fields (typos), or
// is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // reject unknown fields, catches typos
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, entry := range s.Setup {
		hasPath := entry.Path != ""
		hasDir := entry.Dir != ""
		if hasPath == hasDir {
			return fmt.Errorf("setup[%d]: exactly one of path or dir is required", i)
		}
		if hasDir && entry.Content != "" {
			return fmt.Errorf("setup[%d]: content is only valid with path", i)
		}
	}

	for i, step := range s.Steps {
		hasRun := len(step.Run) > 0
		hasCheck := len(step.DryRunCheck) > 0
		if hasRun == hasCheck {
			return fmt.Errorf("steps[%d]: exactly one of run or dry_run_check is required", i)
		}
		if hasCheck && step.ExitCode != 0 {
			return fmt.Errorf("steps[%d]: exit_code is only valid with run", i)
		}
	}

	return nil
}
