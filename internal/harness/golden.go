package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// report is the JSON shape compared against golden files. It contains only
// machine-independent data: canonical relative paths, exit codes, and
// statuses - never absolute paths or timestamps.
type report struct {
	Scenario string        `json:"scenario"`
	Pass     bool          `json:"pass"`
	Events   []ReportEvent `json:"events"`
}

// RunScenarioWithGolden executes a scenario and compares its report against
// a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution itself fails; report mismatches
// fail the test through goldie.
func RunScenarioWithGolden(t *testing.T, scenario *Scenario, cmd Command, opts ...Option) error {
	t.Helper()

	result, err := RunScenario(scenario, cmd, opts...)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result's report against the
// golden file for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	rep := report{
		Scenario: scenarioName,
		Pass:     result.Pass,
		Events:   result.Events,
	}

	reportJSON, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, append(reportJSON, '\n'))

	return nil
}
