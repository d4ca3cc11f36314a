package report

import (
	"encoding/json"
	"strings"
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"sharpcheck/internal/analysis"
)

type staticRule struct {
	desc analysis.Descriptor
}

func (r *staticRule) Descriptor() *analysis.Descriptor { return &r.desc }
func (r *staticRule) Kinds() []string                  { return []string{"class_declaration"} }
func (r *staticRule) Check(ctx *analysis.Context, node *sitter.Node) []analysis.Diagnostic {
	return nil
}

func TestGenerateSARIF(t *testing.T) {
	rule := &staticRule{desc: analysis.Descriptor{
		ID:               "SA1400",
		Name:             "AccessModifierMustBeDeclared",
		Title:            "Access modifier must be declared",
		Description:      "The access modifier for a C# element has not been explicitly defined.",
		HelpURI:          "https://github.com/DotNetAnalyzers/StyleCopAnalyzers/blob/master/documentation/SA1400.md",
		Severity:         analysis.SeverityWarning,
		EnabledByDefault: true,
	}}

	diagnostics := []analysis.Diagnostic{
		{
			RuleID:   "SA1400",
			Severity: analysis.SeverityError,
			Message:  "Element 'Foo' must declare an access modifier",
			Location: analysis.Location{File: "/project/src/Foo.cs", Line: 3, Column: 5},
		},
		{
			RuleID:   "SA1400",
			Severity: analysis.SeverityWarning,
			Message:  "Element 'Bar' must declare an access modifier",
			Location: analysis.Location{File: "src/Bar.cs", Line: 1, Column: 1},
		},
	}

	data, err := GenerateSARIF("/project", []analysis.Rule{rule}, diagnostics)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("generated report is not valid JSON: %v", err)
	}
	if doc["version"] != "2.1.0" {
		t.Errorf("expected SARIF version 2.1.0, got %v", doc["version"])
	}

	runs := doc["runs"].([]interface{})
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0].(map[string]interface{})

	guid := run["automationDetails"].(map[string]interface{})["guid"].(string)
	if guid == "" {
		t.Error("expected a run GUID")
	}

	driver := run["tool"].(map[string]interface{})["driver"].(map[string]interface{})
	if driver["name"] != "sharpcheck" {
		t.Errorf("expected driver name sharpcheck, got %v", driver["name"])
	}
	driverRules := driver["rules"].([]interface{})
	if len(driverRules) != 1 {
		t.Fatalf("expected 1 rule in driver metadata, got %d", len(driverRules))
	}
	meta := driverRules[0].(map[string]interface{})
	if meta["id"] != "SA1400" || meta["name"] != "AccessModifierMustBeDeclared" {
		t.Errorf("unexpected rule metadata: %v", meta)
	}
	config := meta["defaultConfiguration"].(map[string]interface{})
	if config["level"] != "warning" || config["enabled"] != true {
		t.Errorf("unexpected default configuration: %v", config)
	}

	results := run["results"].([]interface{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first := results[0].(map[string]interface{})
	if first["level"] != "error" {
		t.Errorf("expected severity override to map to error level, got %v", first["level"])
	}

	// Absolute paths are relativized against the project root.
	if strings.Contains(string(data), "/project/src/Foo.cs") {
		t.Error("expected no absolute paths in the report")
	}
	loc := first["locations"].([]interface{})[0].(map[string]interface{})
	artifact := loc["physicalLocation"].(map[string]interface{})["artifactLocation"].(map[string]interface{})
	if artifact["uri"] != "src/Foo.cs" {
		t.Errorf("expected relative URI src/Foo.cs, got %v", artifact["uri"])
	}
	if artifact["uriBaseId"] != "%SRCROOT%" {
		t.Errorf("expected %%SRCROOT%% base, got %v", artifact["uriBaseId"])
	}
	region := loc["physicalLocation"].(map[string]interface{})["region"].(map[string]interface{})
	if region["startLine"] != float64(3) || region["startColumn"] != float64(5) {
		t.Errorf("unexpected region: %v", region)
	}
}

func TestGenerateSARIFEmpty(t *testing.T) {
	data, err := GenerateSARIF("", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var doc sarifReport
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(doc.Runs))
	}
	if doc.Runs[0].Results == nil || len(doc.Runs[0].Results) != 0 {
		t.Errorf("expected empty non-nil results, got %v", doc.Runs[0].Results)
	}
}
