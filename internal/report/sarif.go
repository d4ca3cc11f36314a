package report

import (
	"encoding/json"
	"path/filepath"

	"github.com/google/uuid"

	"sharpcheck/internal/analysis"
	"sharpcheck/internal/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	AutomationDetails sarifAutomationDetails `json:"automationDetails"`
	Tool              sarifTool              `json:"tool"`
	Results           []sarifResult          `json:"results"`
}

type sarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	FullDescription  sarifMessage           `json:"fullDescription"`
	HelpURI          string                 `json:"helpUri,omitempty"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level   string `json:"level"`
	Enabled bool   `json:"enabled"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from the diagnostics of one
// run. All file URIs are made relative to projectRoot; absolute paths are
// never included so that reports are safe to share.
func GenerateSARIF(projectRoot string, rules []analysis.Rule, diagnostics []analysis.Diagnostic) ([]byte, error) {
	results := make([]sarifResult, 0, len(diagnostics))
	for _, d := range diagnostics {
		result := sarifResult{
			RuleID:  d.RuleID,
			Level:   severityToLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
		}
		if d.Location.File != "" {
			loc := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI:       relativeURI(projectRoot, d.Location.File),
						URIBaseID: "%SRCROOT%",
					},
				},
			}
			if d.Location.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{
					StartLine:   d.Location.Line,
					StartColumn: d.Location.Column,
				}
			}
			result.Locations = []sarifLocation{loc}
		}
		results = append(results, result)
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				AutomationDetails: sarifAutomationDetails{GUID: uuid.NewString()},
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "sharpcheck",
						Version: version.Version,
						Rules:   buildSARIFRules(rules),
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

func buildSARIFRules(rules []analysis.Rule) []sarifRule {
	out := make([]sarifRule, 0, len(rules))
	for _, rule := range rules {
		desc := rule.Descriptor()
		out = append(out, sarifRule{
			ID:               desc.ID,
			Name:             desc.Name,
			ShortDescription: sarifMessage{Text: desc.Title},
			FullDescription:  sarifMessage{Text: desc.Description},
			HelpURI:          desc.HelpURI,
			DefaultConfig: sarifRuleDefaultConfig{
				Level:   severityToLevel(desc.Severity),
				Enabled: desc.EnabledByDefault,
			},
		})
	}
	return out
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}

func severityToLevel(sev analysis.Severity) string {
	switch sev {
	case analysis.SeverityError:
		return "error"
	case analysis.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
