package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sector is the top-level regulatory domain that selects a control table.
type Sector string

const (
	SectorHealthcare Sector = "Healthcare"
	SectorFinance    Sector = "Finance"
)

// Sectors lists the supported sectors in display order.
var Sectors = []Sector{SectorHealthcare, SectorFinance}

// SystemType is the category of AI system being governed.
type SystemType string

const (
	SystemML    SystemType = "ML"
	SystemLLM   SystemType = "LLM"
	SystemAgent SystemType = "Agent"
)

// SystemTypes lists the supported system types in display order.
var SystemTypes = []SystemType{SystemML, SystemLLM, SystemAgent}

// RiskTier drives control strictness.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// RiskTiers lists the supported risk tiers from least to most strict.
var RiskTiers = []RiskTier{RiskLow, RiskMedium, RiskHigh}

// ParseSector matches s case-insensitively against the supported sectors.
func ParseSector(s string) (Sector, error) {
	for _, v := range Sectors {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid sector %q: choose Healthcare or Finance", s)
}

// ParseSystemType matches s case-insensitively against the supported system types.
func ParseSystemType(s string) (SystemType, error) {
	for _, v := range SystemTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid system type %q: choose ML, LLM or Agent", s)
}

// ParseRiskTier matches s case-insensitively against the supported risk tiers.
func ParseRiskTier(s string) (RiskTier, error) {
	for _, v := range RiskTiers {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid risk tier %q: choose Low, Medium or High", s)
}

// UseCase is a named AI initiative. Reference data, never mutated after load.
type UseCase struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Sector      Sector     `json:"sector"`
	SystemType  SystemType `json:"system_type"`
	RiskTier    RiskTier   `json:"risk_tier"`
}

// Label is the "<name> (<id>)" string used by selectors.
func (u UseCase) Label() string {
	return fmt.Sprintf("%s (%s)", u.Name, u.ID)
}

// TemplateEntry is the rule set for one sector/system-type/risk-tier cell.
// List order is significant: it signals priority to the human reviewer.
type TemplateEntry struct {
	Controls         []string `json:"controls"`
	Validation       []string `json:"validation"`
	Monitoring       []string `json:"monitoring"`
	IncidentTriggers []string `json:"incident_triggers"`
}

// SectorTemplates is the on-disk layout of one sector file:
// system_type -> risk_tier -> entry.
type SectorTemplates map[SystemType]map[RiskTier]TemplateEntry

// Playbook is the resolved control set for a use case.
// When Error is set the lookup failed and every other field is empty.
type Playbook struct {
	Sector         Sector     `json:"sector"`
	SystemType     SystemType `json:"system_type"`
	RiskTier       RiskTier   `json:"risk_tier"`
	Controls       []string   `json:"controls"`
	SectorEmphasis string     `json:"sector_emphasis"`
	Error          string     `json:"-"`
}

// Failed reports whether the playbook is an error record.
func (p Playbook) Failed() bool {
	return p.Error != ""
}

type playbookJSON struct {
	Sector         Sector     `json:"sector"`
	SystemType     SystemType `json:"system_type"`
	RiskTier       RiskTier   `json:"risk_tier"`
	Controls       []string   `json:"controls"`
	SectorEmphasis string     `json:"sector_emphasis"`
}

type playbookErrorJSON struct {
	Error string `json:"error"`
}

// MarshalJSON emits {"error": ...} alone for failed playbooks.
func (p Playbook) MarshalJSON() ([]byte, error) {
	if p.Failed() {
		return marshalPlain(playbookErrorJSON{Error: p.Error})
	}
	controls := p.Controls
	if controls == nil {
		controls = []string{}
	}
	return marshalPlain(playbookJSON{
		Sector:         p.Sector,
		SystemType:     p.SystemType,
		RiskTier:       p.RiskTier,
		Controls:       controls,
		SectorEmphasis: p.SectorEmphasis,
	})
}

// UnmarshalJSON accepts both the success and the error shape.
func (p *Playbook) UnmarshalJSON(data []byte) error {
	var raw struct {
		playbookJSON
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Playbook{
		Sector:         raw.Sector,
		SystemType:     raw.SystemType,
		RiskTier:       raw.RiskTier,
		Controls:       raw.Controls,
		SectorEmphasis: raw.SectorEmphasis,
		Error:          raw.Error,
	}
	return nil
}

// ConfigSnapshot merges everything generated for one use case.
// GeneratedTimestamp is the only field not derived from the inputs.
type ConfigSnapshot struct {
	UseCaseDetails         UseCase  `json:"use_case_details"`
	AIPlaybook             Playbook `json:"ai_playbook"`
	ValidationRequirements []string `json:"validation_requirements"`
	AcceptanceThresholds   []string `json:"acceptance_thresholds"`
	MonitoringKPIs         []string `json:"monitoring_kpis"`
	IncidentTriggers       []string `json:"incident_triggers"`
	GeneratedTimestamp     string   `json:"generated_timestamp"`
	Error                  string   `json:"error,omitempty"`
}

// TimestampFormat is the ISO-8601 layout used for every generated timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000Z"
