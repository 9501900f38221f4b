package render

import "github.com/ppiankov/sectorbook/internal/model"

// Combo keys the fixed threshold tables.
type Combo struct {
	Sector     model.Sector
	SystemType model.SystemType
	RiskTier   model.RiskTier
}

// ComboOf returns the table key for uc.
func ComboOf(uc model.UseCase) Combo {
	return Combo{Sector: uc.Sector, SystemType: uc.SystemType, RiskTier: uc.RiskTier}
}

// Thresholds are only defined for the high-risk ML and LLM cells. Any other
// combination renders an empty threshold section.
var checklistThresholds = map[Combo][]string{
	{model.SectorHealthcare, model.SystemML, model.RiskHigh}: {
		`- **False Negative Rate (FNR) for target conditions:** $FNR_{target\_condition} < 0.01$ (e.g., for critical diagnoses)`,
		`- **Bias in FNR across protected groups:** $\left| FNR_{protected\_group} - FNR_{overall} \right| < 0.02$ `,
		`- **Adversarial Robustness:** Model accuracy drop $< 5\%$ under specified adversarial attacks.`,
	},
	{model.SectorHealthcare, model.SystemLLM, model.RiskHigh}: {
		`- **Hallucination Rate (Medical Advice):** $P(\text{hallucination}) < 0.005$ for diagnostic support.`,
		`- **Privacy Leakage:** $P(\text{PHI exposure}) < 0.001$ in synthetic data generation or responses.`,
	},
	{model.SectorFinance, model.SystemML, model.RiskHigh}: {
		`- **Disparate Impact Ratio (DIR) for credit decisions:** $0.8 \le DIR \le 1.25$ for all protected groups.`,
		`- **False Positive Rate (FPR) for fraud detection:** $FPR_{fraud} < 0.001$ (to minimize legitimate transaction blocks).`,
	},
	{model.SectorFinance, model.SystemLLM, model.RiskHigh}: {
		`- **Financial Fact Accuracy:** $P(\text{error}) < 0.001$ for extracted financial figures/advice.`,
		`- **Prompt Injection Robustness:** Successful injection rate $< 0.01$ in red-teaming scenarios.`,
	},
}

// snapshotThresholds holds the same four cells as short-form strings.
var snapshotThresholds = map[Combo][]string{
	{model.SectorHealthcare, model.SystemML, model.RiskHigh}:  {"FNR < 0.01", "|FNR_group - FNR_overall| < 0.02"},
	{model.SectorHealthcare, model.SystemLLM, model.RiskHigh}: {"P(hallucination) < 0.005", "P(PHI exposure) < 0.001"},
	{model.SectorFinance, model.SystemML, model.RiskHigh}:     {"0.8 <= DIR <= 1.25", "FPR_fraud < 0.001"},
	{model.SectorFinance, model.SystemLLM, model.RiskHigh}:    {"P(error) < 0.001 (financial facts)", "Prompt injection rate < 0.01"},
}

type rationaleKey struct {
	Sector     model.Sector
	SystemType model.SystemType
}

var rationale = map[rationaleKey][]string{
	{model.SectorHealthcare, model.SystemML}: {
		"- **Patient Safety:** Mitigation of **False Negatives**, with strong clinical override and human-in-the-loop.",
		"- **Ethical Bias:** Fairness checks across demographic groups.",
		"- **Data Privacy:** HIPAA-oriented PHI protection controls.",
	},
	{model.SectorHealthcare, model.SystemLLM}: {
		"- **Medical Accuracy & Safety:** Preventing hallucinations and unsafe recommendations.",
		"- **PHI Protection:** Privacy leakage detection and PHI safeguards.",
	},
	{model.SectorFinance, model.SystemML}: {
		"- **Fairness & Integrity:** Bias/fairness analysis for high-stakes decisions (e.g., credit).",
		"- **Explainability & Auditability:** Transparent rationale and compliance-aligned logging.",
	},
	{model.SectorFinance, model.SystemLLM}: {
		"- **Accuracy of Advice:** Fact verification and hallucination mitigation.",
		"- **Regulatory Compliance:** PCI/GDPR/CCPA-oriented controls and audit trails.",
	},
}

var evidenceRequirements = []string{
	"- Detailed validation report including methodology, results, and statistical significance.",
	"- Dataset split documentation (training, validation, test, adversarial test sets).",
	"- Explainability analysis artifacts (e.g., SHAP values, LIME explanations).",
}

// ChecklistThresholds returns the Markdown threshold lines for c, or nil.
func ChecklistThresholds(c Combo) []string {
	return clone(checklistThresholds[c])
}

// SnapshotThresholds returns the short-form thresholds for c, never nil.
func SnapshotThresholds(c Combo) []string {
	out := clone(snapshotThresholds[c])
	if out == nil {
		return []string{}
	}
	return out
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
