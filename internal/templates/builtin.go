package templates

import (
	_ "embed"

	"github.com/ppiankov/sectorbook/internal/model"
)

//go:embed defaults/healthcare_control_templates.json
var healthcareJSON []byte

//go:embed defaults/finance_control_templates.json
var financeJSON []byte

// builtinSectors maps each supported sector to its embedded default table.
var builtinSectors = map[model.Sector][]byte{
	model.SectorHealthcare: healthcareJSON,
	model.SectorFinance:    financeJSON,
}

// fileNames are the on-disk names of the per-sector template files.
var fileNames = map[model.Sector]string{
	model.SectorHealthcare: "healthcare_control_templates.json",
	model.SectorFinance:    "finance_control_templates.json",
}
