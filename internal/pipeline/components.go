// Package pipeline runs one end-to-end playbook generation: resolve the use
// case, generate and render every component, write the artifacts, then hash
// and package them.
package pipeline

import (
	"time"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/playbook"
	"github.com/ppiankov/sectorbook/internal/render"
	"github.com/ppiankov/sectorbook/internal/templates"
)

// Components holds everything generated in memory for one use case.
type Components struct {
	UseCase   model.UseCase        `json:"use_case"`
	Playbook  model.Playbook       `json:"playbook"`
	Checklist string               `json:"checklist"`
	KPIs      []string             `json:"monitoring_kpis"`
	Triggers  []string             `json:"incident_triggers"`
	Snapshot  model.ConfigSnapshot `json:"snapshot"`
	Summary   string               `json:"summary"`
}

// Degraded reports whether the template lookup failed, leaving the
// components as error records.
func (c Components) Degraded() bool {
	return c.Playbook.Failed()
}

// Generate computes every component for uc. It touches no files.
func Generate(uc model.UseCase, l templates.Lookuper, lead string, now time.Time) Components {
	c := Components{
		UseCase:   uc,
		Playbook:  playbook.Generate(uc, l),
		Checklist: render.Checklist(uc, l),
		KPIs:      playbook.KPIs(uc, l),
		Triggers:  playbook.Triggers(uc, l),
	}
	c.Snapshot = render.Snapshot(uc, c.Playbook, c.Checklist, c.KPIs, c.Triggers, now)
	c.Summary = render.Summary(uc, c.Snapshot, lead, now)
	return c
}
