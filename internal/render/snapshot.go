package render

import (
	"time"

	"github.com/ppiankov/sectorbook/internal/model"
)

// Snapshot merges the generated pieces for uc into one record. A failed
// playbook or checklist yields a snapshot that carries the error and no
// derived requirements or thresholds.
func Snapshot(uc model.UseCase, pb model.Playbook, checklistMD string, kpis, triggers []string, now time.Time) model.ConfigSnapshot {
	snap := model.ConfigSnapshot{
		UseCaseDetails:     uc,
		AIPlaybook:         pb,
		GeneratedTimestamp: now.UTC().Format(model.TimestampFormat),
	}

	switch {
	case pb.Failed():
		snap.Error = pb.Error
	case ChecklistFailed(checklistMD):
		snap.Error = checklistMD
	}
	if snap.Error != "" {
		snap.ValidationRequirements = []string{}
		snap.AcceptanceThresholds = []string{}
		snap.MonitoringKPIs = []string{}
		snap.IncidentTriggers = []string{}
		return snap
	}

	snap.ValidationRequirements = ExtractRequirements(checklistMD)
	snap.AcceptanceThresholds = SnapshotThresholds(ComboOf(uc))
	snap.MonitoringKPIs = orEmpty(kpis)
	snap.IncidentTriggers = orEmpty(triggers)
	return snap
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return clone(s)
}
