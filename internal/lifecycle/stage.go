// Package lifecycle holds the project state machine and the field mapping
// applied on each forward transition. Everything here is pure; persistence
// lives in the service layer.
package lifecycle

import "github.com/alexanderramin/agencyops/internal/docstore"

type Stage string

const (
	StageUpcoming      Stage = "upcoming"
	StageOnDevelopment Stage = "ongoing"
	StageCompleted     Stage = "completed"
)

// Stages in lifecycle order.
var Stages = []Stage{StageUpcoming, StageOnDevelopment, StageCompleted}

// Collection is where records in this stage are stored.
func (s Stage) Collection() docstore.Collection {
	switch s {
	case StageUpcoming:
		return docstore.UpcomingProjects
	case StageOnDevelopment:
		return docstore.OnDevelopmentProjects
	case StageCompleted:
		return docstore.CompletedProjects
	}
	return ""
}

func (s Stage) Terminal() bool {
	return s == StageCompleted
}

// CanTransition reports whether from→to is one of the two forward moves.
func CanTransition(from, to Stage) bool {
	return (from == StageUpcoming && to == StageOnDevelopment) ||
		(from == StageOnDevelopment && to == StageCompleted)
}
