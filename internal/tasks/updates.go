package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchHealth Phase = iota
	FetchRooms
	FetchResources
	FetchTemplates
	SyncJournal
	SyncMood
	ExportEntries
)

func (p Phase) String() string {
	switch p {
	case FetchHealth:
		return "fetch_health"
	case FetchRooms:
		return "fetch_rooms"
	case FetchResources:
		return "fetch_resources"
	case FetchTemplates:
		return "fetch_templates"
	case SyncJournal:
		return "sync_journal"
	case SyncMood:
		return "sync_mood"
	case ExportEntries:
		return "export_entries"
	default:
		return ""
	}
}

func operationUpdate(op catalogOperation, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   op.phase,
		Step:    step,
		Total:   total,
		Message: op.message,
	}
}

func syncJournalUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncJournal,
		Step:    step,
		Total:   total,
		Message: "Pulling journal entries...",
	}
}

func syncMoodUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncMood,
		Step:    step,
		Total:   total,
		Message: "Pulling mood entries...",
	}
}

func exportStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportEntries,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d journal entries...", total),
	}
}

func exportCompletedUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, title),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}
