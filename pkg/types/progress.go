package types

// ProgressAction describes what a phase is doing to a file.
type ProgressAction string

const (
	ProgressValidating ProgressAction = "validating"
	ProgressChecking   ProgressAction = "checking"
	ProgressBackingUp  ProgressAction = "backing-up"
	ProgressSkipping   ProgressAction = "skipping"
	ProgressPatching   ProgressAction = "patching"
	ProgressAdding     ProgressAction = "adding"
	ProgressDeleting   ProgressAction = "deleting"
	ProgressVerifying  ProgressAction = "verifying"
	ProgressRestoring  ProgressAction = "restoring"
	ProgressRemoving   ProgressAction = "removing"
)

// Progress is a per-entry notification emitted by the engine phases.
// Index is zero-based; Total is the number of entries in the phase.
type Progress struct {
	File   string
	Index  int
	Total  int
	Action ProgressAction
}

// ProgressFunc receives progress notifications. Callbacks run inline
// on the engine's single flow of control and must not block.
type ProgressFunc func(Progress)

// Notify invokes fn if it is non-nil.
func (fn ProgressFunc) Notify(p Progress) {
	if fn != nil {
		fn(p)
	}
}
