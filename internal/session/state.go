package session

// State of an edit session.
type State int

// States in the order a session passes them. Terminated and BatchEmitted
// end a session, Applied follows BatchEmitted once the backend accepted it.
const (
	StateNew State = iota
	StateFetched
	StateRendered
	StateCheckedInvalid
	StateCheckedValid
	StateDiffed
	StateSerialReviewed
	StateSerialBumped
	StateReadyToReconstruct
	StateReconstructed
	StateBatchEmitted
	StateApplied
	StateTerminated
)

var stateNames = [...]string{
	StateNew:                "new",
	StateFetched:            "fetched",
	StateRendered:           "rendered",
	StateCheckedInvalid:     "checked-invalid",
	StateCheckedValid:       "checked-valid",
	StateDiffed:             "diffed",
	StateSerialReviewed:     "serial-reviewed",
	StateSerialBumped:       "serial-bumped",
	StateReadyToReconstruct: "ready-to-reconstruct",
	StateReconstructed:      "reconstructed",
	StateBatchEmitted:       "batch-emitted",
	StateApplied:            "applied",
	StateTerminated:         "terminated",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}
