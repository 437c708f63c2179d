package darkmode

// EventKind identifies the trigger delivered to the gesture handler.
type EventKind int

const (
	// EventUnknown is an unrecognized trigger; the handler logs it and
	// takes no action.
	EventUnknown EventKind = iota
	// EventPress is a pointer/mouse-down observed on the bound surface.
	EventPress
	// EventRelease is a pointer/mouse-up observed anywhere in a
	// registered document context.
	EventRelease
	// EventSchemeChange is a system color-scheme feed reporting a match.
	EventSchemeChange
)

// String returns the event kind name for diagnostics.
func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventSchemeChange:
		return "scheme-change"
	default:
		return "unknown"
	}
}

// Event is a single trigger consumed by the gesture classifier.
type Event struct {
	Kind EventKind

	// Target is the element the pointer event targeted. Nil for scheme
	// changes.
	Target Element

	// Dark is set for EventSchemeChange: true when the prefers-dark feed
	// matched, false when the prefers-light feed matched.
	Dark bool
}

// Action is the classification the gesture handler assigned to the most
// recent event. Diagnostic only; it never feeds back into transitions.
type Action string

const (
	ActionNone    Action = ""
	ActionCapture Action = "capture"
	ActionRelease Action = "release"
	ActionToggle  Action = "toggle"
	ActionAuto    Action = "auto"
	ActionIgnore  Action = "ignore"
)
