package ports

// LifecycleEvent is a page-lifecycle signal (visibility/focus) injected
// from the presentation layer so the core never touches ambient hooks.
type LifecycleEvent int

const (
	EventHidden LifecycleEvent = iota
	EventVisible
	EventBlur
	EventFocus
)

func (e LifecycleEvent) String() string {
	switch e {
	case EventHidden:
		return "hidden"
	case EventVisible:
		return "visible"
	case EventBlur:
		return "blur"
	case EventFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// LifecycleEvents is the injected event source the playback
// orchestrator subscribes to.
type LifecycleEvents interface {
	Subscribe() <-chan LifecycleEvent
}
