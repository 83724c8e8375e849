package chat

import "echoai/internal/dispatch"

// servicesLoadedMsg carries the persona list fetched on startup.
type servicesLoadedMsg struct {
	services []serviceItem
	err      error
}

// sendCompleteMsg signals that a dispatched message finished, successfully
// or not. The transcript already holds the resulting turns.
type sendCompleteMsg struct {
	turn dispatch.Turn
	err  error
}
