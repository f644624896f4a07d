package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocumentLoaded EventType = "DocumentLoaded"
	EventFindStarted    EventType = "FindStarted"
	EventFindCompleted  EventType = "FindCompleted"
	EventFindNavigated  EventType = "FindNavigated"
	EventMatchesCleared EventType = "MatchesCleared"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocumentLoadedEvent is emitted when a host swaps in a new document
type DocumentLoadedEvent struct {
	Name string
	Size int
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// FindStartedEvent is emitted when a find-all request begins executing
type FindStartedEvent struct {
	Query string
}

func (e FindStartedEvent) Type() EventType { return EventFindStarted }

// FindCompletedEvent is emitted after matches were recomputed
type FindCompletedEvent struct {
	Result FindResult
}

func (e FindCompletedEvent) Type() EventType { return EventFindCompleted }

// FindNavigatedEvent is emitted after the cursor moved
type FindNavigatedEvent struct {
	Forward  bool
	OldIndex int // -1 if the cursor was unset
	Result   FindResult
}

func (e FindNavigatedEvent) Type() EventType { return EventFindNavigated }

// MatchesClearedEvent is emitted when the session is reset
type MatchesClearedEvent struct{}

func (e MatchesClearedEvent) Type() EventType { return EventMatchesCleared }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Engine        string
	CaseSensitive bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
