package ui

import (
	"pagefind/internal/domain"
	"pagefind/internal/eventbus"
)

// FindResultMsg carries a host result into the UI loop
type FindResultMsg struct {
	Result domain.FindResult
}

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// documentReloadedMsg contains the result of re-reading the document
type documentReloadedMsg struct {
	doc *domain.Document
	err error
}
