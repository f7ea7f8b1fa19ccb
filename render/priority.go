package render

// RenderPriority determines render order, lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityWorld
	PriorityUI
	PriorityDebug
)
