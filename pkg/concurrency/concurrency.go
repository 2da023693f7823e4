package concurrency

const (
	// DefaultMax default max
	DefaultMax = 256
)

// GoLimit bounds the number of running goroutines
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	if max <= 0 {
		max = DefaultMax
	}

	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add blocks while max goroutines are running
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done releases a slot
func (g *GoLimit) Done() {
	<-g.ch
}
