package cfonb

// sequence tracks the aggregate under construction and the closed ones.
// It is owned by a single Parse call.
type sequence[T any] struct {
	open   *T
	closed []*T
}

// start opens v and returns the aggregate it replaces, if any.
func (s *sequence[T]) start(v *T) (discarded *T) {
	discarded = s.open
	s.open = v
	return discarded
}

// current returns the open aggregate, or nil when none is open.
func (s *sequence[T]) current() *T { return s.open }

// close moves the open aggregate to the result.
func (s *sequence[T]) close() {
	if s.open == nil {
		return
	}
	s.closed = append(s.closed, s.open)
	s.open = nil
}

// result returns the closed aggregates in closing order. An aggregate still
// open is not part of it.
func (s *sequence[T]) result() []*T { return s.closed }
