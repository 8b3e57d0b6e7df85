package beat

// Span measures one timed scope and feeds the result into a Stat.
//
// Construction starts the measurement; End stops it and accumulates the
// elapsed time into the sink, at most once. The usual shape is
//
//	sp := beat.NewSpan(clock, &stats)
//	defer sp.End()
//
// or an explicit End at the point the scope is considered finished.
// Calling End again is a no-op, so a deferred End after an explicit one
// is harmless. Independent spans over the same sink compose additively;
// there is no nesting structure beyond that.
type Span struct {
	timer Timer
	sink  *Stat
	done  bool
}

// NewSpan starts measuring a scope that will be accumulated into sink.
func NewSpan(c Clock, sink *Stat) *Span {
	return &Span{timer: Timer{start: c.Now(), clock: c}, sink: sink}
}

// End finishes the scope and adds its duration to the sink. Only the
// first call counts; the measurement is whatever had elapsed then.
func (p *Span) End() {
	if p.done {
		return
	}
	p.done = true
	p.sink.Add(p.timer.Elapsed())
}
