package orchestration

// ProgressAggregator counts finished generators of a multi-generator run.
type ProgressAggregator struct {
	done     []bool
	finished int
	failed   int
}

// NewProgressAggregator creates an aggregator for numGenerators generators.
// Returns nil if numGenerators <= 0.
func NewProgressAggregator(numGenerators int) *ProgressAggregator {
	if numGenerators <= 0 {
		return nil
	}
	return &ProgressAggregator{done: make([]bool, numGenerators)}
}

// Update records an update. Duplicate or out-of-range indices are ignored.
func (a *ProgressAggregator) Update(update ProgressUpdate) {
	if update.Index < 0 || update.Index >= len(a.done) || a.done[update.Index] {
		return
	}
	a.done[update.Index] = true
	a.finished++
	if update.Err != nil {
		a.failed++
	}
}

// Fraction returns the share of finished generators (0.0 to 1.0).
func (a *ProgressAggregator) Fraction() float64 {
	return float64(a.finished) / float64(len(a.done))
}

// Finished returns how many generators have reported.
func (a *ProgressAggregator) Finished() int { return a.finished }

// Failed returns how many generators reported an error.
func (a *ProgressAggregator) Failed() int { return a.failed }

// NumGenerators returns the number of generators being tracked.
func (a *ProgressAggregator) NumGenerators() int { return len(a.done) }

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
