package handflow

// Outcome is the result of a single Step. It is exactly one of Transition,
// Finished or Aborted.
type Outcome interface {
	// StepEvents returns the events emitted during the step.
	StepEvents() []Event
	isOutcome()
}

// Transition reports that the machine moved from one state to the next.
type Transition struct {
	From   State
	To     State
	Events []Event
}

// Finished reports that the machine stopped normally.
type Finished struct {
	State  State
	Events []Event
}

// Aborted reports that the machine stopped on a failure. State is always
// MainMenu.
type Aborted struct {
	State  State
	Reason string
	Events []Event
}

func (o Transition) StepEvents() []Event { return o.Events }
func (o Finished) StepEvents() []Event   { return o.Events }
func (o Aborted) StepEvents() []Event    { return o.Events }

func (Transition) isOutcome() {}
func (Finished) isOutcome()   {}
func (Aborted) isOutcome()    {}

// IsTerminal reports whether o is Finished or Aborted.
func IsTerminal(o Outcome) bool {
	switch o.(type) {
	case Finished, Aborted:
		return true
	default:
		return false
	}
}
