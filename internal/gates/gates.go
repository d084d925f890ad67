// Package gates implements the eligibility gate chain evaluated before any
// document generation. Gates are ordered, named predicates over mapped
// answers; evaluation stops at the first failure. Ineligibility is a normal
// outcome, not an error.
package gates

import "github.com/myreply/docket/internal/mapping"

// Gate is a named eligibility predicate. Check returns pass/fail; Reason is
// the human-readable explanation reported when the gate fails.
type Gate struct {
	Name   string
	Reason string
	Check  func(answers mapping.AnswerSet) bool
}

// Outcome records the observed result of a single gate evaluation.
type Outcome struct {
	Gate   string `json:"gate"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// Result is the overall chain verdict. Outcomes holds every gate evaluated
// before the chain stopped, including the failing gate, so each result stays
// independently observable.
type Result struct {
	Eligible   bool      `json:"eligible"`
	FailedGate string    `json:"failed_gate,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Chain is an ordered sequence of gates.
type Chain []Gate

// Evaluate runs the gates in order, short-circuiting at the first failure.
// Deterministic: the same answer set always produces the same result and the
// same first failing gate.
func (c Chain) Evaluate(answers mapping.AnswerSet) Result {
	result := Result{Eligible: true, Outcomes: make([]Outcome, 0, len(c))}

	for _, gate := range c {
		if gate.Check(answers) {
			result.Outcomes = append(result.Outcomes, Outcome{Gate: gate.Name, Passed: true})
			continue
		}

		result.Outcomes = append(result.Outcomes, Outcome{
			Gate:   gate.Name,
			Passed: false,
			Reason: gate.Reason,
		})
		result.Eligible = false
		result.FailedGate = gate.Name
		result.Reason = gate.Reason
		break
	}

	return result
}

// Equals builds a gate that passes when the named field equals want.
func Equals(name, field, want, reason string) Gate {
	return Gate{
		Name:   name,
		Reason: reason,
		Check: func(answers mapping.AnswerSet) bool {
			return answers.String(field) == want
		},
	}
}

// NotEquals builds a gate that passes when the named field does not equal
// the disqualifying sentinel.
func NotEquals(name, field, disqualifier, reason string) Gate {
	return Gate{
		Name:   name,
		Reason: reason,
		Check: func(answers mapping.AnswerSet) bool {
			return answers.String(field) != disqualifier
		},
	}
}

// Present builds a gate that passes when the named field is non-empty.
func Present(name, field, reason string) Gate {
	return Gate{
		Name:   name,
		Reason: reason,
		Check: func(answers mapping.AnswerSet) bool {
			return answers.Has(field)
		},
	}
}
