package qualitygate

import (
	"fmt"
	"strings"
)

// Status is the outcome of a quality gate evaluation.
type Status int

const (
	Inactive Status = iota
	Passed
	Warning
	Failed
)

// rank fixes the severity order independently of the constant values.
var rank = map[Status]int{
	Inactive: 0,
	Passed:   1,
	Warning:  2,
	Failed:   3,
}

var statusNames = map[Status]struct{ name, description string }{
	Inactive: {"INACTIVE", "Inactive"},
	Passed:   {"PASSED", "Success"},
	Warning:  {"WARNING", "Unstable"},
	Failed:   {"FAILED", "Failed"},
}

// Worse returns the more severe of both statuses.
func Worse(a, b Status) Status {
	if b.IsWorseThan(a) {
		return b
	}
	return a
}

func (s Status) IsWorseThan(other Status) bool {
	return rank[s] > rank[other]
}

// IsSuccessful is true for PASSED and INACTIVE.
func (s Status) IsSuccessful() bool {
	return s == Passed || s == Inactive
}

// Name returns the canonical identifier, e.g. "WARNING".
func (s Status) Name() string {
	if n, ok := statusNames[s]; ok {
		return n.name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Description returns the verdict shown in messages, e.g. "Unstable".
func (s Status) Description() string {
	if n, ok := statusNames[s]; ok {
		return n.description
	}
	return s.Name()
}

func (s Status) String() string { return s.Name() }

func (s Status) MarshalText() ([]byte, error) { return []byte(s.Name()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	for status, n := range statusNames {
		if strings.EqualFold(string(text), n.name) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown quality gate status %q", string(text))
}

// Criticality decides how a failed quality gate affects the build.
type Criticality int

const (
	Unstable Criticality = iota
	Failure
)

// Status returns the verdict of a failed gate with this criticality.
func (c Criticality) Status() Status {
	if c == Failure {
		return Failed
	}
	return Warning
}

func (c Criticality) String() string {
	if c == Failure {
		return "FAILURE"
	}
	return "UNSTABLE"
}

// ParseCriticality resolves "UNSTABLE" or "FAILURE", ignoring case. The build
// result names "WARNING" and "FAILED" are accepted as well.
func ParseCriticality(name string) (Criticality, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UNSTABLE", "WARNING":
		return Unstable, nil
	case "FAILURE", "FAILED":
		return Failure, nil
	default:
		return Unstable, fmt.Errorf("unknown quality gate criticality %q", name)
	}
}

func (c Criticality) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Criticality) UnmarshalText(text []byte) error {
	parsed, err := ParseCriticality(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
