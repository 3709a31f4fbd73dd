package site

import "fmt"

// Policy decides what happens when a broken link is found.
type Policy string

const (
	PolicyIgnore Policy = "ignore"
	PolicyLog    Policy = "log"
	PolicyWarn   Policy = "warn"
	PolicyThrow  Policy = "throw"
)

// ParsePolicy converts a string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyIgnore, PolicyLog, PolicyWarn, PolicyThrow:
		return p, nil
	default:
		return "", fmt.Errorf("unknown broken link policy %q", s)
	}
}

// UnmarshalYAML rejects unknown policies while the site file is decoded.
func (p *Policy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ValidationError reports an unusable site configuration.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("site config: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("site config: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
