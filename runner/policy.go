package runner

import "fmt"

// EnvFaultPolicy decides what happens after an environment fault.
type EnvFaultPolicy int

const (
	// FatalOnEnvFault ends the run as soon as an environment fault has been reported.
	FatalOnEnvFault EnvFaultPolicy = iota
	// ResumeOnEnvFault counts an environment fault as an ordinary test failure and carries on.
	ResumeOnEnvFault
)

const (
	policyFatal  = "fatal"
	policyResume = "resume"
)

func (p EnvFaultPolicy) String() string {
	switch p {
	case FatalOnEnvFault:
		return policyFatal
	case ResumeOnEnvFault:
		return policyResume
	default:
		return fmt.Sprintf("EnvFaultPolicy(%d)", int(p))
	}
}

// Set is called by the command line parser
func (p *EnvFaultPolicy) Set(value string) error {
	switch value {
	case policyFatal:
		*p = FatalOnEnvFault
	case policyResume:
		*p = ResumeOnEnvFault
	default:
		return fmt.Errorf("invalid environment fault policy %q (must be %q or %q)", value, policyFatal, policyResume)
	}
	return nil
}
