package quandary

import (
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/memory"
)

// Aliases for embedders, which cannot import the internal packages.
type Fault = fault.Fault
type Kind = fault.Kind
type Settings = config.Settings
type HeapStats = memory.Stats

// Fault categories
const (
	HostError           = fault.Host
	ParseError          = fault.Parse
	StaticCheckError    = fault.StaticCheck
	DynamicTypeError    = fault.DynamicType
	NilRefError         = fault.NilRef
	OutOfMemoryError    = fault.OutOfMemory
	DataRaceError       = fault.DataRace
	NondeterminismError = fault.Nondeterminism
)

// KindOf returns the category of an error returned by Call or Run.
func KindOf(err error) Kind {
	return fault.KindOf(err)
}

// ExitCode maps an error returned by Call or Run to the command line exit status.
func ExitCode(err error) int {
	if err == nil {
		return fault.ExitSuccess
	}
	return fault.ExitCode(fault.KindOf(err))
}
