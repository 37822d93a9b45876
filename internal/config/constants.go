package config

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".q", ".qnd", ".quandary"}

// EntryFuncName is the function invoked with the integer argument.
const EntryFuncName = "main"

// Built-in function names
const (
	RandomIntFuncName = "randomInt"
	LeftFuncName      = "left"
	RightFuncName     = "right"
	SetLeftFuncName   = "setLeft"
	SetRightFuncName  = "setRight"
	IsAtomFuncName    = "isAtom"
	IsNilFuncName     = "isNil"
	AcquireFuncName   = "acq"
	ReleaseFuncName   = "rel"
)

// BuiltinArity maps every built-in to its parameter count.
var BuiltinArity = map[string]int{
	RandomIntFuncName: 1,
	LeftFuncName:      1,
	RightFuncName:     1,
	SetLeftFuncName:   2,
	SetRightFuncName:  2,
	IsAtomFuncName:    1,
	IsNilFuncName:     1,
	AcquireFuncName:   1,
	ReleaseFuncName:   1,
}

// IsBuiltin reports whether name resolves to a built-in before user functions.
func IsBuiltin(name string) bool {
	_, ok := BuiltinArity[name]
	return ok
}

// Type names
const (
	IntTypeName  = "Int"
	BoolTypeName = "Bool"
	RefTypeName  = "Ref"
	AnyTypeName  = "Q"
)

// Memory manager names accepted by -gc
const (
	NoGCName      = "NoGC"
	MarkSweepName = "MarkSweep"
	ExplicitName  = "Explicit"
	RefCountName  = "RefCount"
)

// Logic evaluation modes for && and ||
const (
	LogicEager        = "eager"
	LogicShortCircuit = "short-circuit"
)

// Defaults
const (
	DefaultHeapSize      int64 = 1 << 14
	WordSize             int64 = 8
	DefaultLockTimeoutMs       = 50
	DefaultMaxDepth            = 10000
	DefaultGC                  = NoGCName
	DefaultLogic               = LogicEager
)

// ConfigEnvVar names the environment variable pointing at a settings file.
const ConfigEnvVar = "QUANDARY_CONFIG"

// DefaultConfigFile is looked up in the working directory when no file is given.
const DefaultConfigFile = "quandary.yaml"
