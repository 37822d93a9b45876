package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/docopt/docopt-go"

	"github.com/funvibe/quandary/internal/config"
)

const usage = `Quandary interpreter.

Usage:
  quandary [options] [--] PROGRAM_FILE INTEGER_ARGUMENT
  quandary --format [--] PROGRAM_FILE
  quandary -h | --help

Arguments:
  PROGRAM_FILE      Quandary source file.
  INTEGER_ARGUMENT  Signed 64-bit integer passed to main.

Options:
  --gc=MANAGER      Memory manager (MarkSweep|Explicit|RefCount|NoGC).
  --heapsize=BYTES  Heap size in bytes.
  --config=FILE     Settings file; defaults to $QUANDARY_CONFIG or ./quandary.yaml.
  --journal=FILE    Append the run to a SQLite journal.
  --logic=MODE      eager or short-circuit evaluation of && and ||.
  --detect-races    Report unlocked concurrent writes as data races.
  --trace           Log evaluator events to stderr.
  --format          Print the program in canonical layout and exit.
  -h, --help        Show this screen.

BYTES must be a multiple of the word size (8).
`

// errHelp is returned when the user asked for the usage text.
var errHelp = errors.New("help requested")

// valueOptions take an argument in the following word unless written --opt=value.
var valueOptions = map[string]bool{
	"--gc":       true,
	"--heapsize": true,
	"--config":   true,
	"--journal":  true,
	"--logic":    true,
}

// normalizeArgs accepts the legacy single-dash spellings -gc and -heapsize
// and inserts "--" before the first positional so that a negative
// INTEGER_ARGUMENT is not read as an option.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-gc", "-heapsize":
			arg = "-" + arg
		case "--":
			return append(out, args[i:]...)
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		out = append(out, arg)
		if valueOptions[arg] && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// Options is the parsed command line.
type Options struct {
	ProgramFile string
	Argument    int64
	Format      bool
	ConfigFile  string

	gc          string
	heapSize    string
	journal     string
	logic       string
	detectRaces bool
	trace       bool
}

func parseOptions(args []string) (*Options, error) {
	parser := &docopt.Parser{
		HelpHandler:   docopt.NoHelpHandler,
		SkipHelpFlags: true,
	}
	opts, err := parser.ParseArgs(usage, normalizeArgs(args), "")
	if err != nil {
		return nil, err
	}
	if help, _ := opts.Bool("--help"); help {
		return nil, errHelp
	}

	o := &Options{}
	o.ProgramFile, _ = opts.String("PROGRAM_FILE")
	o.Format, _ = opts.Bool("--format")
	o.ConfigFile, _ = opts.String("--config")
	o.gc, _ = opts.String("--gc")
	o.heapSize, _ = opts.String("--heapsize")
	o.journal, _ = opts.String("--journal")
	o.logic, _ = opts.String("--logic")
	o.detectRaces, _ = opts.Bool("--detect-races")
	o.trace, _ = opts.Bool("--trace")

	if !o.Format {
		raw, _ := opts.String("INTEGER_ARGUMENT")
		o.Argument, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integer argument %q", raw)
		}
	}
	return o, nil
}

// Settings resolves the effective settings: flags over the settings file
// over the defaults.
func (o *Options) Settings() (config.Settings, error) {
	s := config.Default()
	if path := config.Locate(o.ConfigFile); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Settings{}, err
		}
		s = loaded
	}

	if o.gc != "" {
		s.GC = o.gc
	}
	if o.heapSize != "" {
		n, err := strconv.ParseInt(o.heapSize, 10, 64)
		if err != nil {
			return config.Settings{}, fmt.Errorf("malformed heap size %q", o.heapSize)
		}
		s.HeapSize = n
	}
	if o.logic != "" {
		s.Logic = o.logic
	}
	if o.journal != "" {
		s.Journal = o.journal
	}
	if o.detectRaces {
		s.DetectRaces = true
	}
	if o.trace {
		s.Trace = true
	}
	return s, s.Validate()
}
