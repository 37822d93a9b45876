package evaluator

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/lexer"
	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/parser"
	"github.com/funvibe/quandary/internal/pipeline"
)

type runResult struct {
	Result string
	Output string
	Err    error
}

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "parse errors")
	return ctx.AstRoot.(*ast.Program)
}

func run(t *testing.T, src string, arg int64, configure ...func(*config.Settings)) runResult {
	t.Helper()
	settings := config.Default()
	settings.LockTimeout = 10 * time.Millisecond
	seed := int64(1)
	settings.Seed = &seed
	for _, fn := range configure {
		fn(&settings)
	}

	heap, err := memory.NewHeap(memory.Options{
		Manager:     memory.NoGC,
		HeapSize:    settings.HeapSize,
		LockTimeout: settings.LockTimeout,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	rt, err := NewRuntime(parse(t, src), heap, Options{Settings: settings, Out: &out})
	if err != nil {
		return runResult{Err: err}
	}
	v, err := rt.Run(arg)
	res := runResult{Output: out.String(), Err: err}
	if err == nil {
		res.Result = heap.Format(v)
	}
	return res
}

func requireFault(t *testing.T, res runResult, kind fault.Kind) {
	t.Helper()
	require.Error(t, res.Err)
	require.Equal(t, kind, fault.KindOf(res.Err), "fault: %v", res.Err)
}

func TestSeedScenarios(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		arg    int64
		result string
		fault  fault.Kind
	}{
		{"increment", `fn main(n: Int): Int { return n + 1; }`, 41, "42", 0},
		{"sum loop", `fn main(n: Int): Int { mut x: Int := 0; while (n > 0) { x := x + n; n := n - 1; } return x; }`, 5, "15", 0},
		{"pair", `fn main(n: Int): Ref { return n . nil; }`, 7, "(7 . nil)", 0},
		{"set left", `fn main(n: Int): Int { r: Ref := 1 . 2; setLeft(r, 10); return left(r) + right(r); }`, 0, "12", 0},
		{"nil deref", `fn main(n: Int): Int { return left(nil); }`, 0, "", fault.NilRef},
		{"type error", `fn main(n: Int): Int { return 1 + true; }`, 0, "", fault.DynamicType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.src, tt.arg)
			if tt.fault != 0 {
				requireFault(t, res, tt.fault)
				return
			}
			require.NoError(t, res.Err)
			require.Equal(t, tt.result, res.Result)
		})
	}
}

const fibSource = `
fn fib(n: Int): Int {
	if (n < 2) { return n; }
	return fib(n - 1) + fib(n - 2);
}
`

func TestConcurrentMatchesSequential(t *testing.T) {
	seq := run(t, fibSource+`fn main(n: Int): Int { return fib(n) + fib(n); }`, 15)
	par := run(t, fibSource+`fn main(n: Int): Int { return [fib(n) + fib(n)]; }`, 15)
	require.NoError(t, seq.Err)
	require.NoError(t, par.Err)
	require.Equal(t, "1220", seq.Result)
	require.Equal(t, seq.Result, par.Result)

	for _, op := range []string{"-", "*"} {
		seq := run(t, fibSource+`fn main(n: Int): Int { return fib(n) `+op+` fib(n - 1); }`, 10)
		par := run(t, fibSource+`fn main(n: Int): Int { return [fib(n) `+op+` fib(n - 1)]; }`, 10)
		require.NoError(t, par.Err)
		require.Equal(t, seq.Result, par.Result, "operator %s", op)
	}
}

func TestConcurrentDotAllocatesPair(t *testing.T) {
	res := run(t, `fn main(n: Int): Ref { return [n . [n + 1 . nil]]; }`, 3)
	require.NoError(t, res.Err)
	require.Equal(t, "(3 . (4 . nil))", res.Result)
}

func TestConcurrentLeftFaultWins(t *testing.T) {
	res := run(t, `fn main(n: Int): Int { return [left(nil) + (1 + true)]; }`, 0)
	requireFault(t, res, fault.NilRef)

	res = run(t, `fn main(n: Int): Int { return [1 + left(nil)]; }`, 0)
	requireFault(t, res, fault.NilRef)

	res = run(t, `fn main(n: Int): Int { return [1 + true]; }`, 0)
	requireFault(t, res, fault.DynamicType)
}

func TestConcurrentEnvironmentIsForked(t *testing.T) {
	// The analyzer rejects this program (bump reads an undeclared x); it runs
	// here on the bare runtime to observe the dynamically scoped stack each
	// worker forks. bump resolves x through the caller's frames and mutates
	// its own copy. The checked equivalent is pkg/cli/testdata/fork_locals.q.
	src := `
fn bump(d: Int): Int { x := x + d; return x; }
fn main(n: Int): Int {
	mut x: Int := 1;
	s: Int := [bump(1) + bump(10)];
	return x * 100 + s;
}`
	res := run(t, src, 0)
	require.NoError(t, res.Err)
	require.Equal(t, "113", res.Result)
}

func TestConcurrentWorkersShareHeap(t *testing.T) {
	src := `
fn main(n: Int): Int {
	r: Ref := 0 . 0;
	s: Int := [setLeft(r, 5) + setRight(r, 6)];
	return left(r) + right(r) + s;
}`
	res := run(t, src, 0)
	require.NoError(t, res.Err)
	require.Equal(t, "13", res.Result)
}

func TestDataRaceDetection(t *testing.T) {
	detect := func(s *config.Settings) { s.DetectRaces = true }

	racy := `fn main(n: Int): Int { r: Ref := 0 . 0; return [setLeft(r, 1) + setLeft(r, 2)]; }`
	requireFault(t, run(t, racy, 0, detect), fault.DataRace)

	// Without detection the last writer wins.
	require.NoError(t, run(t, racy, 0).Err)

	disjoint := `fn main(n: Int): Int { r: Ref := 0 . 0; return [setLeft(r, 1) + setRight(r, 2)]; }`
	require.NoError(t, run(t, disjoint, 0, detect).Err)

	locked := `
fn put(r: Ref, v: Int): Int {
	while (acq(r) == 0) { }
	setLeft(r, v);
	rel(r);
	return 1;
}
fn main(n: Int): Int { r: Ref := 0 . 0; return [put(r, 1) + put(r, 2)]; }`
	res := run(t, locked, 0, detect, func(s *config.Settings) { s.LockTimeout = time.Second })
	require.NoError(t, res.Err)
	require.Equal(t, "2", res.Result)

	// Holding the lock on one side does not cover an unlocked write on the other.
	mixed := `
fn put(r: Ref, v: Int): Int {
	while (acq(r) == 0) { }
	setLeft(r, v);
	rel(r);
	return 1;
}
fn main(n: Int): Int { r: Ref := 0 . 0; return [put(r, 1) + setLeft(r, 2)]; }`
	requireFault(t, run(t, mixed, 0, detect, func(s *config.Settings) { s.LockTimeout = time.Second }), fault.DataRace)

	// Writes from nested workers count for the enclosing side.
	nested := `fn main(n: Int): Int { r: Ref := 0 . 0; return [[setLeft(r, 1) + 0] + setLeft(r, 2)]; }`
	requireFault(t, run(t, nested, 0, detect), fault.DataRace)
}

func TestLocksAcrossThreads(t *testing.T) {
	// The left worker keeps the lock, so the right one times out.
	src := `
fn hold(r: Ref): Int { return acq(r); }
fn main(n: Int): Int {
	r: Ref := nil . nil;
	a: Int := acq(r);
	b: Int := [hold(r) + 0];
	c: Int := rel(r);
	return a * 100 + b * 10 + c;
}`
	res := run(t, src, 0)
	require.NoError(t, res.Err)
	require.Equal(t, "101", res.Result)
}

func TestLockIsNotReentrantForHolder(t *testing.T) {
	src := `fn main(n: Int): Int { r: Ref := 1 . 2; return acq(r) * 1000 + acq(r) * 100 + rel(r) * 10 + rel(r); }`
	res := run(t, src, 0)
	require.NoError(t, res.Err)
	require.Equal(t, "1010", res.Result)
}

func TestPrint(t *testing.T) {
	src := `
fn main(n: Int): Int {
	print n;
	print n > 0;
	print nil;
	print 1 . (true . nil);
	return 0;
}`
	res := run(t, src, 3)
	require.NoError(t, res.Err)
	require.Equal(t, "3\ntrue\nnil\n(1 . (true . nil))\n", res.Output)
}

func TestConcurrentPrintLinesStayWhole(t *testing.T) {
	src := `
fn spam(k: Int): Int {
	mut i: Int := 0;
	while (i < 50) { print k; i := i + 1; }
	return 0;
}
fn main(n: Int): Int { return [spam(111111) + spam(222222)]; }`
	res := run(t, src, 0)
	require.NoError(t, res.Err)
	lines := strings.Split(strings.TrimSuffix(res.Output, "\n"), "\n")
	require.Len(t, lines, 100)
	for _, line := range lines {
		require.Contains(t, []string{"111111", "222222"}, line)
	}
}

func TestLogicalOperators(t *testing.T) {
	eager := `fn main(n: Int): Bool { return false && left(nil) == 1; }`
	requireFault(t, run(t, eager, 0), fault.NilRef)

	short := func(s *config.Settings) { s.Logic = config.LogicShortCircuit }
	res := run(t, eager, 0, short)
	require.NoError(t, res.Err)
	require.Equal(t, "false", res.Result)

	res = run(t, `fn main(n: Int): Bool { return true || left(nil) == 1; }`, 0, short)
	require.NoError(t, res.Err)
	require.Equal(t, "true", res.Result)

	res = run(t, `fn main(n: Int): Bool { return !(n > 1) || n == 5 && true; }`, 5)
	require.NoError(t, res.Err)
	require.Equal(t, "true", res.Result)

	requireFault(t, run(t, `fn main(n: Int): Bool { return n && true; }`, 0), fault.DynamicType)
	requireFault(t, run(t, `fn main(n: Int): Bool { return false || 1; }`, 0, short), fault.DynamicType)
}

func TestEquality(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 == 1", "true"},
		{"1 == true", "false"},
		{"nil == nil", "true"},
		{"nil == 0", "false"},
		{"true != false", "true"},
		{"(1 . 2) == (1 . 2)", "false"},
	}
	for _, tt := range tests {
		res := run(t, `fn main(n: Int): Bool { return `+tt.expr+`; }`, 0)
		require.NoError(t, res.Err, tt.expr)
		require.Equal(t, tt.want, res.Result, tt.expr)
	}

	res := run(t, `fn main(n: Int): Bool { r: Ref := 1 . 2; s: Ref := r; return r == s; }`, 0)
	require.NoError(t, res.Err)
	require.Equal(t, "true", res.Result)
}

func TestArithmeticWraps(t *testing.T) {
	res := run(t, `fn main(n: Int): Int { return n + 1; }`, 9223372036854775807)
	require.NoError(t, res.Err)
	require.Equal(t, "-9223372036854775808", res.Result)

	res = run(t, `fn main(n: Int): Int { return -n * 3 - 2; }`, 4)
	require.NoError(t, res.Err)
	require.Equal(t, "-14", res.Result)
}

func TestCasts(t *testing.T) {
	ok := []string{"(Int) 5", "(Bool) true", "(Ref) nil", "(Ref) (1 . 2)", "(Q) true", "(Q) nil"}
	for _, expr := range ok {
		res := run(t, `fn main(n: Int): Q { return `+expr+`; }`, 0)
		require.NoError(t, res.Err, expr)
	}

	bad := []string{"(Int) true", "(Int) nil", "(Bool) 1", "(Ref) 1", "(Ref) false", "(Int) (1 . 2)"}
	for _, expr := range bad {
		res := run(t, `fn main(n: Int): Q { return `+expr+`; }`, 0)
		requireFault(t, res, fault.DynamicType)
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"isAtom(nil)", "1"},
		{"isAtom(3)", "1"},
		{"isAtom(true)", "0"},
		{"isAtom(1 . 2)", "0"},
		{"isNil(nil)", "1"},
		{"isNil(0)", "0"},
		{"right(1 . (2 . nil))", "(2 . nil)"},
		{"setRight(1 . 2, 3)", "1"},
	}
	for _, tt := range tests {
		res := run(t, `fn main(n: Int): Q { return `+tt.expr+`; }`, 0)
		require.NoError(t, res.Err, tt.expr)
		require.Equal(t, tt.want, res.Result, tt.expr)
	}

	faults := []struct {
		expr string
		kind fault.Kind
	}{
		{"left(1)", fault.DynamicType},
		{"setLeft(nil, 1)", fault.NilRef},
		{"setRight(true, 1)", fault.DynamicType},
		{"acq(nil)", fault.NilRef},
		{"rel(5)", fault.DynamicType},
		{"randomInt(0)", fault.DynamicType},
		{"randomInt(true)", fault.DynamicType},
		{"left(nil, nil)", fault.DynamicType},
	}
	for _, tt := range faults {
		requireFault(t, run(t, `fn main(n: Int): Q { return `+tt.expr+`; }`, 0), tt.kind)
	}
}

func TestRandomIntRange(t *testing.T) {
	src := `
fn main(n: Int): Int {
	mut i: Int := 0;
	while (i < 200) {
		r: Int := randomInt(n);
		if (r < 0 || r >= n) { return 0 - 1; }
		i := i + 1;
	}
	return 1;
}`
	res := run(t, src, 7)
	require.NoError(t, res.Err)
	require.Equal(t, "1", res.Result)

	// A fixed seed gives a repeatable sequence.
	draw := `fn main(n: Int): Ref { return randomInt(n) . randomInt(n) . randomInt(n); }`
	require.Equal(t, run(t, draw, 1000).Result, run(t, draw, 1000).Result)
}

func TestSetThenGet(t *testing.T) {
	src := `
fn main(n: Int): Q {
	c: Ref := 0 . 0;
	setLeft(c, n);
	a: Int := left(c);
	setLeft(c, n + 1);
	setRight(c, true);
	return a . left(c) . right(c);
}`
	res := run(t, src, 9)
	require.NoError(t, res.Err)
	require.Equal(t, "(9 . (10 . true))", res.Result)
}

func TestCallFaults(t *testing.T) {
	requireFault(t, run(t, `fn f(a: Int): Int { return a; } fn main(n: Int): Int { return f(1, 2); }`, 0), fault.DynamicType)
	requireFault(t, run(t, `fn f(a: Int): Int { if (a > 0) { return a; } } fn main(n: Int): Int { return f(0); }`, 0), fault.DynamicType)
	requireFault(t, run(t, `fn main(n: Int): Int { return g(1); }`, 0), fault.StaticCheck)
	requireFault(t, run(t, `fn main(n: Int): Int { return x; }`, 0), fault.StaticCheck)
	requireFault(t, run(t, `fn main(n: Int): Int { x: Int := 1; x := 2; return x; }`, 0), fault.StaticCheck)
	requireFault(t, run(t, `fn other(n: Int): Int { return n; }`, 0), fault.Host)
	requireFault(t, run(t, `fn main(n: Int): Int { if (n) { return 1; } return 0; }`, 0), fault.DynamicType)
}

func TestRecursionDepthLimit(t *testing.T) {
	src := `fn loop(n: Int): Int { return loop(n + 1); } fn main(n: Int): Int { return loop(n); }`
	res := run(t, src, 0, func(s *config.Settings) { s.MaxDepth = 200 })
	requireFault(t, res, fault.Host)
	require.Contains(t, res.Err.Error(), "maximum recursion depth")
}

func TestHeapExhaustion(t *testing.T) {
	src := `
fn main(n: Int): Ref {
	mut l: Ref := nil;
	while (n > 0) { l := n . l; n := n - 1; }
	return l;
}`
	small := func(s *config.Settings) { s.HeapSize = 64 }
	res := run(t, src, 4, small)
	require.NoError(t, res.Err)
	require.Equal(t, "(1 . (2 . (3 . (4 . nil))))", res.Result)

	requireFault(t, run(t, src, 5, small), fault.OutOfMemory)
}

func TestFaultPosition(t *testing.T) {
	res := run(t, "fn main(n: Int): Int {\n  return 1 +\n    true;\n}", 0)
	var f *fault.Fault
	require.ErrorAs(t, res.Err, &f)
	require.Equal(t, 2, f.Line)
}

func TestFaultCarriesCallChain(t *testing.T) {
	callNames := func(err error) ([]string, []int) {
		var f *fault.Fault
		require.ErrorAs(t, err, &f)
		var names []string
		var lines []int
		for _, frame := range f.Stack {
			names = append(names, frame.Name)
			lines = append(lines, frame.Line)
		}
		return names, lines
	}

	src := `
fn inner(r: Ref): Int { return left(r); }
fn outer(n: Int): Int { return inner(nil) + n; }
fn main(n: Int): Int { return outer(n); }`
	res := run(t, src, 0)
	requireFault(t, res, fault.NilRef)
	names, lines := callNames(res.Err)
	require.Equal(t, []string{"outer", "inner", "left"}, names)
	require.Equal(t, []int{4, 3, 2}, lines)

	// Workers start from the chain of the expression that forked them.
	src = `
fn bad(n: Int): Int { return left(nil); }
fn wrap(n: Int): Int { return [1 + bad(n)]; }
fn main(n: Int): Int { return wrap(n); }`
	res = run(t, src, 0)
	requireFault(t, res, fault.NilRef)
	names, _ = callNames(res.Err)
	require.Equal(t, []string{"wrap", "bad", "left"}, names)

	// A fault raised by main itself has no call sites.
	res = run(t, `fn main(n: Int): Int { return (Int) true; }`, 0)
	requireFault(t, res, fault.DynamicType)
	names, _ = callNames(res.Err)
	require.Empty(t, names)
}

func TestDuplicateFunctionRejected(t *testing.T) {
	res := run(t, `fn main(n: Int): Int { return 1; } fn main(n: Int): Int { return 2; }`, 0)
	requireFault(t, res, fault.StaticCheck)
}
