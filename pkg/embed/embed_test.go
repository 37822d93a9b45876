package quandary_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	quandary "github.com/funvibe/quandary/pkg/embed"
)

const library = `
fn length(l: Ref): Int {
    if (isNil(l) == 1) {
        return 0;
    }
    return 1 + length((Ref) right(l));
}

fn swap(p: Ref): Ref {
    return right(p) . left(p);
}

fn loop(): Ref {
    c: Ref := 1 . nil;
    setRight(c, c);
    return c;
}

fn shout(n: Int): Bool {
    print n;
    return n > 0;
}
`

func TestEmbedAPI(t *testing.T) {
	var out bytes.Buffer
	in := quandary.New()
	in.Out = &out
	require.NoError(t, in.Load(library))

	// Slices become lists.
	res, err := in.Call("length", []int{4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, int64(3), res)

	// Pairs round-trip.
	res, err = in.Call("swap", &quandary.Pair{Left: true, Right: nil})
	require.NoError(t, err)
	require.Equal(t, &quandary.Pair{Left: nil, Right: true}, res)

	// Built-ins are callable too.
	res, err = in.Call("isAtom", 7)
	require.NoError(t, err)
	require.Equal(t, int64(1), res)

	// Output goes to Out.
	res, err = in.Call("shout", -2)
	require.NoError(t, err)
	require.Equal(t, false, res)
	require.Equal(t, "-2\n", out.String())

	require.Equal(t, 5, in.HeapStats().Cells)
}

func TestEmbedCycle(t *testing.T) {
	in := quandary.New()
	require.NoError(t, in.Load(library))

	res, err := in.Call("loop")
	require.NoError(t, err)
	p, ok := res.(*quandary.Pair)
	require.True(t, ok)
	require.Equal(t, int64(1), p.Left)
	require.Same(t, p, p.Right)
}

func TestEmbedFaults(t *testing.T) {
	in := quandary.New()

	_, err := in.Call("length", nil)
	require.Error(t, err, "no program loaded")

	require.NoError(t, in.Load(library))

	_, err = in.Call("swap", nil)
	require.Equal(t, quandary.NilRefError, quandary.KindOf(err))

	_, err = in.Call("missing")
	require.Equal(t, quandary.StaticCheckError, quandary.KindOf(err))

	_, err = in.Call("length", 1, 2)
	require.Equal(t, quandary.DynamicTypeError, quandary.KindOf(err))

	_, err = in.Call("length", "text")
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = in.CallContext(ctx, "length", nil)
	require.Error(t, err)
	require.Equal(t, quandary.HostError, quandary.KindOf(err))
}

func TestEmbedLoadErrors(t *testing.T) {
	in := quandary.New()
	require.ErrorContains(t, in.Load("fn f(): Int { return x; }"), "undefined variable x")
	require.ErrorContains(t, in.Load("fn f(): Int { return 1 }"), "P001")
}

func TestLoadFileAndRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.q")
	require.NoError(t, os.WriteFile(path, []byte("fn main(n: Int): Ref { return n . (n + 1); }"), 0644))

	in := quandary.New()
	require.NoError(t, in.LoadFile(path))

	res, err := in.Run(4)
	require.NoError(t, err)
	require.Equal(t, "(4 . 5)", res)

	_, err = in.Run(5)
	require.NoError(t, err)
	require.Equal(t, 2, in.HeapStats().Cells)

	require.Error(t, in.LoadFile(filepath.Join(t.TempDir(), "missing.q")))
}

func TestEmbedSettings(t *testing.T) {
	in := quandary.New()
	in.Settings.HeapSize = 16
	require.NoError(t, in.Load(library))

	_, err := in.Call("length", []int{1, 2})
	require.Error(t, err)
	require.Equal(t, quandary.OutOfMemoryError, quandary.KindOf(err))
}

func TestExitCode(t *testing.T) {
	in := quandary.New()
	require.NoError(t, in.Load(library))

	_, err := in.Call("swap", nil)
	require.Equal(t, 4, quandary.ExitCode(err))

	_, err = in.Call("isNil", nil)
	require.Equal(t, 0, quandary.ExitCode(err))
}
