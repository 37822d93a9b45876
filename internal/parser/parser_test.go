package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/lexer"
	"github.com/funvibe/quandary/internal/parser"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/prettyprinter"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		var errorMessages []string
		for _, err := range ctx.Errors {
			errorMessages = append(errorMessages, err.Error())
		}
		t.Fatalf("parsing failed with errors:\n%s", strings.Join(errorMessages, "\n"))
	}
	return ctx.AstRoot.(*ast.Program)
}

// wrap puts a return statement into a minimal main.
func wrap(expr string) string {
	return "fn main(n: Int): Q { return " + expr + "; }"
}

func TestExpressionPrecedence(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 - 2 - 3", "1 - 2 - 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"-n + 1", "-n + 1"},
		{"-(n + 1)", "-(n + 1)"},
		{"!true == false", "!true == false"},
		{"a < b == c > d", "a < b == c > d"},
		{"a || b && c", "a || b && c"},
		{"(a || b) && c", "(a || b) && c"},
		{"1 . 2 . nil", "1 . 2 . nil"},
		{"(1 . 2) . nil", "(1 . 2) . nil"},
		{"n + 1 . nil", "n + 1 . nil"},
		{"(Int) left(r) + 1", "(Int) left(r) + 1"},
		{"(Ref) (a . b)", "(Ref) (a . b)"},
		{"-(Int) x", "-((Int) x)"},
		{"[fib(n) + fib(n)]", "[fib(n) + fib(n)]"},
		{"[a * b + c]", "[a * b + c]"},
		{"[1 . [2 . nil]]", "[1 . [2 . nil]]"},
		{"f() + g(1, n, true)", "f() + g(1, n, true)"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			program := parseProgram(t, wrap(tc.input))
			ret := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
			p := prettyprinter.NewCodePrinter()
			ret.ReturnValue.Accept(p)
			if got := p.String(); got != tc.expected {
				t.Errorf("expression = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestDotIsRightAssociative(t *testing.T) {
	program := parseProgram(t, wrap("1 . 2 . 3"))
	ret := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
	outer, ok := ret.ReturnValue.(*ast.InfixExpression)
	if !ok || outer.Operator != "." {
		t.Fatalf("expected dot expression, got %T", ret.ReturnValue)
	}
	if _, ok := outer.Left.(*ast.IntegerLiteral); !ok {
		t.Errorf("left operand = %T, want *ast.IntegerLiteral", outer.Left)
	}
	if inner, ok := outer.Right.(*ast.InfixExpression); !ok || inner.Operator != "." {
		t.Errorf("right operand = %T, want nested dot", outer.Right)
	}
}

func TestConcurrentExpression(t *testing.T) {
	program := parseProgram(t, wrap("[a * b + c]"))
	ret := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
	ce, ok := ret.ReturnValue.(*ast.ConcurrentExpression)
	if !ok {
		t.Fatalf("expected *ast.ConcurrentExpression, got %T", ret.ReturnValue)
	}
	if ce.Operator != "+" {
		t.Errorf("operator = %q, want +", ce.Operator)
	}
	if left, ok := ce.Left.(*ast.InfixExpression); !ok || left.Operator != "*" {
		t.Errorf("left = %T, want product", ce.Left)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	program := parseProgram(t, `
fn main(n: Int): Int { return 0; }
mut fn swap(const r: Ref, mut v: Q): Ref { return r; }
`)
	if len(program.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(program.Functions))
	}

	main := program.Functions[0]
	if main.Name.Value != "main" || main.Mutable {
		t.Errorf("main = %s mutable=%v", main.Name.Value, main.Mutable)
	}
	if len(main.Parameters) != 1 || !main.Parameters[0].Mutable || main.Parameters[0].Type.Name != "Int" {
		t.Errorf("main parameters = %+v", main.Parameters)
	}

	swap := program.Functions[1]
	if !swap.Mutable {
		t.Errorf("swap should be a mut fn")
	}
	if swap.Parameters[0].Mutable {
		t.Errorf("const parameter parsed as mutable")
	}
	if !swap.Parameters[1].Mutable || swap.Parameters[1].Type.Name != "Q" {
		t.Errorf("second parameter = %+v", swap.Parameters[1])
	}
	if swap.ReturnType.Name != "Ref" {
		t.Errorf("return type = %s, want Ref", swap.ReturnType.Name)
	}
}

func TestStatementForms(t *testing.T) {
	program := parseProgram(t, `fn main(n: Int): Int {
	mut x: Int := 0;
	y: Bool := true;
	const z: Ref := nil;
	x := x + 1;
	print x;
	setLeft(z, 1);
	if (y) x := 2; else { x := 3; }
	while (x > 0) x := x - 1;
	{ return x; }
}`)
	stmts := program.Functions[0].Body.Statements
	wantTypes := []string{
		"*ast.VarDeclaration", "*ast.VarDeclaration", "*ast.VarDeclaration",
		"*ast.AssignStatement", "*ast.PrintStatement", "*ast.CallStatement",
		"*ast.IfStatement", "*ast.WhileStatement", "*ast.BlockStatement",
	}
	if len(stmts) != len(wantTypes) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(wantTypes))
	}
	for i, want := range wantTypes {
		if got := typeName(stmts[i]); got != want {
			t.Errorf("statement %d = %s, want %s", i, got, want)
		}
	}

	if !stmts[0].(*ast.VarDeclaration).Mutable {
		t.Errorf("mut local parsed as immutable")
	}
	if stmts[1].(*ast.VarDeclaration).Mutable {
		t.Errorf("plain local should be immutable")
	}
	if stmts[2].(*ast.VarDeclaration).Mutable {
		t.Errorf("const local parsed as mutable")
	}
	ifStmt := stmts[6].(*ast.IfStatement)
	if _, ok := ifStmt.Consequence.(*ast.AssignStatement); !ok {
		t.Errorf("if consequence = %T, want assignment", ifStmt.Consequence)
	}
	if _, ok := ifStmt.Alternative.(*ast.BlockStatement); !ok {
		t.Errorf("if alternative = %T, want block", ifStmt.Alternative)
	}
}

func TestPositions(t *testing.T) {
	program := parseProgram(t, "fn main(n: Int): Int {\n  return left(nil);\n}")
	ret := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
	call := ret.ReturnValue.(*ast.CallExpression)
	if tok := call.GetToken(); tok.Line != 2 || tok.Column != 10 {
		t.Errorf("call position = %d:%d, want 2:10", tok.Line, tok.Column)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	input := `fn main(n: Int): Int {
    mut x: Int := 0;
    while (n > 0) {
        x := x + n;
        n := n - 1;
    }
    if (x == 15)
        print x;
    else
        print 0 . nil;
    return [fib(15) + fib(15)];
}

mut fn fib(const n: Int): Int {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
`
	first := prettyprinter.Format(parseProgram(t, input))
	if first != input {
		t.Errorf("Format mismatch:\n--- expected\n%s\n--- actual\n%s", input, first)
	}
	second := prettyprinter.Format(parseProgram(t, first))
	if second != first {
		t.Errorf("Format is not idempotent:\n%s\n---\n%s", first, second)
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *ast.VarDeclaration:
		return "*ast.VarDeclaration"
	case *ast.AssignStatement:
		return "*ast.AssignStatement"
	case *ast.PrintStatement:
		return "*ast.PrintStatement"
	case *ast.CallStatement:
		return "*ast.CallStatement"
	case *ast.IfStatement:
		return "*ast.IfStatement"
	case *ast.WhileStatement:
		return "*ast.WhileStatement"
	case *ast.BlockStatement:
		return "*ast.BlockStatement"
	case *ast.ReturnStatement:
		return "*ast.ReturnStatement"
	}
	return "unknown"
}
