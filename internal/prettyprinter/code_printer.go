package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/quandary/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter), mirrors the parser.
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	".":  5,
	"+":  6,
	"-":  6,
	"*":  7,
}

const prefixPrecedence = 100

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10
}

// Right-associative operators
var rightAssoc = map[string]bool{
	".": true,
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Format renders a program in canonical layout.
func Format(program *ast.Program) string {
	p := NewCodePrinter()
	program.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	infix, ok := expr.(*ast.InfixExpression)
	if !ok {
		if parentPrec == prefixPrecedence {
			// Casts bind like prefix operators but read better grouped.
			if _, isCast := expr.(*ast.CastExpression); isCast {
				p.write("(")
				expr.Accept(p)
				p.write(")")
				return
			}
		}
		expr.Accept(p)
		return
	}

	prec := getPrecedence(infix.Operator)
	needParens := prec < parentPrec
	// For same precedence, check associativity
	if prec == parentPrec {
		if isRight && !rightAssoc[infix.Operator] {
			needParens = true
		} else if !isRight && rightAssoc[infix.Operator] {
			needParens = true
		}
	}
	if needParens {
		p.write("(")
	}
	p.printBinary(infix.Left, infix.Operator, infix.Right)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) printBinary(left ast.Expression, op string, right ast.Expression) {
	prec := getPrecedence(op)
	p.printExpr(left, prec, false)
	p.write(" " + op + " ")
	p.printExpr(right, prec, true)
}

// printBody prints the statement after if/while/else. Blocks stay on the
// same line, single statements go on an indented line of their own.
func (p *CodePrinter) printBody(stmt ast.Statement) {
	if block, ok := stmt.(*ast.BlockStatement); ok {
		p.write(" ")
		block.Accept(p)
		return
	}
	p.writeln()
	p.indent++
	p.writeIndent()
	stmt.Accept(p)
	p.indent--
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for i, fn := range n.Functions {
		if i > 0 {
			p.writeln()
		}
		fn.Accept(p)
		p.writeln()
	}
}

func (p *CodePrinter) VisitFunctionDecl(n *ast.FunctionDecl) {
	if n.Mutable {
		p.write("mut ")
	}
	p.write("fn " + n.Name.Value + "(")
	for i, param := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		if !param.Mutable {
			p.write("const ")
		}
		p.write(param.Name.Value + ": " + param.Type.String())
	}
	p.write("): " + n.ReturnType.String() + " ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	p.write("{")
	p.indent++
	for _, stmt := range n.Statements {
		p.writeln()
		p.writeIndent()
		stmt.Accept(p)
	}
	p.indent--
	p.writeln()
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitVarDeclaration(n *ast.VarDeclaration) {
	if n.Mutable {
		p.write("mut ")
	}
	p.write(n.Name.Value + ": " + n.Type.String() + " := ")
	p.printExpr(n.Value, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitAssignStatement(n *ast.AssignStatement) {
	p.write(n.Name.Value + " := ")
	p.printExpr(n.Value, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitPrintStatement(n *ast.PrintStatement) {
	p.write("print ")
	p.printExpr(n.Value, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("if (")
	p.printExpr(n.Condition, 0, false)
	p.write(")")
	p.printBody(n.Consequence)
	if n.Alternative == nil {
		return
	}
	if _, ok := n.Consequence.(*ast.BlockStatement); ok {
		p.write(" else")
	} else {
		p.writeln()
		p.writeIndent()
		p.write("else")
	}
	p.printBody(n.Alternative)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("while (")
	p.printExpr(n.Condition, 0, false)
	p.write(")")
	p.printBody(n.Body)
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("return ")
	p.printExpr(n.ReturnValue, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitCallStatement(n *ast.CallStatement) {
	n.Call.Accept(p)
	p.write(";")
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNilLiteral(n *ast.NilLiteral) {
	p.write("nil")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.write(n.Operator)
	p.printExpr(n.Right, prefixPrecedence, false)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitCastExpression(n *ast.CastExpression) {
	p.write("(" + n.Target.String() + ") ")
	p.printExpr(n.Right, prefixPrecedence, false)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.write(n.Function.Value + "(")
	for i, arg := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, 0, false)
	}
	p.write(")")
}

func (p *CodePrinter) VisitConcurrentExpression(n *ast.ConcurrentExpression) {
	p.write("[")
	p.printBinary(n.Left, n.Operator, n.Right)
	p.write("]")
}
