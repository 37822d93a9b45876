// Package analyzer runs the static checks between parsing and execution:
// function table consistency, the entry point, call targets and variable
// scoping.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/symbols"
)

// Analyzer performs semantic analysis on the AST.
type Analyzer struct {
	symbolTable *symbols.SymbolTable
	File        string
}

// New creates a new Analyzer with a given symbol table.
func New(symbolTable *symbols.SymbolTable) *Analyzer {
	return &Analyzer{symbolTable: symbolTable}
}

// Analyze checks a program and returns diagnostics sorted by position.
func (a *Analyzer) Analyze(node ast.Node) []*diagnostics.DiagnosticError {
	w := &walker{
		global:      a.symbolTable,
		symbolTable: a.symbolTable,
		currentFile: a.File,
	}
	if node != nil {
		node.Accept(w)
	}
	return w.getErrors()
}

type walker struct {
	global      *symbols.SymbolTable
	symbolTable *symbols.SymbolTable                    // Current scope
	errorSet    map[string]*diagnostics.DiagnosticError // Key: "line:col:code" for deduplication
	currentFile string
}

// addError adds an error to the walker, deduplicating by position and code
func (w *walker) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" && w.currentFile != "" {
		err.File = w.currentFile
	}
	key := errorKey(err)
	if w.errorSet == nil {
		w.errorSet = make(map[string]*diagnostics.DiagnosticError)
	}
	if _, seen := w.errorSet[key]; !seen {
		w.errorSet[key] = err
	}
}

// getErrors returns all unique errors as a slice, sorted by position
func (w *walker) getErrors() []*diagnostics.DiagnosticError {
	result := make([]*diagnostics.DiagnosticError, 0, len(w.errorSet))
	for _, err := range w.errorSet {
		result = append(result, err)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Token, result[j].Token
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return result[i].Code < result[j].Code
	})
	return result
}

func errorKey(err *diagnostics.DiagnosticError) string {
	return fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
}

func (w *walker) enterScope(scopeType symbols.ScopeType) {
	w.symbolTable = symbols.NewEnclosedSymbolTable(w.symbolTable, scopeType)
}

func (w *walker) leaveScope() {
	w.symbolTable = w.symbolTable.Outer()
}
