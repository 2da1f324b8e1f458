package internalcheck

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
	"testing"
)

func TestPanicOnlyInMustHelpers(t *testing.T) {
	var findings []string

	for _, pkg := range loadModule(t) {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Body == nil || panicAllowed(fn.Name.Name) {
					continue
				}
				ast.Inspect(fn.Body, func(n ast.Node) bool {
					call, ok := n.(*ast.CallExpr)
					if !ok {
						return true
					}
					id, ok := call.Fun.(*ast.Ident)
					if !ok {
						return true
					}
					if _, builtin := pkg.TypesInfo.Uses[id].(*types.Builtin); builtin && id.Name == "panic" {
						pos := pkg.Fset.Position(call.Pos())
						findings = append(findings, fmt.Sprintf("%s: panic in %s; return an error instead", pos, fn.Name.Name))
					}
					return true
				})
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("panic policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func panicAllowed(name string) bool {
	return name == "init" || strings.HasPrefix(name, "must")
}
