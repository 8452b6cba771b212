// Package myanalyzer содержит анализатор, запрещающий
// прямые вызовы os.Exit() в функции main() пакета main.
package myanalyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NoOsExitAnalyzer проверяет, что функция main пакета main не вызывает os.Exit напрямую.
// Завершение с ошибкой делается через возврат ошибки из run() и zap.L().Fatal.
//
// Пример неправильного использования:
//
//	func main() {
//	    os.Exit(1) // вызовет ошибку анализатора
//	}
var NoOsExitAnalyzer = &analysis.Analyzer{
	Name:     "noosexit",
	Doc:      "запрещает прямой вызов os.Exit в функции main пакета main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runNoOsExit,
}

func runNoOsExit(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	// стек нужен, чтобы найти объемлющее объявление функции
	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		call := n.(*ast.CallExpr)
		if !isOsExit(pass, call) || !insideMain(stack) {
			return true
		}

		pass.Reportf(call.Pos(), "прямой вызов os.Exit() запрещен в функции main")
		return true
	})

	return nil, nil
}

// isOsExit сообщает, вызывает ли call функцию Exit пакета os
// (с учётом переименованного импорта).
func isOsExit(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Exit" {
		return false
	}

	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	return ok && fn.Pkg() != nil && fn.Pkg().Path() == "os"
}

// insideMain проверяет, что ближайшее объявление функции в стеке — func main().
// Вызовы внутри замыканий в main тоже считаются.
func insideMain(stack []ast.Node) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.FuncDecl); ok {
			return fn.Recv == nil && fn.Name.Name == "main"
		}
	}
	return false
}
