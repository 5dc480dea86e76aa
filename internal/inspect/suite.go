package inspect

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// SuiteFacts is what TestSuite learns about a learner's test file.
type SuiteFacts struct {
	ImportsTesting bool
	Tests          []string
	Assertions     int
	Duplicate      string
}

// Problem explains why the suite cannot be used, or returns "".
func (s *SuiteFacts) Problem() string {
	switch {
	case s.Duplicate != "":
		return fmt.Sprintf("Multiple definitions of '%s' exist in your test suite, which shadow each other.", s.Duplicate)
	case !s.ImportsTesting:
		return "Could not find a test suite that imports the testing package."
	case len(s.Tests) == 0:
		return "The test suite did not define any tests."
	case s.Assertions == 0:
		return "No assertions like t.Errorf or t.Fatal found in any of the tests."
	}
	return ""
}

// TestSuite walks the syntax tree of a _test.go file. Test functions are
// top-level TestXxx functions taking a *testing.T; assertions are calls to
// t.Error*, t.Fatal*, t.Fail* or to the assert and require packages made
// inside them.
func TestSuite(src []byte) (*SuiteFacts, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	facts := &SuiteFacts{}
	testingName := ""
	for _, imp := range f.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		if path != "testing" {
			continue
		}
		testingName = "testing"
		if imp.Name != nil {
			testingName = imp.Name.Name
		}
	}
	facts.ImportsTesting = testingName != "" && testingName != "_"

	seen := make(map[string]bool)
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !strings.HasPrefix(fn.Name.Name, "Test") {
			continue
		}
		if !takesTestingT(fn, testingName) {
			continue
		}
		if seen[fn.Name.Name] && facts.Duplicate == "" {
			facts.Duplicate = fn.Name.Name
		}
		seen[fn.Name.Name] = true
		facts.Tests = append(facts.Tests, fn.Name.Name)
		if fn.Body != nil {
			facts.Assertions += countAssertions(fn.Body)
		}
	}
	return facts, nil
}

// SuiteProblem is the validation message for src, or "" when the suite can
// be executed.
func SuiteProblem(src []byte) string {
	facts, err := TestSuite(src)
	if err != nil {
		return fmt.Sprintf("The test suite cannot be parsed due to '%v'.", err)
	}
	return facts.Problem()
}

func takesTestingT(fn *ast.FuncDecl, testingName string) bool {
	params := fn.Type.Params
	if testingName == "" || params == nil || len(params.List) != 1 || len(params.List[0].Names) > 1 {
		return false
	}
	star, ok := params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	switch typ := star.X.(type) {
	case *ast.SelectorExpr:
		pkg, ok := typ.X.(*ast.Ident)
		return ok && pkg.Name == testingName && typ.Sel.Name == "T"
	case *ast.Ident:
		return testingName == "." && typ.Name == "T"
	}
	return false
}

func countAssertions(body *ast.BlockStmt) int {
	n := 0
	ast.Inspect(body, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if pkg, ok := sel.X.(*ast.Ident); ok && (pkg.Name == "assert" || pkg.Name == "require") {
			n++
			return true
		}
		name := sel.Sel.Name
		if strings.HasPrefix(name, "Error") || strings.HasPrefix(name, "Fatal") || strings.HasPrefix(name, "Fail") {
			n++
		}
		return true
	})
	return n
}
