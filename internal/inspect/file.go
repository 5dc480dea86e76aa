// Package inspect derives structural facts from Go source text without
// compiling or running it.
package inspect

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
)

// Func describes one function or method declaration.
type Func struct {
	Name  string
	Nodes int
	// Stub is set for an empty body or a body that only panics, the shape
	// exercise templates are handed out with.
	Stub bool
}

// Facts is what File learns about a source file.
type Facts struct {
	Package string
	Nodes   int
	// Funcs is keyed by function name, or Recv.Method for methods.
	Funcs map[string]Func
	// Globals lists package-level variables, sorted.
	Globals []string
	// ReadsStdin is set when the file refers to os.Stdin.
	ReadsStdin bool
}

// File parses src and reports its facts.
func File(src []byte) (*Facts, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	facts := &Facts{
		Package: f.Name.Name,
		Nodes:   countNodes(f),
		Funcs:   make(map[string]Func),
	}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := funcKey(d)
			facts.Funcs[name] = Func{Name: name, Nodes: countNodes(d), Stub: isStub(d.Body)}
		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				for _, id := range spec.(*ast.ValueSpec).Names {
					if id.Name != "_" {
						facts.Globals = append(facts.Globals, id.Name)
					}
				}
			}
		}
	}
	sort.Strings(facts.Globals)
	facts.ReadsStdin = refersTo(f, "os", "Stdin")
	return facts, nil
}

// refersTo reports whether f uses the exported name of the package imported
// from path, through its import name or a dot import.
func refersTo(f *ast.File, path, name string) bool {
	local, dot := "", false
	for _, imp := range f.Imports {
		if p, _ := strconv.Unquote(imp.Path.Value); p != path {
			continue
		}
		switch {
		case imp.Name == nil:
			local = path
		case imp.Name.Name == ".":
			dot = true
		case imp.Name.Name != "_":
			local = imp.Name.Name
		}
	}
	if local == "" && !dot {
		return false
	}
	found := false
	ast.Inspect(f, func(n ast.Node) bool {
		if found {
			return false
		}
		switch x := n.(type) {
		case *ast.SelectorExpr:
			if id, ok := x.X.(*ast.Ident); ok && local != "" && id.Name == local && x.Sel.Name == name {
				found = true
			}
			return !found && !(dot && x.Sel.Name == name)
		case *ast.Ident:
			if dot && x.Name == name {
				found = true
			}
		}
		return !found
	})
	return found
}

func funcKey(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}
	typ := d.Recv.List[0].Type
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}
	switch t := typ.(type) {
	case *ast.IndexExpr:
		typ = t.X
	case *ast.IndexListExpr:
		typ = t.X
	}
	if id, ok := typ.(*ast.Ident); ok {
		return id.Name + "." + d.Name.Name
	}
	return d.Name.Name
}

func isStub(body *ast.BlockStmt) bool {
	if body == nil || len(body.List) == 0 {
		return true
	}
	if len(body.List) != 1 {
		return false
	}
	expr, ok := body.List[0].(*ast.ExprStmt)
	if !ok {
		return false
	}
	call, ok := expr.X.(*ast.CallExpr)
	if !ok {
		return false
	}
	id, ok := call.Fun.(*ast.Ident)
	return ok && id.Name == "panic"
}

func countNodes(root ast.Node) int {
	n := 0
	ast.Inspect(root, func(node ast.Node) bool {
		if node != nil {
			n++
		}
		return true
	})
	return n
}
