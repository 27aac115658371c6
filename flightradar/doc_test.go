package flightradar

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Methods that satisfy standard interfaces document themselves
var selfDocumenting = map[string]bool{
	"String":        true,
	"Error":         true,
	"Unwrap":        true,
	"UnmarshalJSON": true,
}

func TestExportedDeclarationsDocumented(t *testing.T) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	require.NoError(t, err)
	pkg, ok := pkgs["flightradar"]
	require.True(t, ok)

	var missing []string
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if !d.Name.IsExported() || selfDocumenting[d.Name.Name] || d.Doc != nil {
					continue
				}
				missing = append(missing, fset.Position(d.Pos()).String()+" "+d.Name.Name)
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok || ts.Name.Name != "API" {
						continue
					}
					iface, ok := ts.Type.(*ast.InterfaceType)
					require.True(t, ok)
					for _, m := range iface.Methods.List {
						if m.Doc == nil {
							missing = append(missing, fset.Position(m.Pos()).String()+" API."+m.Names[0].Name)
						}
					}
				}
			}
		}
	}

	assert.Empty(t, missing, "exported declarations without doc comments")
}
