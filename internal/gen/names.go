package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// camel converts a declared name to an exported identifier: "ping_in",
// "ping-in" and "pingIn" all become "PingIn".
func camel(name string) string {
	var b strings.Builder

	for part := range strings.FieldsFuncSeq(name, isSeparator) {
		first, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(part[size:])
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// lowerFirst lowers the leading rune of an identifier.
func lowerFirst(name string) string {
	if name == "" {
		return name
	}

	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(first)) + name[size:]
}

// isIdent reports whether name is a Go identifier that is not a keyword.
func isIdent(name string) bool {
	return token.IsIdentifier(name)
}

func isExported(name string) bool {
	return isIdent(name) && token.IsExported(name)
}

// importName returns the package name an import is referred to by: its alias,
// or the last path element with a major version suffix skipped.
func importName(imp Import) string {
	if imp.Alias != "" {
		return imp.Alias
	}

	base := path.Base(imp.Path)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(imp.Path))
	}

	return base
}

func isMajorVersion(element string) bool {
	if len(element) < 2 || element[0] != 'v' {
		return false
	}

	for _, r := range element[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// parseType parses a payload type expression.
func parseType(expr string) (ast.Expr, bool) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil || !isTypeExpr(parsed) {
		return nil, false
	}

	return parsed, true
}

// canonical is the key payload types are compared by.
func canonical(expr ast.Expr) string {
	return types.ExprString(expr)
}

func isTypeExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := e.X.(*ast.Ident)
		return ok
	case *ast.ParenExpr:
		return isTypeExpr(e.X)
	case *ast.StarExpr:
		return isTypeExpr(e.X)
	case *ast.ArrayType:
		return isTypeExpr(e.Elt)
	case *ast.MapType:
		return isTypeExpr(e.Key) && isTypeExpr(e.Value)
	case *ast.ChanType:
		return isTypeExpr(e.Value)
	case *ast.FuncType, *ast.InterfaceType, *ast.StructType:
		return true
	case *ast.IndexExpr:
		return isTypeExpr(e.X) && isTypeExpr(e.Index)
	case *ast.IndexListExpr:
		if !isTypeExpr(e.X) {
			return false
		}
		for _, index := range e.Indices {
			if !isTypeExpr(index) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// qualifiers returns the package names a type expression refers to.
func qualifiers(expr ast.Expr) []string {
	var names []string

	ast.Inspect(expr, func(node ast.Node) bool {
		selector, ok := node.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if pkg, ok := selector.X.(*ast.Ident); ok {
			names = append(names, pkg.Name)
		}
		return false
	})

	return names
}

// typeName is the short name of a payload type: the named type with pointers
// stripped, or every identifier of a composite type joined.
func typeName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return camel(e.Name)
	case *ast.SelectorExpr:
		return camel(e.Sel.Name)
	case *ast.StarExpr:
		return typeName(e.X)
	case *ast.ParenExpr:
		return typeName(e.X)
	}

	var b strings.Builder
	ast.Inspect(expr, func(node ast.Node) bool {
		if ident, ok := node.(*ast.Ident); ok {
			b.WriteString(camel(ident.Name))
		}
		return true
	})

	if b.Len() == 0 {
		return "Payload"
	}
	return b.String()
}

// qualifiedName is typeName prefixed by the package qualifier, if any.
func qualifiedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok {
			return camel(pkg.Name) + camel(e.Sel.Name)
		}
	case *ast.StarExpr:
		return qualifiedName(e.X)
	case *ast.ParenExpr:
		return qualifiedName(e.X)
	}

	return typeName(expr)
}
