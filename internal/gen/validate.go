package gen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
)

// reserved names are taken by generated methods and variables.
var reserved = map[string]bool{
	"Routes":       true,
	"Sender":       true,
	"GlobalSender": true,
	"Close":        true,
	"Global":       true,
	"Init":         true,
}

// reservedMembers are taken by the methods of generated group channels.
var reservedMembers = map[string]bool{
	"ID":     true,
	"Sender": true,
}

type problems []error

func (p *problems) add(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

// Validate checks a decoded schema and reports every problem found, joined.
func Validate(schema *Schema) error {
	var p problems

	if !isIdent(schema.Package) {
		p.add("package %q is not a Go identifier", schema.Package)
	}
	if !isExported(schema.Owner) {
		p.add("owner %q is not an exported Go identifier", schema.Owner)
	}
	if schema.Target != "" && !isExported(schema.Target) {
		p.add("target %q is not an exported Go identifier", schema.Target)
	}
	if schema.Target != "" && schema.Target == schema.Owner {
		p.add("target %q is the owner name", schema.Target)
	}

	imported := validateImports(&p, schema.Imports)
	used := make(map[string]bool)

	if len(schema.Endpoints) == 0 {
		p.add("no endpoints declared")
	}

	names := make(map[string]int)
	for i := range schema.Endpoints {
		validateEndpoint(&p, i, &schema.Endpoints[i], names, imported, used)
	}

	for _, imp := range schema.Imports {
		if name := importName(imp); imported[name] && !used[name] {
			p.add("import %q is not used by any payload type", imp.Path)
		}
	}

	return errors.Join(p...)
}

func validateImports(p *problems, imports []Import) map[string]bool {
	imported := make(map[string]bool)

	for i, imp := range imports {
		if imp.Path == "" {
			p.add("imports[%d]: empty path", i)
			continue
		}

		name := importName(imp)
		switch {
		case !isIdent(name):
			p.add("import %q: %q is not a package name, set an alias", imp.Path, name)
		case name == "notifier":
			p.add("import %q: name %q is taken by the notifier package", imp.Path, name)
		case imported[name]:
			p.add("import %q: name %q imported twice", imp.Path, name)
		default:
			imported[name] = true
		}
	}

	return imported
}

func validateEndpoint(p *problems, i int, endpoint *Endpoint, names map[string]int, imported, used map[string]bool) {
	label := fmt.Sprintf("endpoints[%d]", i)
	if endpoint.Name != "" {
		label = fmt.Sprintf("%s (%s)", label, endpoint.Name)
	}

	name := camel(endpoint.Name)
	switch {
	case endpoint.Name == "":
		p.add("%s: missing name", label)
	case !isExported(name) || token.IsKeyword(lowerFirst(name)):
		p.add("%s: name does not form a usable Go identifier", label)
	case reserved[name]:
		p.add("%s: name %q collides with a generated method", label, name)
	default:
		if previous, ok := names[name]; ok {
			p.add("%s: name %q already used by endpoints[%d]", label, name, previous)
		} else {
			names[name] = i
		}
	}

	if endpoint.Array != nil && *endpoint.Array < 1 {
		p.add("%s: array size %d must be at least 1", label, *endpoint.Array)
	}

	switch {
	case endpoint.Type != "" && endpoint.isGroup():
		p.add("%s: both type and group set", label)
	case endpoint.Type == "" && !endpoint.isGroup():
		if endpoint.Group != nil {
			p.add("%s: empty group", label)
		} else {
			p.add("%s: one of type or group is required", label)
		}
	case endpoint.isGroup():
		if endpoint.Capacity != 0 {
			p.add("%s: capacity is set per group member", label)
		}
		validateGroup(p, label, endpoint.Group, imported, used)
	default:
		if endpoint.Capacity < 1 {
			p.add("%s: capacity %d must be at least 1", label, endpoint.Capacity)
		}
		validateType(p, label, endpoint.Type, imported, used)
	}
}

func validateGroup(p *problems, label string, members []Member, imported, used map[string]bool) {
	names := make(map[string]bool)
	types := make(map[string]bool)

	for i, member := range members {
		memberLabel := fmt.Sprintf("%s: group[%d]", label, i)

		if member.Capacity < 1 {
			p.add("%s: capacity %d must be at least 1", memberLabel, member.Capacity)
		}

		expr, ok := validateType(p, memberLabel, member.Type, imported, used)
		if !ok {
			continue
		}

		key := canonical(expr)
		if types[key] {
			p.add("%s: type %s already in the group", memberLabel, key)
		}
		types[key] = true

		name := memberName(member, expr)
		switch {
		case !isExported(name) || token.IsKeyword(lowerFirst(name)):
			p.add("%s: name %q does not form a usable Go identifier", memberLabel, name)
		case reservedMembers[name]:
			p.add("%s: name %q collides with a generated method", memberLabel, name)
		case names[name]:
			p.add("%s: name %q already used in the group", memberLabel, name)
		default:
			names[name] = true
		}
	}
}

func validateType(p *problems, label, typ string, imported, used map[string]bool) (ast.Expr, bool) {
	if typ == "" {
		p.add("%s: missing type", label)
		return nil, false
	}

	parsed, ok := parseType(typ)
	if !ok {
		p.add("%s: %q is not a Go type expression", label, typ)
		return nil, false
	}

	for _, qualifier := range qualifiers(parsed) {
		if !imported[qualifier] {
			p.add("%s: package %q of %s is not imported", label, qualifier, typ)
			continue
		}
		used[qualifier] = true
	}

	return parsed, true
}

func memberName(member Member, expr ast.Expr) string {
	if member.Name != "" {
		return camel(member.Name)
	}

	return typeName(expr)
}
