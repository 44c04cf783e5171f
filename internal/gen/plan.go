package gen

import (
	"errors"
	"fmt"
	"go/ast"
	"sort"
	"strconv"
)

// Plan is a validated schema resolved into everything the renderer emits.
type Plan struct {
	Package string
	Owner   string
	Target  string
	// Source is the schema file name quoted in the generated header.
	Source    string
	Imports   []Import
	Endpoints []*PlannedEndpoint
	// Routes holds one entry per distinct payload type, in order of first
	// appearance.
	Routes []*Route
}

// PlannedEndpoint is an endpoint with its numeric id and generated names.
type PlannedEndpoint struct {
	Num  int
	Decl string
	// Name is the exported identifier: accessor, target suffix.
	Name string
	// Field is the owner struct field.
	Field string
	// Slots is the array size, 0 for a plain endpoint.
	Slots int

	// Type and Capacity describe a single endpoint.
	Type     string
	Capacity int

	// Members describe a group.
	Members []*PlannedMember
}

// PlannedMember is one payload type of a group.
type PlannedMember struct {
	Name     string
	Field    string
	Type     string
	Capacity int
}

// Route gathers every service of one payload type.
type Route struct {
	Type string
	// Ident names the generated each<Ident> and lookup<Ident> methods.
	Ident string
	Sites []Site
}

// Site is one place a payload type lives: a single endpoint, or a member of a
// group endpoint.
type Site struct {
	Endpoint *PlannedEndpoint
	Member   *PlannedMember
}

func (e *PlannedEndpoint) IsGroup() bool {
	return e.Members != nil
}

func (e *PlannedEndpoint) IsArray() bool {
	return e.Slots > 0
}

// NewPlan resolves a schema that passed Validate. source is the schema file
// name recorded in the generated header.
func NewPlan(schema *Schema, source string) (*Plan, error) {
	if err := Validate(schema); err != nil {
		return nil, err
	}

	plan := &Plan{
		Package: schema.Package,
		Owner:   schema.Owner,
		Target:  schema.targetName(),
		Source:  source,
		Imports: append([]Import(nil), schema.Imports...),
	}

	sort.Slice(plan.Imports, func(i, j int) bool {
		return plan.Imports[i].Path < plan.Imports[j].Path
	})

	routes := make(map[string]*Route)
	addSite := func(expr ast.Expr, site Site) string {
		key := canonical(expr)

		route, ok := routes[key]
		if !ok {
			route = &Route{Type: key}
			routes[key] = route
			plan.Routes = append(plan.Routes, route)
		}

		route.Sites = append(route.Sites, site)
		return key
	}

	for num, declared := range schema.Endpoints {
		endpoint := &PlannedEndpoint{
			Num:   num,
			Decl:  declared.Name,
			Name:  camel(declared.Name),
			Field: lowerFirst(camel(declared.Name)),
			Slots: declared.slots(),
		}
		plan.Endpoints = append(plan.Endpoints, endpoint)

		if !declared.isGroup() {
			expr, _ := parseType(declared.Type)
			endpoint.Type = addSite(expr, Site{Endpoint: endpoint})
			endpoint.Capacity = declared.Capacity
			continue
		}

		endpoint.Members = make([]*PlannedMember, 0, len(declared.Group))
		for _, declaredMember := range declared.Group {
			expr, _ := parseType(declaredMember.Type)
			name := memberName(declaredMember, expr)

			member := &PlannedMember{
				Name:     name,
				Field:    lowerFirst(name),
				Capacity: declaredMember.Capacity,
			}
			endpoint.Members = append(endpoint.Members, member)
			member.Type = addSite(expr, Site{Endpoint: endpoint, Member: member})
		}
	}

	plan.nameRoutes()

	if err := errors.Join(plan.checkFields(), plan.checkDecls()); err != nil {
		return nil, err
	}

	return plan, nil
}

// nameRoutes gives every route a unique identifier: the short type name,
// then the package-qualified one, then a numeric suffix.
func (p *Plan) nameRoutes() {
	taken := make(map[string]bool)

	for _, route := range p.Routes {
		expr, _ := parseType(route.Type)

		ident := typeName(expr)
		if taken[ident] {
			ident = qualifiedName(expr)
		}

		base := ident
		for n := 2; taken[ident]; n++ {
			ident = base + strconv.Itoa(n)
		}

		taken[ident] = true
		route.Ident = ident
	}
}

// checkFields rejects endpoint fields that collide with generated unexported
// methods.
func (p *Plan) checkFields() error {
	methods := map[string]bool{"init": true}
	for _, route := range p.Routes {
		methods["each"+route.Ident] = true
		methods["lookup"+route.Ident] = true
	}

	var errs []error
	for _, endpoint := range p.Endpoints {
		if methods[endpoint.Field] {
			errs = append(errs, fmt.Errorf("endpoint %s: field %s collides with a generated method", endpoint.Decl, endpoint.Field))
		}
	}

	return errors.Join(errs...)
}

// checkDecls rejects package-level names the generated file would declare
// twice, such as an endpoint "of" whose target variable shadows <Target>Of.
func (p *Plan) checkDecls() error {
	owners := make(map[string]string)
	var errs []error

	declare := func(name, by string) {
		if previous, ok := owners[name]; ok {
			errs = append(errs, fmt.Errorf("%s: %s is already declared by %s", by, name, previous))
			return
		}
		owners[name] = by
	}

	declare(p.Owner, "owner type")
	declare(p.Target, "target type")
	declare("New"+p.Owner, "constructor")
	declare(p.Target+"Of", "target lookup")
	declare(p.Target+"For", "target lookup")
	declare(p.Target+"Global", "global target")

	for _, endpoint := range p.Endpoints {
		by := "endpoint " + endpoint.Decl

		declare(p.targetVar(endpoint), by)
		if endpoint.IsArray() {
			declare(p.lenConst(endpoint), by)
		}
		if endpoint.IsGroup() {
			declare(p.groupType(endpoint), by)
			declare(p.channelType(endpoint), by)
		}
	}

	return errors.Join(errs...)
}

// groupType is the unexported struct holding the services of a group.
func (p *Plan) groupType(endpoint *PlannedEndpoint) string {
	return lowerFirst(p.Owner) + endpoint.Name + "Group"
}

// channelType is the exported view of a group.
func (p *Plan) channelType(endpoint *PlannedEndpoint) string {
	return p.Owner + endpoint.Name + "Channel"
}

func (p *Plan) lenConst(endpoint *PlannedEndpoint) string {
	return p.Owner + endpoint.Name + "Len"
}

func (p *Plan) targetVar(endpoint *PlannedEndpoint) string {
	return p.Target + endpoint.Name
}
