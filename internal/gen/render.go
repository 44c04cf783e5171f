package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
)

// NotifierPath is the import path of the runtime package generated code
// depends on.
const NotifierPath = "github.com/rnkv/notifier-go"

// generator holds the state of one rendering.
type generator struct {
	buf  bytes.Buffer
	plan *Plan
}

func (g *generator) Printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

// Render returns the gofmt-formatted Go source of plan. When formatting fails
// the unformatted source is returned with the error, for inspection.
func Render(plan *Plan) ([]byte, error) {
	g := &generator{plan: plan}

	g.header()
	g.target()
	g.owner()
	g.constructor()
	g.ownerMethods()
	for _, endpoint := range plan.Endpoints {
		g.accessor(endpoint)
	}
	for _, route := range plan.Routes {
		g.route(route)
	}

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return g.buf.Bytes(), fmt.Errorf("formatting generated source: %w", err)
	}

	return src, nil
}

func (g *generator) header() {
	p := g.plan

	g.Printf("// Code generated by notifiergen from %s. DO NOT EDIT.\n\n", p.Source)
	g.Printf("package %s\n\n", p.Package)

	imports := append([]Import{{Path: NotifierPath, Alias: "notifier"}}, p.Imports...)
	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})

	g.Printf("import (\n")
	for _, imp := range imports {
		if imp.Alias != "" {
			g.Printf("\t%s %q\n", imp.Alias, imp.Path)
		} else {
			g.Printf("\t%q\n", imp.Path)
		}
	}
	g.Printf(")\n\n")
}

func (g *generator) target() {
	p := g.plan
	t := p.Target

	g.Printf("// %s addresses an endpoint of %s.\n", t, p.Owner)
	g.Printf("type %s struct {\n\tid notifier.ID\n}\n\n", t)

	g.Printf("var (\n")
	for _, endpoint := range p.Endpoints {
		g.Printf("\t%s = %s{notifier.NewID(%d).WithName(%q)}\n", p.targetVar(endpoint), t, endpoint.Num, endpoint.Name)
	}
	g.Printf("\t%sGlobal = %s{notifier.NewID(notifier.GlobalID).WithName(\"Global\")}\n", t, t)
	g.Printf(")\n\n")

	var arrays []*PlannedEndpoint
	for _, endpoint := range p.Endpoints {
		if endpoint.IsArray() {
			arrays = append(arrays, endpoint)
		}
	}

	if len(arrays) > 0 {
		g.Printf("// Slot counts of the array endpoints.\n")
		g.Printf("const (\n")
		for _, endpoint := range arrays {
			g.Printf("\t%s = %d\n", p.lenConst(endpoint), endpoint.Slots)
		}
		g.Printf(")\n\n")
	}

	g.Printf("func (t %s) ID() notifier.ID {\n\treturn t.id\n}\n\n", t)
	g.Printf("func (t %s) Num() int {\n\treturn t.id.Num()\n}\n\n", t)
	g.Printf("func (t %s) Index() (int, bool) {\n\treturn t.id.Index()\n}\n\n", t)
	g.Printf("func (t %s) Name() string {\n\treturn t.id.Name()\n}\n\n", t)
	g.Printf("func (t %s) String() string {\n\treturn t.id.String()\n}\n\n", t)

	g.Printf("// At addresses slot index of an array endpoint. It panics for other\n")
	g.Printf("// endpoints and for slots out of range.\n")
	g.Printf("func (t %s) At(index int) %s {\n", t, t)
	if len(arrays) == 0 {
		g.Printf("\tpanic(\"notifier: \" + t.id.String() + \" is not an array endpoint\")\n")
		g.Printf("}\n\n")
	} else {
		g.Printf("\tswitch t.id.Num() {\n")
		for _, endpoint := range arrays {
			g.Printf("\tcase %d:\n\t\tnotifier.CheckIndex(index, %s)\n", endpoint.Num, p.lenConst(endpoint))
		}
		g.Printf("\tdefault:\n\t\tpanic(\"notifier: \" + t.id.String() + \" is not an array endpoint\")\n")
		g.Printf("\t}\n\n")
		g.Printf("\treturn %s{t.id.WithIndex(index)}\n", t)
		g.Printf("}\n\n")
	}

	g.Printf("// %sOf returns the target numbered num, or %sGlobal.\n", t, t)
	g.Printf("func %sOf(num int) %s {\n", t, t)
	g.Printf("\tswitch num {\n")
	for _, endpoint := range p.Endpoints {
		g.Printf("\tcase %d:\n\t\treturn %s\n", endpoint.Num, p.targetVar(endpoint))
	}
	g.Printf("\t}\n\n")
	g.Printf("\treturn %sGlobal\n", t)
	g.Printf("}\n\n")

	g.Printf("// %sFor returns the target addressing id, slot included.\n", t)
	g.Printf("func %sFor(id notifier.ID) %s {\n", t, t)
	g.Printf("\ttarget := %sOf(id.Num())\n", t)
	g.Printf("\tif index, ok := id.Index(); ok {\n")
	g.Printf("\t\treturn target.At(index)\n")
	g.Printf("\t}\n\n")
	g.Printf("\treturn target\n")
	g.Printf("}\n\n")
}

// slotType is the element type of an endpoint's storage.
func (g *generator) slotType(endpoint *PlannedEndpoint) string {
	if endpoint.IsGroup() {
		return g.plan.groupType(endpoint)
	}

	return fmt.Sprintf("notifier.Service[%s]", endpoint.Type)
}

func (g *generator) owner() {
	p := g.plan

	g.Printf("// %s owns the endpoints declared in %s.\n", p.Owner, p.Source)
	g.Printf("type %s struct {\n", p.Owner)
	for _, endpoint := range p.Endpoints {
		if endpoint.IsArray() {
			g.Printf("\t%s [%s]%s\n", endpoint.Field, p.lenConst(endpoint), g.slotType(endpoint))
		} else {
			g.Printf("\t%s %s\n", endpoint.Field, g.slotType(endpoint))
		}
	}
	g.Printf("\troutes notifier.Routes\n")
	g.Printf("}\n\n")

	for _, endpoint := range p.Endpoints {
		if !endpoint.IsGroup() {
			continue
		}

		g.Printf("type %s struct {\n", p.groupType(endpoint))
		for _, member := range endpoint.Members {
			g.Printf("\t%s notifier.Service[%s]\n", member.Field, member.Type)
		}
		g.Printf("}\n\n")
	}
}

func (g *generator) constructor() {
	p := g.plan

	g.Printf("// New%s returns a %s with every endpoint bound and inactive.\n", p.Owner, p.Owner)
	g.Printf("func New%s() *%s {\n", p.Owner, p.Owner)
	g.Printf("\to := &%s{}\n", p.Owner)
	g.Printf("\to.init()\n")
	g.Printf("\treturn o\n")
	g.Printf("}\n\n")

	g.Printf("func (o *%s) init() {\n", p.Owner)
	for _, endpoint := range p.Endpoints {
		target := p.targetVar(endpoint)

		if endpoint.IsArray() {
			g.Printf("\tnotifier.Array(%s, o.%s[:], func(id notifier.ID, slot *%s) {\n", target, endpoint.Field, g.slotType(endpoint))
			if endpoint.IsGroup() {
				for _, member := range endpoint.Members {
					g.Printf("\t\tslot.%s.Init(id, %d)\n", member.Field, member.Capacity)
				}
			} else {
				g.Printf("\t\tslot.Init(id, %d)\n", endpoint.Capacity)
			}
			g.Printf("\t})\n")
			continue
		}

		if endpoint.IsGroup() {
			for _, member := range endpoint.Members {
				g.Printf("\to.%s.%s.Init(%s, %d)\n", endpoint.Field, member.Field, target, member.Capacity)
			}
			continue
		}

		g.Printf("\to.%s.Init(%s, %d)\n", endpoint.Field, target, endpoint.Capacity)
	}

	g.Printf("\n")
	for _, route := range p.Routes {
		g.Printf("\tnotifier.Bind[%s](&o.routes, o.each%s, o.lookup%s)\n", route.Type, route.Ident, route.Ident)
	}
	g.Printf("}\n\n")
}

func (g *generator) ownerMethods() {
	p := g.plan

	g.Printf("func (o *%s) Routes() *notifier.Routes {\n\treturn &o.routes\n}\n\n", p.Owner)

	g.Printf("// Sender returns a sender identified as target.\n")
	g.Printf("func (o *%s) Sender(target %s) notifier.Sender {\n", p.Owner, p.Target)
	g.Printf("\treturn notifier.NewSender(o, target)\n")
	g.Printf("}\n\n")

	g.Printf("// GlobalSender returns a sender that owns no endpoint.\n")
	g.Printf("func (o *%s) GlobalSender() notifier.Sender {\n", p.Owner)
	g.Printf("\treturn notifier.NewSender(o, %sGlobal)\n", p.Target)
	g.Printf("}\n\n")

	g.Printf("// Close closes every endpoint.\n")
	g.Printf("func (o *%s) Close() {\n\tnotifier.Close(o)\n}\n\n", p.Owner)
}

func (g *generator) accessor(endpoint *PlannedEndpoint) {
	p := g.plan

	if endpoint.IsGroup() {
		g.groupAccessor(endpoint)
		return
	}

	if endpoint.IsArray() {
		g.Printf("// %s returns slot index of the %s endpoint.\n", endpoint.Name, endpoint.Decl)
		g.Printf("func (o *%s) %s(index int) notifier.Channel[%s] {\n", p.Owner, endpoint.Name, endpoint.Type)
		g.Printf("\tnotifier.CheckIndex(index, %s)\n", p.lenConst(endpoint))
		g.Printf("\treturn notifier.NewChannel(o, &o.%s[index])\n", endpoint.Field)
		g.Printf("}\n\n")
		return
	}

	g.Printf("// %s returns the %s endpoint.\n", endpoint.Name, endpoint.Decl)
	g.Printf("func (o *%s) %s() notifier.Channel[%s] {\n", p.Owner, endpoint.Name, endpoint.Type)
	g.Printf("\treturn notifier.NewChannel(o, &o.%s)\n", endpoint.Field)
	g.Printf("}\n\n")
}

func (g *generator) groupAccessor(endpoint *PlannedEndpoint) {
	p := g.plan
	channel := p.channelType(endpoint)

	if endpoint.IsArray() {
		g.Printf("// %s returns slot index of the %s group.\n", endpoint.Name, endpoint.Decl)
		g.Printf("func (o *%s) %s(index int) %s {\n", p.Owner, endpoint.Name, channel)
		g.Printf("\tnotifier.CheckIndex(index, %s)\n", p.lenConst(endpoint))
		g.Printf("\treturn %s{owner: o, group: &o.%s[index], id: %s.At(index).ID()}\n", channel, endpoint.Field, p.targetVar(endpoint))
		g.Printf("}\n\n")
	} else {
		g.Printf("// %s returns the %s group.\n", endpoint.Name, endpoint.Decl)
		g.Printf("func (o *%s) %s() %s {\n", p.Owner, endpoint.Name, channel)
		g.Printf("\treturn %s{owner: o, group: &o.%s, id: %s.ID()}\n", channel, endpoint.Field, p.targetVar(endpoint))
		g.Printf("}\n\n")
	}

	g.Printf("// %s is the view of the %s group: one channel per payload type.\n", channel, endpoint.Decl)
	g.Printf("type %s struct {\n", channel)
	g.Printf("\towner *%s\n", p.Owner)
	g.Printf("\tgroup *%s\n", p.groupType(endpoint))
	g.Printf("\tid notifier.ID\n")
	g.Printf("}\n\n")

	g.Printf("func (c %s) ID() notifier.ID {\n\treturn c.id\n}\n\n", channel)

	g.Printf("// Sender returns a sender identified as the group.\n")
	g.Printf("func (c %s) Sender() notifier.Sender {\n", channel)
	g.Printf("\treturn notifier.NewSender(c.owner, c.id)\n")
	g.Printf("}\n\n")

	for _, member := range endpoint.Members {
		g.Printf("func (c %s) %s() notifier.Channel[%s] {\n", channel, member.Name, member.Type)
		g.Printf("\treturn notifier.NewChannel(c.owner, &c.group.%s)\n", member.Field)
		g.Printf("}\n\n")
	}
}

// sitePath is the selector of the service at site, with slot standing for
// the array index expression.
func sitePath(site Site, slot string) string {
	path := "o." + site.Endpoint.Field
	if site.Endpoint.IsArray() {
		path += "[" + slot + "]"
	}
	if site.Member != nil {
		path += "." + site.Member.Field
	}

	return path
}

func (g *generator) route(route *Route) {
	p := g.plan

	g.Printf("func (o *%s) each%s(yield func(*notifier.Service[%s]) bool) {\n", p.Owner, route.Ident, route.Type)
	for _, site := range route.Sites {
		if site.Endpoint.IsArray() {
			g.Printf("\tfor i := range o.%s {\n", site.Endpoint.Field)
			g.Printf("\t\tif !yield(&%s) {\n\t\t\treturn\n\t\t}\n", sitePath(site, "i"))
			g.Printf("\t}\n")
			continue
		}

		g.Printf("\tif !yield(&%s) {\n\t\treturn\n\t}\n", sitePath(site, ""))
	}
	g.Printf("}\n\n")

	g.Printf("func (o *%s) lookup%s(id notifier.ID) *notifier.Service[%s] {\n", p.Owner, route.Ident, route.Type)
	g.Printf("\tswitch id.Num() {\n")
	for _, site := range route.Sites {
		slot := ""
		if site.Endpoint.IsArray() {
			slot = fmt.Sprintf("notifier.SlotOf(id, %s)", p.lenConst(site.Endpoint))
		}

		g.Printf("\tcase %d:\n\t\treturn &%s\n", site.Endpoint.Num, sitePath(site, slot))
	}
	g.Printf("\t}\n\n")
	g.Printf("\treturn nil\n")
	g.Printf("}\n\n")
}
