package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"quote":   func(s string) string { return fmt.Sprintf("%q", s) },
	"article": article,
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	typeTmpl +
		keysTmpl +
		membersTmpl +
		definitionTmpl +
		viewTmpl +
		accessorsTmpl +
		registryTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// --- Template data types ---

// typeData holds pre-computed data for one generated type file.
type typeData struct {
	Package     string
	Name        string
	ID          uint32
	ClassConst  string
	Parent      string
	Abstract    bool
	Description string
	Attributes  []attrData
	Members     []memberData
}

type attrData struct {
	Name          string
	VarName       string
	GoType        string
	NamespaceExpr string
	IDConst       string
	DataTypeConst string
	RankExpr      string
	AccessConst   string
	Optional      bool
	Description   string
}

type memberData struct {
	Name          string
	VarName       string
	Type          string
	NamespaceExpr string
	Optional      bool
	Description   string
}

// registryData holds data for the registry template.
type registryData struct {
	Package   string
	Namespace string
	Types     []RawTypeDef
}

// --- Template definitions ---

const typeTmpl = `{{define "type"}}// Code generated by nodeproxy-gen. DO NOT EDIT.

package {{.Package}}

import (
"context"

"github.com/nodeproxy/nodeproxy-go/pkg/model"
"github.com/nodeproxy/nodeproxy-go/pkg/proxy"
)

// {{.Name}}ID is the type definition reference of {{.Name}}.
var {{.Name}}ID = model.NumericRef(Namespace, {{.ID}})
{{template "keys" .}}
{{- template "members" .}}
{{- template "definition" .}}
{{- template "view" .}}
{{- template "accessors" .}}
{{- end}}`

const keysTmpl = `{{define "keys"}}
{{- if .Attributes}}
// {{.Name}} attribute keys.
var (
{{- range .Attributes}}
{{.VarName}} = model.AttributeKey{ {{- if .NamespaceExpr}}NamespaceURI: {{.NamespaceExpr}}, {{end}}Name: {{quote .Name}}, ID: {{.IDConst}}, DataType: {{.DataTypeConst}}, ValueRank: {{.RankExpr}}, Access: {{.AccessConst}}}
{{- end}}
)
{{end}}
{{- end}}`

const membersTmpl = `{{define "members"}}
{{- if .Members}}
// {{.Name}} members.
var (
{{- range .Members}}
{{.VarName}} = model.Member{Selector: model.Selector({{.NamespaceExpr}}, {{quote .Name}}), Expected: {{.Type}}ID{{if .Optional}}, Optional: true{{end}}}
{{- end}}
)
{{end}}
{{- end}}`

const definitionTmpl = `{{define "definition"}}
// {{.Name}}Definition describes {{.Name}}.
var {{.Name}}Definition = &model.TypeDefinition{
ID: {{.Name}}ID,
Name: {{quote .Name}},
Class: {{.ClassConst}},
{{- if .Parent}}
Parent: {{.Parent}}Definition,
{{- end}}
{{- if .Abstract}}
Abstract: true,
{{- end}}
{{- if .Attributes}}
Attributes: []model.AttributeKey{
{{- range .Attributes}}
{{.VarName}},
{{- end}}
},
{{- end}}
{{- if .Members}}
Members: []model.Member{
{{- range .Members}}
{{.VarName}},
{{- end}}
},
{{- end}}
}
{{end}}`

const viewTmpl = `{{define "view"}}
// {{.Name}} is the typed view of {{article .Name}} {{.Name}} node.
{{- if .Description}}
// {{.Description}}
{{- end}}
type {{.Name}} struct {
{{- if .Parent}}
*{{.Parent}}
{{- else}}
*proxy.Node
{{- end}}
}

// New{{.Name}} wraps n in a {{.Name}} view.
func New{{.Name}}(n *proxy.Node) proxy.Proxy {
return new{{.Name}}(n)
}

func new{{.Name}}(n *proxy.Node) *{{.Name}} {
{{- if .Parent}}
return &{{.Name}}{ {{- .Parent}}: new{{.Parent}}(n)}
{{- else}}
return &{{.Name}}{Node: n}
{{- end}}
}
{{end}}`

const accessorsTmpl = `{{define "accessors"}}
{{- $name := .Name}}
{{- range .Attributes}}
// {{.Name}} returns the {{.Name}} attribute.
{{- if .Description}}
// {{.Description}}
{{- end}}
{{- if .Optional}}
// The attribute is optional.
{{- end}}
func (t *{{$name}}) {{.Name}}() *proxy.Attribute[{{.GoType}}] {
return proxy.AttributeOf[{{.GoType}}](t.Node, {{.VarName}})
}

{{end}}
{{- range .Members}}
// {{.Name}}Node returns the {{.Name}} child.
{{- if .Description}}
// {{.Description}}
{{- end}}
func (t *{{$name}}) {{.Name}}Node(ctx context.Context) (*{{.Type}}, error) {
return proxy.ChildOf[*{{.Type}}](ctx, t.Node, {{.VarName}})
}

// {{.Name}}NodeAsync is the asynchronous form of {{.Name}}Node.
func (t *{{$name}}) {{.Name}}NodeAsync(ctx context.Context) *proxy.Future[*{{.Type}}] {
return proxy.ChildOfAsync[*{{.Type}}](ctx, t.Node, {{.VarName}})
}

{{end}}
{{- end}}`

const registryTmpl = `{{define "registry"}}// Code generated by nodeproxy-gen. DO NOT EDIT.

package {{.Package}}

import (
"github.com/nodeproxy/nodeproxy-go/pkg/model"
"github.com/nodeproxy/nodeproxy-go/pkg/proxy"
)

// Namespace is the namespace URI of the generated types.
const Namespace = {{quote .Namespace}}

// definitions lists every generated type with its view constructor.
var definitions = []struct {
def *model.TypeDefinition
ctor proxy.Constructor
}{
{{- range .Types}}
{ {{- .Name}}Definition, New{{.Name}}},
{{- end}}
}

// Register adds every generated type to r.
func Register(r *proxy.Registry) error {
for _, d := range definitions {
if err := r.Register(d.def, d.ctor); err != nil {
return err
}
}
return nil
}

// NewRegistry returns a registry holding every generated type.
func NewRegistry() *proxy.Registry {
r := proxy.NewRegistry()
if err := Register(r); err != nil {
panic(err)
}
return r
}

// Definition returns the generated type with the given name.
func Definition(name string) (*model.TypeDefinition, bool) {
for _, d := range definitions {
if d.def.Name == name {
return d.def, true
}
}
return nil, false
}
{{end}}`
