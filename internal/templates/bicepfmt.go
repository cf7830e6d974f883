package templates

import (
	"fmt"
	"strconv"
	"strings"
)

// A small Bicep syntax tree. Values render multi-line with two-space
// indentation; arrays are newline separated.

type bexpr interface {
	render(depth int) string
}

// bstr is a single-quoted string literal.
type bstr string

// braw is an expression emitted verbatim (references, numbers, booleans).
type braw string

func bint(n int) braw   { return braw(strconv.Itoa(n)) }
func bbool(b bool) braw { return braw(strconv.FormatBool(b)) }

// bprop is an object member. A member with Resource set is a nested child
// resource declaration instead of a key/value pair.
type bprop struct {
	Key      string
	Val      bexpr
	Comment  string
	Resource *bresource
}

type bobj []bprop

type barr []bexpr

// bcommented prefixes an array item with a line comment.
type bcommented struct {
	Comment string
	Val     bexpr
}

// bfor is a loop expression: [for v in items: body].
type bfor struct {
	Var   string
	Items bexpr
	Body  bexpr
}

type bresource struct {
	Symbol string
	Type   string
	Body   bexpr
}

func (s bstr) render(int) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "${", `\${`)
	return "'" + r.Replace(string(s)) + "'"
}

func (r braw) render(int) string { return string(r) }

func (o bobj) render(depth int) string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, p := range o {
		if p.Resource != nil {
			if i > 0 {
				sb.WriteString("\n")
			}
			if p.Comment != "" {
				sb.WriteString(pad(depth+1) + "// " + commentText(p.Comment) + "\n")
			}
			sb.WriteString(pad(depth+1) + p.Resource.render(depth+1) + "\n")
			continue
		}
		if p.Comment != "" {
			sb.WriteString(pad(depth+1) + "// " + commentText(p.Comment) + "\n")
		}
		sb.WriteString(pad(depth+1) + p.Key + ": " + p.Val.render(depth+1) + "\n")
	}
	sb.WriteString(pad(depth) + "}")
	return sb.String()
}

func (a barr) render(depth int) string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteString("[\n")
	for _, item := range a {
		sb.WriteString(pad(depth+1) + item.render(depth+1) + "\n")
	}
	sb.WriteString(pad(depth) + "]")
	return sb.String()
}

func (c bcommented) render(depth int) string {
	return "// " + commentText(c.Comment) + "\n" + pad(depth) + c.Val.render(depth)
}

func (f bfor) render(depth int) string {
	return fmt.Sprintf("[for %s in %s: %s]", f.Var, f.Items.render(depth), f.Body.render(depth))
}

func (r *bresource) render(depth int) string {
	return fmt.Sprintf("resource %s '%s' = %s", r.Symbol, r.Type, r.Body.render(depth))
}

// bicepFile accumulates top-level statements.
type bicepFile struct {
	sb strings.Builder
}

func (f *bicepFile) comment(text string) {
	f.sb.WriteString("// " + commentText(text) + "\n")
}

func (f *bicepFile) param(name, typ, description string, def bexpr) {
	fmt.Fprintf(&f.sb, "@description(%s)\nparam %s %s = %s\n", bstr(description).render(0), name, typ, def.render(0))
}

func (f *bicepFile) resource(r *bresource) {
	f.sb.WriteString(r.render(0) + "\n")
}

func (f *bicepFile) output(name, typ, expr string) {
	fmt.Fprintf(&f.sb, "output %s %s = %s\n", name, typ, expr)
}

func (f *bicepFile) blank() {
	f.sb.WriteString("\n")
}

func (f *bicepFile) String() string {
	return f.sb.String()
}

func pad(depth int) string {
	return strings.Repeat("  ", depth)
}
