package symbols

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Dump writes one row per declared symbol, nested callables indented
// below their parent.
func (t *Table) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tTYPE\tADDRESS\tSCOPE")

	stack := []frame{{ids: t.globals}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.ids) {
			stack = stack[:len(stack)-1]
			continue
		}
		s := t.arena[top.ids[top.pos]]
		top.pos++
		indent := strings.Repeat("  ", s.Level())

		switch v := s.(type) {
		case *Data:
			kind := "var"
			if v.Arg {
				kind = "arg/" + v.Mode.String()
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\n", indent, v.Name(), kind, v.Type, v.Addr, v.Scope())
		case *Callable:
			kind := "function"
			if v.IsProcedure() {
				kind = "procedure"
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%s\t-\t%s\n", indent, v.Name(), kind, v.Return, v.Scope())
			if len(v.Children) > 0 {
				stack = append(stack, frame{ids: v.Children})
			}
		}
	}
	return tw.Flush()
}

// Listing returns Dump's output as a string.
func (t *Table) Listing() string {
	var sb strings.Builder
	if err := t.Dump(&sb); err != nil {
		return fmt.Sprintf("symbols: %v", err)
	}
	return sb.String()
}
