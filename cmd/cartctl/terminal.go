package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"cupstory/pkg/cartview"
)

// terminal is a cartview.Surface printing to a writer.
type terminal struct {
	w io.Writer
}

func (t *terminal) ShowPanel(p cartview.Panel) {
	if p.State != cartview.PanelItems {
		fmt.Fprintln(t.w, p.Placeholder)
	} else {
		tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
		for _, r := range p.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Quantity, r.Subtotal)
		}
		tw.Flush()
	}
	fmt.Fprintf(t.w, "Total: %s\n", p.Total)
}

func (t *terminal) ShowBadge(n int) {
	fmt.Fprintf(t.w, "Items: %d\n", n)
}

func (t *terminal) Notify(msg string) {
	fmt.Fprintln(t.w, msg)
}
