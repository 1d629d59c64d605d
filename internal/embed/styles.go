package embed

import (
	"fmt"
	"strings"
)

// stylesheet returns the scoped widget CSS. Every selector is namespaced by
// the parent selector so instances on one page style only their own subtree.
// The main color drives SVG fills for the title and map, the sub color the
// accordion header background. The toggle glyph flips between its two states
// purely on the hidden checkbox's :checked selector.
func stylesheet(parentSelector string, colors Colors) string {
	ps := parentSelector
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] svg, %s [%s] svg path { fill: #%s; }\n", ps, markerTitle, ps, markerTitle, colors.Main)
	fmt.Fprintf(&b, "%s [%s] svg .area { fill: #%s; }\n", ps, markerMap, colors.Main)
	fmt.Fprintf(&b, "%s .clinic-accordion__toggle { display: none; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__header { display: flex; justify-content: space-between; align-items: center; cursor: pointer; padding: 10px 14px; background: #%s; }\n", ps, colors.Sub)
	fmt.Fprintf(&b, "%s .clinic-accordion__body { max-height: 0; overflow: hidden; padding-top: 0; transition: max-height 0.3s ease, padding-top 0.3s ease; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__toggle:checked ~ .clinic-accordion__body { max-height: 100vh; padding-top: 8px; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__icon::before { content: \"+\"; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__toggle:checked ~ .clinic-accordion__header .clinic-accordion__icon::before { content: \"\\2212\"; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__table { width: 100%%; border-collapse: collapse; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__table th { text-align: left; white-space: nowrap; padding-right: 12px; }\n", ps)
	fmt.Fprintf(&b, "%s .clinic-accordion__map { width: 100%%; height: 240px; border: 0; }\n", ps)
	return b.String()
}
