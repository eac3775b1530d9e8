package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/devsynth/internal/service"
)

// FormatTemplateList renders registry templates inside a bordered box.
func FormatTemplateList(templates []service.TemplateInfo) string {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			Bold(t.ID),
			KindBadge(t.Kind),
			string(t.Category),
			Count(t.Combinations),
		})
	}
	return RenderBox("Templates", RenderTable([]string{"ID", "KIND", "CATEGORY", "COMBINATIONS"}, rows))
}

// FormatTemplate renders one template with its slot pools.
func FormatTemplate(t *service.TemplateInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold(t.ID), KindBadge(t.Kind), Dim(string(t.Category)))
	fmt.Fprintf(&b, "  %s  %s\n", Dim("PATTERN"), t.Pattern)
	fmt.Fprintf(&b, "  %s  %s\n", Dim("VARIANT"), t.Variant)
	fmt.Fprintf(&b, "  %s  %s\n", Dim("DRAWS  "), Count(t.Combinations))
	if t.ConceptSlot != "" {
		fmt.Fprintf(&b, "  %s  {%s}\n", Dim("CONCEPT"), t.ConceptSlot)
	}

	if len(t.Slots) > 0 {
		names := make([]string, 0, len(t.Slots))
		for name := range t.Slots {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\n" + Header("Slots") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  {%s} %s\n", name, Dim(strings.Join(t.Slots[name], ", ")))
		}
	}
	if len(t.Pairs) > 0 {
		b.WriteString("\n" + Header("Pairs") + "\n")
		for _, p := range t.Pairs {
			fmt.Fprintf(&b, "  %s %s %s\n", p[0], Dim("/"), p[1])
		}
	}
	if len(t.TechPool) > 0 {
		b.WriteString("\n" + Header("Tech pool") + "\n")
		b.WriteString("  " + strings.Join(t.TechPool, ", ") + "\n")
	}
	return b.String()
}
