package template

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/devsynth/internal/envelope"
)

// reservedLiterals may not appear in any drawn value: the envelope tags would
// split a turn and braces would read as an unresolved placeholder.
var reservedLiterals = []string{
	envelope.TagSystem,
	envelope.TagUser,
	envelope.TagAssistant,
	envelope.TagEnd,
	"{",
	"}",
}

// reservedIn returns the first reserved literal found in s.
func reservedIn(s string, literals []string) (string, bool) {
	for _, lit := range literals {
		if strings.Contains(s, lit) {
			return lit, true
		}
	}
	return "", false
}

// checkValue reports a blank value or one carrying a reserved literal.
func checkValue(where, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s: value is blank", where)
	}
	if lit, ok := reservedIn(v, reservedLiterals); ok {
		return fmt.Errorf("%s: value %q contains reserved %q", where, v, lit)
	}
	return nil
}

// ValidateSchema checks a RegistrySchema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *RegistrySchema) []error {
	var errs []error

	if len(schema.TaskTemplates) == 0 {
		errs = append(errs, fmt.Errorf("at least one task template is required"))
	}
	if len(schema.QATemplates) == 0 {
		errs = append(errs, fmt.Errorf("at least one qa template is required"))
	}

	for i, v := range schema.DefaultTechPool {
		if err := checkValue(fmt.Sprintf("default_tech_pool[%d]", i), v); err != nil {
			errs = append(errs, err)
		}
	}
	for cat, pool := range schema.TechPools {
		for i, v := range pool {
			if err := checkValue(fmt.Sprintf("tech_pools.%s[%d]", cat, i), v); err != nil {
				errs = append(errs, err)
			}
		}
	}

	ids := map[string]bool{}
	for i, tc := range schema.TaskTemplates {
		errs = append(errs, validateTemplate(fmt.Sprintf("task_templates[%d]", i), tc, ids)...)
	}
	for i, tc := range schema.QATemplates {
		errs = append(errs, validateTemplate(fmt.Sprintf("qa_templates[%d]", i), tc, ids)...)
	}

	return errs
}

func validateTemplate(where string, tc TemplateConfig, ids map[string]bool) []error {
	var errs []error

	if tc.ID == "" {
		errs = append(errs, fmt.Errorf("%s: id is required", where))
	} else if ids[tc.ID] {
		errs = append(errs, fmt.Errorf("%s: duplicate id %q", where, tc.ID))
	}
	ids[tc.ID] = true

	if tc.Category == "" {
		errs = append(errs, fmt.Errorf("%s: category is required", where))
	}
	if tc.Pattern == "" {
		errs = append(errs, fmt.Errorf("%s: pattern is required", where))
		return errs
	}

	// Braces in the pattern are placeholder syntax, checked by Placeholders.
	if lit, ok := reservedIn(tc.Pattern, reservedLiterals[:4]); ok {
		errs = append(errs, fmt.Errorf("%s: pattern contains reserved %q", where, lit))
	}

	names, err := Placeholders(tc.Pattern)
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", where, err))
	}
	used := make(map[string]bool, len(names))
	for _, n := range names {
		used[n] = true
	}

	if tc.Pairs != nil && len(tc.Slots) > 0 {
		errs = append(errs, fmt.Errorf("%s: slots and pairs are mutually exclusive", where))
	}

	bound := map[string]bool{TechSlot: true}
	for name, pool := range tc.Slots {
		bound[name] = true
		if !used[name] {
			errs = append(errs, fmt.Errorf("%s: slot %q is not referenced by the pattern", where, name))
		}
		if len(pool) == 0 {
			errs = append(errs, fmt.Errorf("%s: slot %q has an empty pool", where, name))
		}
		for i, v := range pool {
			if err := checkValue(fmt.Sprintf("%s: slots.%s[%d]", where, name, i), v); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if tc.Pairs != nil {
		p := tc.Pairs
		if len(p.Placeholders) != 2 || p.Placeholders[0] == p.Placeholders[1] {
			errs = append(errs, fmt.Errorf("%s: pairs need exactly two distinct placeholders", where))
		} else {
			for _, name := range p.Placeholders {
				bound[name] = true
				if !used[name] {
					errs = append(errs, fmt.Errorf("%s: pair placeholder %q is not referenced by the pattern", where, name))
				}
			}
		}
		if len(p.Values) == 0 {
			errs = append(errs, fmt.Errorf("%s: pairs have an empty pool", where))
		}
		for j, v := range p.Values {
			if len(v) != 2 {
				errs = append(errs, fmt.Errorf("%s: pairs.values[%d]: expected 2 values, got %d", where, j, len(v)))
			}
			for k, pv := range v {
				if err := checkValue(fmt.Sprintf("%s: pairs.values[%d][%d]", where, j, k), pv); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	for _, n := range names {
		if !bound[n] {
			errs = append(errs, fmt.Errorf("%s: unbound placeholder {%s}", where, n))
		}
	}

	if tc.ConceptSlot != "" {
		if _, ok := tc.Slots[tc.ConceptSlot]; !ok {
			errs = append(errs, fmt.Errorf("%s: concept_slot %q is not a declared slot", where, tc.ConceptSlot))
		}
	}

	return errs
}
