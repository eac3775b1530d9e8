package template

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alexanderramin/devsynth/internal/domain"
)

// TechSlot is the placeholder resolved from the template category's
// technology pool when no slot of that name is declared.
const TechSlot = "tech"

// Variant tags how a template binds its placeholders.
type Variant string

const (
	// VariantSlots draws every declared slot independently.
	VariantSlots Variant = "slots"
	// VariantPaired draws one (A, B) tuple and binds both placeholders from it.
	VariantPaired Variant = "paired"
)

// Pair is one correlated value tuple of a paired template.
type Pair struct {
	A string
	B string
}

// Template is a compiled, validated instruction pattern.
type Template struct {
	ID          string
	Kind        domain.ExampleKind
	Category    domain.Category
	Pattern     string
	Variant     Variant
	Slots       map[string][]string
	PairSlots   [2]string
	Pairs       []Pair
	ConceptSlot string

	segs      []segment
	slotOrder []string
	usesTech  bool
}

// Registry is the read-only set of templates and technology pools for a run.
type Registry struct {
	version     string
	techPools   domain.TechPools
	defaultPool []string
	tasks       []Template
	qa          []Template
	byID        map[string]int
}

//go:embed registry.yaml
var builtinRegistry []byte

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Builtin returns the registry compiled from the embedded registry.yaml.
// It is built once per process and shared.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		schema, err := DecodeYAML(builtinRegistry)
		if err != nil {
			builtinErr = fmt.Errorf("builtin registry: %w", err)
			return
		}
		builtin, builtinErr = NewRegistry(schema)
	})
	return builtin, builtinErr
}

// Default is Builtin for callers that cannot handle an error. The embedded
// data is covered by tests, so a panic here means a broken build.
func Default() *Registry {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}

// Load builds a registry from path, or the builtin registry when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Builtin()
	}
	schema, err := LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading registry %s: %w", path, err)
	}
	return NewRegistry(schema)
}

// NewRegistry validates schema and compiles its templates. Any template that
// references a placeholder it cannot bind fails construction.
func NewRegistry(schema *RegistrySchema) (*Registry, error) {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template registry: %w", errors.Join(errs...))
	}

	r := &Registry{
		version:     schema.Version,
		techPools:   make(domain.TechPools, len(schema.TechPools)),
		defaultPool: schema.DefaultTechPool,
		byID:        make(map[string]int),
	}
	if len(r.defaultPool) == 0 {
		r.defaultPool = domain.DefaultTechPool
	}
	for cat, pool := range schema.TechPools {
		r.techPools[domain.Category(cat)] = pool
	}

	for _, tc := range schema.TaskTemplates {
		r.byID[tc.ID] = len(r.tasks)
		r.tasks = append(r.tasks, compile(tc, domain.KindTaskCreation))
	}
	for _, tc := range schema.QATemplates {
		r.byID[tc.ID] = len(r.tasks) + len(r.qa)
		r.qa = append(r.qa, compile(tc, domain.KindTechQA))
	}
	return r, nil
}

// compile assumes tc passed ValidateSchema.
func compile(tc TemplateConfig, kind domain.ExampleKind) Template {
	segs, _ := parsePattern(tc.Pattern)
	t := Template{
		ID:          tc.ID,
		Kind:        kind,
		Category:    domain.Category(tc.Category),
		Pattern:     tc.Pattern,
		Variant:     VariantSlots,
		Slots:       tc.Slots,
		ConceptSlot: tc.ConceptSlot,
		segs:        segs,
	}
	if tc.Pairs != nil {
		t.Variant = VariantPaired
		t.PairSlots = [2]string{tc.Pairs.Placeholders[0], tc.Pairs.Placeholders[1]}
		t.Pairs = make([]Pair, len(tc.Pairs.Values))
		for i, v := range tc.Pairs.Values {
			t.Pairs[i] = Pair{A: v[0], B: v[1]}
		}
	}

	names, _ := Placeholders(tc.Pattern)
	for _, name := range names {
		if _, ok := tc.Slots[name]; ok {
			t.slotOrder = append(t.slotOrder, name)
		} else if name == TechSlot {
			t.usesTech = true
		}
	}
	sort.Strings(t.slotOrder)
	return t
}

// Version returns the registry schema version string.
func (r *Registry) Version() string {
	return r.version
}

// TechPool returns the technology pool of c, falling back to the default
// pool for categories without one.
func (r *Registry) TechPool(c domain.Category) []string {
	return r.techPools.Lookup(c, r.defaultPool)
}

// Template looks a template up by id.
func (r *Registry) Template(id string) (Template, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Template{}, false
	}
	if idx < len(r.tasks) {
		return r.tasks[idx], true
	}
	return r.qa[idx-len(r.tasks)], true
}

// TaskTemplates returns the task_creation templates in declaration order.
func (r *Registry) TaskTemplates() []Template {
	return r.tasks
}

// QATemplates returns the tech_qa templates in declaration order.
func (r *Registry) QATemplates() []Template {
	return r.qa
}

// UsesTech reports whether the pattern draws {tech} from the category pool.
func (t Template) UsesTech() bool {
	return t.usesTech
}

// Combinations is the number of distinct draws t can produce with pools,
// counting repeated slot values as distinct.
func (t Template) Combinations(pools TechPooler) int {
	n := 1
	if t.Variant == VariantPaired {
		n = len(t.Pairs)
	}
	for _, name := range t.slotOrder {
		n *= len(t.Slots[name])
	}
	if t.usesTech {
		n *= len(pools.TechPool(t.Category))
	}
	return n
}
