package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/generation"
	tmpl "github.com/alexanderramin/devsynth/internal/template"
)

type templateService struct {
	templatesFile string
	profile       generation.Profile
}

// NewTemplateService reads templates from templatesFile, or the builtin
// registry when it is empty. profile shapes sampled task records.
func NewTemplateService(templatesFile string, profile generation.Profile) TemplateService {
	return &templateService{templatesFile: templatesFile, profile: profile}
}

func (s *templateService) List(ctx context.Context) ([]TemplateInfo, error) {
	reg, err := tmpl.Load(s.templatesFile)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	all := append(append([]tmpl.Template(nil), reg.TaskTemplates()...), reg.QATemplates()...)
	infos := make([]TemplateInfo, 0, len(all))
	for _, t := range all {
		infos = append(infos, describe(reg, t))
	}
	return infos, nil
}

func (s *templateService) Get(ctx context.Context, id string) (*TemplateInfo, error) {
	reg, t, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	info := describe(reg, t)
	return &info, nil
}

func (s *templateService) Sample(ctx context.Context, id string, n int, seed uint64) ([]domain.GeneratedExample, error) {
	if n < 1 {
		return nil, fmt.Errorf("sample count must be at least 1, got %d", n)
	}
	reg, t, err := s.resolve(id)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(generation.ResolveSeed(seed), 0))
	synth := generation.NewTaskSynthesizer(s.profile, reg)
	out := make([]domain.GeneratedExample, 0, n)
	for i := 0; i < n; i++ {
		exp := reg.Expand(t, rng)
		ex := domain.GeneratedExample{Instruction: exp.Instruction, Kind: t.Kind}
		if t.Kind == domain.KindTaskCreation {
			ex.Output, err = generation.Render(synth.MakeTask(exp.Instruction, t.Category, rng))
			if err != nil {
				return nil, err
			}
		} else {
			ex.Output = generation.Answer(exp.Instruction, exp.Concept)
		}
		out = append(out, ex)
	}
	return out, nil
}

func (s *templateService) resolve(id string) (*tmpl.Registry, tmpl.Template, error) {
	reg, err := tmpl.Load(s.templatesFile)
	if err != nil {
		return nil, tmpl.Template{}, err
	}
	t, ok := reg.Template(id)
	if !ok {
		return nil, tmpl.Template{}, fmt.Errorf("template %q not found", id)
	}
	return reg, t, nil
}

func describe(reg *tmpl.Registry, t tmpl.Template) TemplateInfo {
	info := TemplateInfo{
		ID:           t.ID,
		Kind:         t.Kind,
		Category:     t.Category,
		Pattern:      t.Pattern,
		Variant:      string(t.Variant),
		Slots:        t.Slots,
		ConceptSlot:  t.ConceptSlot,
		Combinations: t.Combinations(reg),
	}
	for _, p := range t.Pairs {
		info.Pairs = append(info.Pairs, [2]string{p.A, p.B})
	}
	if t.UsesTech() {
		info.TechPool = reg.TechPool(t.Category)
	}
	return info
}
