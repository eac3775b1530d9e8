package formatter

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/devsynth/internal/dataset"
	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/generation"
	"github.com/alexanderramin/devsynth/internal/service"
)

// ansiPattern matches ANSI escape sequences for stripping before golden comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// goldenTest compares got against testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")
	stripped := stripANSI(got)

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll("testdata", 0o755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(stripped), 0o644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "run with GOLDEN_UPDATE=1 to create %s", goldenPath)
	assert.Equal(t, string(expected), stripped,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

func fixtureRun() *domain.DatasetRun {
	return &domain.DatasetRun{
		ID:              "3f2a9c1e-0000-4000-8000-000000000001",
		Seed:            42,
		Profile:         "standard",
		NumTasks:        2000,
		NumQA:           2000,
		TrainCount:      3600,
		ValCount:        400,
		TrainPath:       "data/dataset/train.jsonl",
		ValPath:         "data/dataset/val.jsonl",
		TrainSHA256:     "abc123",
		ValSHA256:       "def456",
		RegistryVersion: "2",
		CannedAnswers:   312,
		FallbackAnswers: 1688,
		TemplateDraws:   map[string]int{"js_concept": 250, "frontend_component": 250, "devops_docker": 90},
		CreatedAt:       time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestFormatRun_Golden(t *testing.T) {
	goldenTest(t, "run_show", FormatRun(fixtureRun()))
}

func TestFormatRunList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	out := stripANSI(FormatRunList([]*domain.DatasetRun{fixtureRun()}, now))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TRAIN/VAL")
	assert.Contains(t, lines[2], "3f2a9c1e")
	assert.NotContains(t, lines[2], "3f2a9c1e-")
	assert.Contains(t, lines[2], "3 hours ago")
	assert.Contains(t, lines[2], "3,600/400")

	assert.Equal(t, "No runs recorded.\n", stripANSI(FormatRunList(nil, now)))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{Bold("long cell"), "x"}, {"s", "y"}},
	))
	assert.Equal(t, "A          B\n─────────  ─\nlong cell  x\ns          y\n", out)
	assert.Empty(t, RenderTable(nil, nil))
}

func TestSplitBar(t *testing.T) {
	out := stripANSI(SplitBar(90, 10, 20))
	assert.Contains(t, out, "90% train · 10% val")
	assert.Equal(t, 20, strings.Count(out, "█")+strings.Count(out, "░"))

	assert.Contains(t, stripANSI(SplitBar(0, 0, 10)), "0% train · 0% val")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", ShortID("3f2a9c1e-0000"))
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "1.5 MB", Size(1_500_000))
	assert.Equal(t, "0 B", Size(-1))
	assert.Equal(t, "12,345", Count(12345))
	assert.Equal(t, "0123456789ab", Digest("0123456789abcdef"))
	assert.Equal(t, "1.5s", Duration(1500*time.Millisecond))
}

func TestFormatGenerate(t *testing.T) {
	run := fixtureRun()
	res := &service.GenerateResult{
		Run: run,
		Files: &dataset.Files{
			Train: dataset.FileInfo{Path: run.TrainPath, Lines: 3600, Bytes: 2_400_000, SHA256: "0123456789abcdef"},
			Val:   dataset.FileInfo{Path: run.ValPath, Lines: 400, Bytes: 270_000, SHA256: "fedcba9876543210"},
		},
		Stats:    generation.Stats{Tasks: 2000, QA: 2000, CannedAnswers: 312, FallbackAnswers: 1688},
		Duration: 1234 * time.Millisecond,
		Recorded: true,
	}
	out := stripANSI(FormatGenerate(res))

	assert.Contains(t, out, "Generated 2,000 task_creation + 2,000 tech_qa examples")
	assert.Contains(t, out, "seed 42")
	assert.Contains(t, out, "90% train · 10% val")
	assert.Contains(t, out, "2.4 MB")
	assert.Contains(t, out, "0123456789ab")
	assert.Contains(t, out, "312 canned, 1,688 fallback")
	assert.Contains(t, out, "run 3f2a9c1e")

	res.Recorded = false
	assert.NotContains(t, stripANSI(FormatGenerate(res)), "run 3f2a9c1e")
}

func TestFormatVerify(t *testing.T) {
	res := &service.VerifyResult{
		Train: &dataset.Report{Path: "train.jsonl", Lines: 9, Kinds: map[domain.ExampleKind]int{domain.KindTaskCreation: 5, domain.KindTechQA: 4}},
		Val:   &dataset.Report{Path: "val.jsonl", Lines: 1, Kinds: map[domain.ExampleKind]int{domain.KindTechQA: 1}},
	}
	res.SplitOK = true
	out := stripANSI(FormatVerify(res))
	assert.Contains(t, out, "✔ train holds 9 of 10 examples (want 9)")
	assert.NotContains(t, out, "digests")

	res.SplitOK = false
	res.Run = fixtureRun()
	out = stripANSI(FormatVerify(res))
	assert.Contains(t, out, "✖ train holds")
	assert.Contains(t, out, "✖ digests match run 3f2a9c1e")
}

func TestFormatTemplate(t *testing.T) {
	info := &service.TemplateInfo{
		ID:           "js_difference",
		Kind:         domain.KindTechQA,
		Category:     "javascript",
		Pattern:      "What is the difference between {a} and {b} in JavaScript?",
		Variant:      "paired",
		Pairs:        [][2]string{{"let", "const"}, {"==", "==="}},
		Combinations: 2,
	}
	out := stripANSI(FormatTemplate(info))
	assert.Contains(t, out, "js_difference  qa  javascript")
	assert.Contains(t, out, "PAIRS")
	assert.Contains(t, out, "let / const")
	assert.NotContains(t, out, "TECH POOL")

	list := stripANSI(FormatTemplateList([]service.TemplateInfo{*info}))
	assert.Contains(t, list, "TEMPLATES")
	assert.Contains(t, list, "js_difference")
}

func TestFormatSamples(t *testing.T) {
	out := stripANSI(FormatSamples([]domain.GeneratedExample{
		{Kind: domain.KindTechQA, Instruction: "What is X?", Output: "line one\nline two"},
		{Kind: domain.KindTaskCreation, Instruction: "Build Y", Output: "{}"},
	}))
	assert.Equal(t, "#1 qa What is X?\n  line one\n  line two\n\n#2 task Build Y\n  {}\n", out)
}
