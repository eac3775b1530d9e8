package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/devsynth/internal/dataset"
	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/service"
)

const barWidth = 30

// FormatGenerate renders the summary printed after a generate run.
func FormatGenerate(res *service.GenerateResult) string {
	var b strings.Builder
	run := res.Run

	fmt.Fprintf(&b, "%s %s task_creation + %s tech_qa examples\n",
		Bold("Generated"), Count(res.Stats.Tasks), Count(res.Stats.QA))
	fmt.Fprintf(&b, "  %s %d   %s %s   %s %s\n",
		Dim("seed"), run.Seed, Dim("profile"), run.Profile, Dim("took"), Duration(res.Duration))
	b.WriteString("  " + SplitBar(run.TrainCount, run.ValCount, barWidth) + "\n\n")

	b.WriteString(RenderTable(
		[]string{"FILE", "LINES", "SIZE", "SHA256"},
		[][]string{
			fileRow(res.Files.Train),
			fileRow(res.Files.Val),
		},
	))

	fmt.Fprintf(&b, "\n  %s %s canned, %s fallback\n",
		Dim("answers"), Count(res.Stats.CannedAnswers), Count(res.Stats.FallbackAnswers))
	if res.Recorded {
		fmt.Fprintf(&b, "  %s %s\n", Dim("run"), ShortID(run.ID))
	}
	return b.String()
}

func fileRow(f dataset.FileInfo) []string {
	return []string{f.Path, Count(f.Lines), Size(f.Bytes), Digest(f.SHA256)}
}

// FormatVerify renders the result of verify. Every check is listed so a
// failure shows next to what passed.
func FormatVerify(res *service.VerifyResult) string {
	var b strings.Builder

	b.WriteString(Header("Dataset") + "\n")
	b.WriteString(RenderTable(
		[]string{"FILE", "LINES", "TASK", "QA", "SIZE", "SHA256"},
		[][]string{
			reportRow(res.Train),
			reportRow(res.Val),
		},
	))
	b.WriteString("\n")

	b.WriteString("  " + Check(true, "every line is a valid chat envelope") + "\n")
	total := res.Train.Lines + res.Val.Lines
	b.WriteString("  " + Check(res.SplitOK, fmt.Sprintf("train holds %s of %s examples (want %s)",
		Count(res.Train.Lines), Count(total), Count(domain.SplitIndex(total)))) + "\n")
	if res.Run != nil {
		b.WriteString("  " + Check(res.DigestMatch, "digests match run "+ShortID(res.Run.ID)) + "\n")
	}
	return b.String()
}

func reportRow(r *dataset.Report) []string {
	return []string{
		r.Path,
		Count(r.Lines),
		Count(r.Kinds[domain.KindTaskCreation]),
		Count(r.Kinds[domain.KindTechQA]),
		Size(r.Bytes),
		Digest(r.SHA256),
	}
}

// FormatSamples renders sampled examples as instruction/output blocks.
func FormatSamples(examples []domain.GeneratedExample) string {
	var b strings.Builder
	for i, ex := range examples {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s\n", Dim(fmt.Sprintf("#%d", i+1)), KindBadge(ex.Kind), Bold(ex.Instruction))
		for _, line := range strings.Split(ex.Output, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// drawRows lists template draws, most drawn first, ties by id.
func drawRows(draws map[string]int) [][]string {
	ids := make([]string, 0, len(draws))
	for id := range draws {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if draws[ids[i]] != draws[ids[j]] {
			return draws[ids[i]] > draws[ids[j]]
		}
		return ids[i] < ids[j]
	})
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, Count(draws[id])})
	}
	return rows
}
