package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/devsynth/internal/domain"
)

// FormatRunList renders manifest runs newest first as a table.
func FormatRunList(runs []*domain.DatasetRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No runs recorded.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			ShortID(r.ID),
			Ago(r.CreatedAt, now),
			r.Profile,
			strconv.FormatUint(r.Seed, 10),
			Count(r.NumTasks),
			Count(r.NumQA),
			Count(r.TrainCount) + "/" + Count(r.ValCount),
		})
	}
	return RenderTable([]string{"ID", "CREATED", "PROFILE", "SEED", "TASKS", "QA", "TRAIN/VAL"}, rows)
}

// FormatRun renders one manifest run.
func FormatRun(r *domain.DatasetRun) string {
	var b strings.Builder

	b.WriteString(Header("Run") + "\n")
	field := func(label, value string) {
		fmt.Fprintf(&b, "  %-10s %s\n", label, value)
	}
	field("ID", r.ID)
	field("Created", r.CreatedAt.UTC().Format(time.RFC3339))
	field("Profile", r.Profile)
	field("Seed", strconv.FormatUint(r.Seed, 10))
	field("Registry", r.RegistryVersion)
	field("Requested", fmt.Sprintf("%s tasks, %s qa", Count(r.NumTasks), Count(r.NumQA)))
	field("Answers", fmt.Sprintf("%s canned, %s fallback", Count(r.CannedAnswers), Count(r.FallbackAnswers)))

	b.WriteString("\n" + Header("Files") + "\n")
	b.WriteString(RenderTable(
		[]string{"SPLIT", "LINES", "PATH", "SHA256"},
		[][]string{
			{"train", Count(r.TrainCount), r.TrainPath, r.TrainSHA256},
			{"val", Count(r.ValCount), r.ValPath, r.ValSHA256},
		},
	))

	if len(r.TemplateDraws) > 0 {
		b.WriteString("\n" + Header("Template draws") + "\n")
		b.WriteString(RenderTable([]string{"TEMPLATE", "DRAWS"}, drawRows(r.TemplateDraws)))
	}
	return b.String()
}
