package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/alexanderramin/devsynth/internal/db"
	"github.com/alexanderramin/devsynth/internal/domain"
)

// SQLiteRunRepo implements RunRepo. Create writes the run and its template
// counts with separate statements; wrap it in a UnitOfWork for atomicity.
type SQLiteRunRepo struct {
	db db.DBTX
}

func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, seed, profile, num_tasks, num_qa, train_count, val_count,
	train_path, val_path, train_sha256, val_sha256, registry_version,
	canned_answers, fallback_answers, created_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.DatasetRun) error {
	query := `INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		seedToString(run.Seed),
		run.Profile,
		run.NumTasks,
		run.NumQA,
		run.TrainCount,
		run.ValCount,
		run.TrainPath,
		run.ValPath,
		run.TrainSHA256,
		run.ValSHA256,
		run.RegistryVersion,
		run.CannedAnswers,
		run.FallbackAnswers,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	ids := make([]string, 0, len(run.TemplateDraws))
	for id, n := range run.TemplateDraws {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO run_templates (run_id, template_id, draws) VALUES (?, ?, ?)`,
			run.ID, id, run.TemplateDraws[id])
		if err != nil {
			return fmt.Errorf("inserting template draws for %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.DatasetRun, error) {
	query := `SELECT ` + runColumns + ` FROM runs
		WHERE id = ? OR id LIKE ? ESCAPE '\'
		ORDER BY (id = ?) DESC, created_at
		LIMIT 2`
	rows, err := r.db.QueryContext(ctx, query, id, escapeLike(id)+"%", id)
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}
	runs, err := r.scanRuns(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(runs) == 0:
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	case len(runs) > 1 && runs[0].ID != id:
		return nil, fmt.Errorf("run %s: %w", id, ErrAmbiguousID)
	}
	run := runs[0]
	if run.TemplateDraws, err = r.templateDraws(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.DatasetRun, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return r.scanRuns(rows)
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRunRepo) templateDraws(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT template_id, draws FROM run_templates WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying template draws: %w", err)
	}
	defer rows.Close()

	draws := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning template draws: %w", err)
		}
		draws[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template draws: %w", err)
	}
	return draws, nil
}

// scanRuns consumes and closes rows.
func (r *SQLiteRunRepo) scanRuns(rows *sql.Rows) ([]*domain.DatasetRun, error) {
	defer rows.Close()

	var runs []*domain.DatasetRun
	for rows.Next() {
		var run domain.DatasetRun
		var seedStr, createdAtStr string
		err := rows.Scan(
			&run.ID,
			&seedStr,
			&run.Profile,
			&run.NumTasks,
			&run.NumQA,
			&run.TrainCount,
			&run.ValCount,
			&run.TrainPath,
			&run.ValPath,
			&run.TrainSHA256,
			&run.ValSHA256,
			&run.RegistryVersion,
			&run.CannedAnswers,
			&run.FallbackAnswers,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.Seed, err = parseSeed(seedStr); err != nil {
			return nil, fmt.Errorf("run %s: parsing seed %q: %w", run.ID, seedStr, err)
		}
		if run.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("run %s: parsing created_at: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
