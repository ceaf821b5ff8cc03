package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wukongd/wukong/pkg/models"
)

// PlanRecord is a routed plan together with its provenance, as stored
// in the index.
type PlanRecord struct {
	Plan      *models.TrackPlan `json:"plan"`
	Task      string            `json:"task"`
	Escalated bool              `json:"escalated"`
	CreatedAt time.Time         `json:"created_at"`
}

// PlanIndex handles plan persistence.
type PlanIndex interface {
	SavePlan(rec *PlanRecord) error
	GetPlan(id string) (*PlanRecord, error)
	ListPlans(limit int) ([]PlanRecord, error)
}

// ResultIndex handles task result persistence.
type ResultIndex interface {
	SaveResult(planID string, result models.TaskResult) error
	ListResults(planID string) ([]models.TaskResult, error)
}

// Migrator handles database schema migrations.
type Migrator interface {
	Migrate() error
}

// Index is the full persistence surface the CLI works against.
type Index interface {
	Migrator
	PlanIndex
	ResultIndex
	Close() error
}

// Compile-time verification that DB implements the index interfaces.
var (
	_ Index       = (*DB)(nil)
	_ PlanIndex   = (*DB)(nil)
	_ ResultIndex = (*DB)(nil)
)

// SavePlan stores a routed plan. The phase list is serialized as JSON
// so the schema never chases the plan shape.
func (db *DB) SavePlan(rec *PlanRecord) error {
	if rec == nil || rec.Plan == nil {
		return fmt.Errorf("save plan: nil plan")
	}

	phases, err := json.Marshal(rec.Plan.Phases)
	if err != nil {
		return fmt.Errorf("marshal phases: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	escalated := 0
	if rec.Escalated {
		escalated = 1
	}

	_, err = db.Exec(`
		INSERT INTO plans (id, track, complexity, confidence, reasoning, phases, task, escalated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Plan.ID, string(rec.Plan.Track), string(rec.Plan.Complexity), rec.Plan.Confidence,
		rec.Plan.Reasoning, string(phases), rec.Task, escalated, formatTime(createdAt))
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID. A missing plan returns (nil, nil).
func (db *DB) GetPlan(id string) (*PlanRecord, error) {
	row := db.QueryRow(`
		SELECT id, track, complexity, confidence, reasoning, phases, task, escalated, created_at
		FROM plans WHERE id = ?
	`, id)

	rec, err := scanPlan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return rec, nil
}

// ListPlans returns the most recent plans, newest first. A limit of
// zero or less returns everything.
func (db *DB) ListPlans(limit int) ([]PlanRecord, error) {
	query := `
		SELECT id, track, complexity, confidence, reasoning, phases, task, escalated, created_at
		FROM plans ORDER BY created_at DESC, id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// scanPlan decodes one plans row from any row scanner.
func scanPlan(scan func(dest ...any) error) (*PlanRecord, error) {
	var (
		rec       PlanRecord
		plan      models.TrackPlan
		track     string
		comp      string
		phases    string
		escalated int
		createdAt string
	)
	err := scan(&plan.ID, &track, &comp, &plan.Confidence, &plan.Reasoning,
		&phases, &rec.Task, &escalated, &createdAt)
	if err != nil {
		return nil, err
	}

	plan.Track = models.Track(track)
	plan.Complexity = models.Complexity(comp)
	if err := json.Unmarshal([]byte(phases), &plan.Phases); err != nil {
		return nil, fmt.Errorf("unmarshal phases: %w", err)
	}

	rec.Plan = &plan
	rec.Escalated = escalated != 0
	rec.CreatedAt, _ = parseTime(createdAt)
	return &rec, nil
}

// SaveResult stores a task result under its plan. A repeated task ID
// replaces the earlier row so retries keep a single record per task.
func (db *DB) SaveResult(planID string, result models.TaskResult) error {
	marked, err := json.Marshal(result.MarkedItems)
	if err != nil {
		return fmt.Errorf("marshal marked items: %w", err)
	}

	_, err = db.Exec(`
		INSERT OR REPLACE INTO results (task_id, plan_id, node, status, output, marked_items, evidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.TaskID, planID, string(result.Node), string(result.Status),
		result.Output, string(marked), result.Evidence, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// ListResults returns the results recorded for a plan in insertion
// order.
func (db *DB) ListResults(planID string) ([]models.TaskResult, error) {
	rows, err := db.Query(`
		SELECT task_id, node, status, output, marked_items, evidence
		FROM results WHERE plan_id = ? ORDER BY created_at ASC, task_id ASC
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []models.TaskResult
	for rows.Next() {
		var (
			r      models.TaskResult
			node   string
			status string
			marked string
		)
		if err := rows.Scan(&r.TaskID, &node, &status, &r.Output, &marked, &r.Evidence); err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		r.Node = models.NodeID(node)
		r.Status = models.ResultStatus(status)
		if err := json.Unmarshal([]byte(marked), &r.MarkedItems); err != nil {
			return nil, fmt.Errorf("unmarshal marked items: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
