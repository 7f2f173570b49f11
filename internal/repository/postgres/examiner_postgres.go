package postgres

import (
	"context"
	"database/sql"

	"examapi/internal/model"
	"examapi/internal/repository"
)

// ExaminerPostgres is a PostgreSQL implementation of repository.ExaminerRepository.
type ExaminerPostgres struct {
	db *sql.DB
}

// NewExaminerPostgres creates a new ExaminerPostgres repository.
func NewExaminerPostgres(db *sql.DB) *ExaminerPostgres {
	return &ExaminerPostgres{db: db}
}

var _ repository.ExaminerRepository = (*ExaminerPostgres)(nil)

const examinerColumns = `id, name, specialty, capacity, venue, created_at`

func scanExaminer(row interface{ Scan(...any) error }) (*model.Examiner, error) {
	var e model.Examiner
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Specialty,
		&e.Capacity,
		&e.Venue,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new examiner row and returns the stored record.
func (r *ExaminerPostgres) Create(ctx context.Context, e *model.Examiner) (*model.Examiner, error) {
	const q = `
		INSERT INTO examiners (id, name, specialty, capacity, venue, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + examinerColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.Name,
		e.Specialty,
		e.Capacity,
		e.Venue,
		e.CreatedAt,
	)
	return scanExaminer(row)
}

// List returns examiners using LIMIT/OFFSET pagination and a total count.
func (r *ExaminerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Examiner], error) {
	const qCount = `SELECT COUNT(*) FROM examiners`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + examinerColumns + `
		FROM examiners
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Examiner, 0)
	for rows.Next() {
		e, err := scanExaminer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Examiner]{Items: items, Total: total}, nil
}

// ListBySpecialty returns all examiners for a specialty, largest capacity first.
func (r *ExaminerPostgres) ListBySpecialty(ctx context.Context, specialty string) ([]model.Examiner, error) {
	const q = `
		SELECT ` + examinerColumns + `
		FROM examiners
		WHERE specialty = $1
		ORDER BY capacity DESC, name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Examiner, 0)
	for rows.Next() {
		e, err := scanExaminer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateAllocation inserts one examiner-subject allocation row.
func (r *ExaminerPostgres) CreateAllocation(ctx context.Context, a *model.Allocation) (*model.Allocation, error) {
	const q = `
		INSERT INTO allocations (id, subject_id, examiner_id, scripts, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, subject_id, examiner_id, scripts, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.SubjectID,
		a.ExaminerID,
		a.Scripts,
		a.CreatedAt,
	)
	var out model.Allocation
	if err := row.Scan(
		&out.ID,
		&out.SubjectID,
		&out.ExaminerID,
		&out.Scripts,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAllocationsBySubject returns all allocations for a subject.
func (r *ExaminerPostgres) ListAllocationsBySubject(ctx context.Context, subjectID string) ([]model.Allocation, error) {
	const q = `
		SELECT id, subject_id, examiner_id, scripts, created_at
		FROM allocations
		WHERE subject_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Allocation, 0)
	for rows.Next() {
		var a model.Allocation
		if err := rows.Scan(
			&a.ID,
			&a.SubjectID,
			&a.ExaminerID,
			&a.Scripts,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteAllocationsBySubject removes all allocations for a subject.
func (r *ExaminerPostgres) DeleteAllocationsBySubject(ctx context.Context, subjectID string) error {
	const q = `DELETE FROM allocations WHERE subject_id = $1`
	res, err := r.db.ExecContext(ctx, q, subjectID)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
