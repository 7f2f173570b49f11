package postgres

import (
	"context"
	"database/sql"

	"examapi/internal/model"
	"examapi/internal/repository"
)

// SubjectPostgres is a PostgreSQL implementation of repository.SubjectRepository.
type SubjectPostgres struct {
	db *sql.DB
}

// NewSubjectPostgres creates a new SubjectPostgres repository.
func NewSubjectPostgres(db *sql.DB) *SubjectPostgres {
	return &SubjectPostgres{db: db}
}

var _ repository.SubjectRepository = (*SubjectPostgres)(nil)

const subjectColumns = `id, code, name, max_objective, max_essay, max_practical, objective_weight, essay_weight, practical_weight, has_practical, created_at`

func scanSubject(row interface{ Scan(...any) error }) (*model.ExamSubject, error) {
	var s model.ExamSubject
	if err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.MaxObjective,
		&s.MaxEssay,
		&s.MaxPractical,
		&s.ObjectiveWeight,
		&s.EssayWeight,
		&s.PracticalWeight,
		&s.HasPractical,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new subject configuration row and returns the stored record.
func (r *SubjectPostgres) Create(ctx context.Context, s *model.ExamSubject) (*model.ExamSubject, error) {
	const q = `
		INSERT INTO exam_subjects (id, code, name, max_objective, max_essay, max_practical, objective_weight, essay_weight, practical_weight, has_practical, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + subjectColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.Code,
		s.Name,
		s.MaxObjective,
		s.MaxEssay,
		s.MaxPractical,
		s.ObjectiveWeight,
		s.EssayWeight,
		s.PracticalWeight,
		s.HasPractical,
		s.CreatedAt,
	)
	return scanSubject(row)
}

// FindByID fetches a single subject by its ID.
func (r *SubjectPostgres) FindByID(ctx context.Context, id string) (*model.ExamSubject, error) {
	const q = `SELECT ` + subjectColumns + ` FROM exam_subjects WHERE id = $1`
	return scanSubject(r.db.QueryRowContext(ctx, q, id))
}

// List returns subjects using LIMIT/OFFSET pagination and a total count.
func (r *SubjectPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ExamSubject], error) {
	const qCount = `SELECT COUNT(*) FROM exam_subjects`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + subjectColumns + `
		FROM exam_subjects
		ORDER BY code ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ExamSubject, 0)
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ExamSubject]{Items: items, Total: total}, nil
}
