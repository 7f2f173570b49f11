package postgres

import (
	"context"
	"database/sql"

	"examapi/internal/model"
	"examapi/internal/repository"
)

// ScorePostgres is a PostgreSQL implementation of repository.ScoreRepository.
type ScorePostgres struct {
	db *sql.DB
}

// NewScorePostgres creates a new ScorePostgres repository.
func NewScorePostgres(db *sql.DB) *ScorePostgres {
	return &ScorePostgres{db: db}
}

var _ repository.ScoreRepository = (*ScorePostgres)(nil)

const scoreColumns = `id, subject_id, exam_number, raw_objective, raw_essay, raw_practical, norm_objective, norm_essay, norm_practical, total, grade, valid, updated_at`

func scanScore(row interface{ Scan(...any) error }) (*model.SubjectScore, error) {
	var sc model.SubjectScore
	if err := row.Scan(
		&sc.ID,
		&sc.SubjectID,
		&sc.ExamNumber,
		&sc.RawObjective,
		&sc.RawEssay,
		&sc.RawPractical,
		&sc.NormObjective,
		&sc.NormEssay,
		&sc.NormPractical,
		&sc.Total,
		&sc.Grade,
		&sc.Valid,
		&sc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Upsert inserts or replaces the score row for (subject, exam number).
func (r *ScorePostgres) Upsert(ctx context.Context, sc *model.SubjectScore) (*model.SubjectScore, error) {
	const q = `
		INSERT INTO subject_scores (id, subject_id, exam_number, raw_objective, raw_essay, raw_practical, norm_objective, norm_essay, norm_practical, total, grade, valid, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (subject_id, exam_number) DO UPDATE SET
			raw_objective  = EXCLUDED.raw_objective,
			raw_essay      = EXCLUDED.raw_essay,
			raw_practical  = EXCLUDED.raw_practical,
			norm_objective = EXCLUDED.norm_objective,
			norm_essay     = EXCLUDED.norm_essay,
			norm_practical = EXCLUDED.norm_practical,
			total          = EXCLUDED.total,
			grade          = EXCLUDED.grade,
			valid          = EXCLUDED.valid,
			updated_at     = EXCLUDED.updated_at
		RETURNING ` + scoreColumns
	row := r.db.QueryRowContext(ctx, q,
		sc.ID,
		sc.SubjectID,
		sc.ExamNumber,
		sc.RawObjective,
		sc.RawEssay,
		sc.RawPractical,
		sc.NormObjective,
		sc.NormEssay,
		sc.NormPractical,
		sc.Total,
		sc.Grade,
		sc.Valid,
		sc.UpdatedAt,
	)
	return scanScore(row)
}

// FindBySubjectAndExamNumber fetches one candidate's score in a subject.
func (r *ScorePostgres) FindBySubjectAndExamNumber(ctx context.Context, subjectID, examNumber string) (*model.SubjectScore, error) {
	const q = `SELECT ` + scoreColumns + ` FROM subject_scores WHERE subject_id = $1 AND exam_number = $2`
	return scanScore(r.db.QueryRowContext(ctx, q, subjectID, examNumber))
}

// ListBySubject returns a subject's scores using LIMIT/OFFSET pagination and a total count.
func (r *ScorePostgres) ListBySubject(ctx context.Context, subjectID string, pq repository.PageQuery) (*repository.PageResult[model.SubjectScore], error) {
	const qCount = `SELECT COUNT(*) FROM subject_scores WHERE subject_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, subjectID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + scoreColumns + `
		FROM subject_scores
		WHERE subject_id = $1
		ORDER BY exam_number ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, subjectID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SubjectScore, 0)
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.SubjectScore]{Items: items, Total: total}, nil
}

// TotalsBySubject returns the weighted totals of all valid scores in a subject.
func (r *ScorePostgres) TotalsBySubject(ctx context.Context, subjectID string) ([]float64, error) {
	const q = `SELECT total FROM subject_scores WHERE subject_id = $1 AND valid ORDER BY total ASC`
	rows, err := r.db.QueryContext(ctx, q, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]float64, 0)
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}
