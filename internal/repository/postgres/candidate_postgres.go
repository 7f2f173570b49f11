package postgres

import (
	"context"
	"database/sql"

	"examapi/internal/model"
	"examapi/internal/repository"
)

// CandidatePostgres is a PostgreSQL implementation of repository.CandidateRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CandidatePostgres struct {
	db *sql.DB
}

// NewCandidatePostgres creates a new CandidatePostgres repository.
func NewCandidatePostgres(db *sql.DB) *CandidatePostgres {
	return &CandidatePostgres{db: db}
}

var _ repository.CandidateRepository = (*CandidatePostgres)(nil)

const candidateColumns = `id, exam_number, first_name, last_name, date_of_birth, gender, centre_code, photo_path, created_at`

func scanCandidate(row interface{ Scan(...any) error }) (*model.Candidate, error) {
	var c model.Candidate
	var photo sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.ExamNumber,
		&c.FirstName,
		&c.LastName,
		&c.DateOfBirth,
		&c.Gender,
		&c.CentreCode,
		&photo,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.PhotoPath = photo.String
	return &c, nil
}

// Create inserts a new candidate row and returns the stored record.
func (r *CandidatePostgres) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	const q = `
		INSERT INTO candidates (id, exam_number, first_name, last_name, date_of_birth, gender, centre_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + candidateColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.ExamNumber,
		c.FirstName,
		c.LastName,
		c.DateOfBirth,
		c.Gender,
		c.CentreCode,
		c.CreatedAt,
	)
	return scanCandidate(row)
}

// FindByID fetches a single candidate by its ID.
func (r *CandidatePostgres) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	const q = `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRowContext(ctx, q, id))
}

// FindByExamNumber fetches a single candidate by exam number.
func (r *CandidatePostgres) FindByExamNumber(ctx context.Context, examNumber string) (*model.Candidate, error) {
	const q = `SELECT ` + candidateColumns + ` FROM candidates WHERE exam_number = $1`
	return scanCandidate(r.db.QueryRowContext(ctx, q, examNumber))
}

// List returns candidates using LIMIT/OFFSET pagination and a total count.
func (r *CandidatePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Candidate], error) {
	const qCount = `SELECT COUNT(*) FROM candidates`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + candidateColumns + `
		FROM candidates
		ORDER BY exam_number ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Candidate]{Items: items, Total: total}, nil
}

// UpdatePhotoPath sets the stored photo object key for a candidate.
func (r *CandidatePostgres) UpdatePhotoPath(ctx context.Context, id, path string) error {
	const q = `UPDATE candidates SET photo_path = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, path)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a candidate by ID. It does not return an error if the row does not exist.
func (r *CandidatePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM candidates WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
