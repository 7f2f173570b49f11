package service

import (
	"context"
	"database/sql"
	"testing"

	"examapi/internal/model"
	repoMocks "examapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubjectService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		subject *model.ExamSubject
		wantErr error
	}{
		{
			name: "happy path with practical",
			subject: &model.ExamSubject{
				Code: "CHM", Name: "Chemistry",
				MaxObjective: 50, MaxEssay: 100, MaxPractical: 40,
				ObjectiveWeight: 30, EssayWeight: 50, PracticalWeight: 20,
				HasPractical: true,
			},
		},
		{
			name: "weights must sum to 100",
			subject: &model.ExamSubject{
				Code: "CHM", Name: "Chemistry",
				MaxObjective: 50, MaxEssay: 100,
				ObjectiveWeight: 30, EssayWeight: 50,
			},
			wantErr: ErrInvalidWeights,
		},
		{
			name: "non-positive maxima",
			subject: &model.ExamSubject{
				Code: "CHM", Name: "Chemistry",
				MaxObjective: 0, MaxEssay: 100,
				ObjectiveWeight: 50, EssayWeight: 50,
			},
			wantErr: ErrInvalidMaxima,
		},
		{
			name: "practical subject needs a practical maximum",
			subject: &model.ExamSubject{
				Code: "CHM", Name: "Chemistry",
				MaxObjective: 50, MaxEssay: 100,
				ObjectiveWeight: 30, EssayWeight: 50, PracticalWeight: 20,
				HasPractical: true,
			},
			wantErr: ErrInvalidMaxima,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockSubjectRepository)
			svc := NewSubjectService(mRepo)

			if tt.wantErr == nil {
				mRepo.On("Create", ctx, mock.MatchedBy(func(s *model.ExamSubject) bool {
					return s.ID != "" && s.Code == tt.subject.Code
				})).Return(tt.subject, nil)
			}

			_, err := svc.Create(ctx, tt.subject)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
		})
	}

	t.Run("theory-only subject has practical zeroed", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubjectRepository)
		svc := NewSubjectService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(s *model.ExamSubject) bool {
			return s.MaxPractical == 0 && s.PracticalWeight == 0
		})).Return(&model.ExamSubject{ID: "sub-1"}, nil)

		// practical fields are set but HasPractical is false
		_, err := svc.Create(ctx, &model.ExamSubject{
			Code: "ENG", Name: "English Language",
			MaxObjective: 60, MaxEssay: 100, MaxPractical: 40,
			ObjectiveWeight: 40, EssayWeight: 60, PracticalWeight: 20,
			HasPractical: false,
		})

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})
}

func TestSubjectService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubjectRepository)
		svc := NewSubjectService(mRepo)

		mRepo.On("FindByID", ctx, "sub-1").Return(&model.ExamSubject{ID: "sub-1"}, nil)

		sub, err := svc.Get(ctx, "sub-1")

		assert.NoError(t, err)
		assert.Equal(t, "sub-1", sub.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubjectRepository)
		svc := NewSubjectService(mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrSubjectNotFound)
	})
}
