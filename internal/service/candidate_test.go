package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"examapi/internal/model"
	"examapi/internal/repository"
	repoMocks "examapi/internal/repository/mocks"
	"examapi/internal/storage"
	storeMocks "examapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCandidateService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		candidate  *model.Candidate
		setupMocks func(mRepo *repoMocks.MockCandidateRepository)
		wantErr    error
	}{
		{
			name:      "happy path",
			candidate: &model.Candidate{ExamNumber: "4250101001", FirstName: "Ada", LastName: "Obi"},
			setupMocks: func(mRepo *repoMocks.MockCandidateRepository) {
				mRepo.On("FindByExamNumber", ctx, "4250101001").Return(nil, sql.ErrNoRows)
				mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Candidate) bool {
					return c.ID != "" && c.ExamNumber == "4250101001" && !c.CreatedAt.IsZero()
				})).Return(&model.Candidate{ID: "gen-id", ExamNumber: "4250101001"}, nil)
			},
		},
		{
			name:       "validation - empty exam number",
			candidate:  &model.Candidate{},
			setupMocks: func(mRepo *repoMocks.MockCandidateRepository) {},
			wantErr:    ErrExamNumberRequired,
		},
		{
			name:      "duplicate exam number",
			candidate: &model.Candidate{ExamNumber: "4250101001"},
			setupMocks: func(mRepo *repoMocks.MockCandidateRepository) {
				mRepo.On("FindByExamNumber", ctx, "4250101001").Return(&model.Candidate{ID: "existing"}, nil)
			},
			wantErr: ErrDuplicateExamNumber,
		},
		{
			name:      "lookup error surfaces",
			candidate: &model.Candidate{ExamNumber: "4250101001"},
			setupMocks: func(mRepo *repoMocks.MockCandidateRepository) {
				mRepo.On("FindByExamNumber", ctx, "4250101001").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCandidateRepository)
			svc := NewCandidateService(nil, mRepo)

			tt.setupMocks(mRepo)

			stored, err := svc.Register(ctx, tt.candidate)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrExamNumberRequired) || errors.Is(tt.wantErr, ErrDuplicateExamNumber) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, stored)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, stored)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCandidateService_UploadPhoto(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockCandidateRepository) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			id:   "cand-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockCandidateRepository) io.Reader {
				r := strings.NewReader("jpegbytes")
				mRepo.On("FindByID", ctx, "cand-id").
					Return(&model.Candidate{ID: "cand-id", ExamNumber: "4250101001"}, nil)
				mStore.On("Put", ctx, "candidates/4250101001.jpg", r, mock.Anything).
					Return(storageObjectInfo("candidates/4250101001.jpg"), nil)
				mRepo.On("UpdatePhotoPath", ctx, "cand-id", "candidates/4250101001.jpg").Return(nil)
				return r
			},
		},
		{
			name: "validation error - nil reader",
			id:   "cand-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockCandidateRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name: "candidate not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockCandidateRepository) io.Reader {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
				return strings.NewReader("jpegbytes")
			},
			wantErr: ErrCandidateNotFound,
		},
		{
			name: "record failure rolls back the object",
			id:   "cand-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockCandidateRepository) io.Reader {
				r := strings.NewReader("jpegbytes")
				mRepo.On("FindByID", ctx, "cand-id").
					Return(&model.Candidate{ID: "cand-id", ExamNumber: "4250101001"}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storageObjectInfo("candidates/4250101001.jpg"), nil)
				mRepo.On("UpdatePhotoPath", ctx, "cand-id", mock.Anything).Return(errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "photo record failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockCandidateRepository)
			svc := NewCandidateService(mStore, mRepo)

			r := tt.setupMocks(mStore, mRepo)

			c, err := svc.UploadPhoto(ctx, tt.id, r, "passport.jpg", "image/jpeg", 9)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, c)
				assert.Equal(t, "candidates/4250101001.jpg", c.PhotoPath)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCandidateService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes photo then record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockCandidateRepository)
		svc := NewCandidateService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "cand-id").
			Return(&model.Candidate{ID: "cand-id", PhotoPath: "candidates/x.jpg"}, nil)
		mStore.On("Delete", ctx, "candidates/x.jpg").Return(nil)
		mRepo.On("Delete", ctx, "cand-id").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "cand-id"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("no photo skips storage", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockCandidateRepository)
		svc := NewCandidateService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "cand-id").Return(&model.Candidate{ID: "cand-id"}, nil)
		mRepo.On("Delete", ctx, "cand-id").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "cand-id"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockCandidateRepository)
		svc := NewCandidateService(nil, mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrCandidateNotFound)
		mRepo.AssertExpectations(t)
	})
}

func TestCandidateService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCandidateRepository)
	svc := NewCandidateService(nil, mRepo)

	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Candidate]{
			Items: []model.Candidate{{ID: "1"}, {ID: "2"}},
			Total: 2,
		}, nil)

	// zero limit and negative offset fall back to defaults
	res, err := svc.List(ctx, 0, -1)

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Total)
	mRepo.AssertExpectations(t)
}

func storageObjectInfo(key string) storage.ObjectInfo {
	return storage.ObjectInfo{Key: key}
}
