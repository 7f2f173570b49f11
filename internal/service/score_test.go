package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"examapi/internal/model"
	"examapi/internal/repository"
	repoMocks "examapi/internal/repository/mocks"
	"examapi/internal/scoring"
	"examapi/internal/storage"
	storeMocks "examapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func fp(v float64) *float64 { return &v }

func pageOfScores(items ...model.SubjectScore) *repository.PageResult[model.SubjectScore] {
	return &repository.PageResult[model.SubjectScore]{Items: items, Total: len(items)}
}

func testSubject() *model.ExamSubject {
	return &model.ExamSubject{
		ID:              "sub-1",
		Code:            "CHM",
		Name:            "Chemistry",
		MaxObjective:    50,
		MaxEssay:        100,
		MaxPractical:    40,
		ObjectiveWeight: 30,
		EssayWeight:     50,
		PracticalWeight: 20,
		HasPractical:    true,
	}
}

func TestScoreService_Enter(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path derives total and grade", func(t *testing.T) {
		mScores := new(repoMocks.MockScoreRepository)
		mSubjects := new(repoMocks.MockSubjectRepository)
		mCandidates := new(repoMocks.MockCandidateRepository)
		svc := NewScoreService(nil, mScores, mSubjects, mCandidates, nil)

		mSubjects.On("FindByID", ctx, "sub-1").Return(testSubject(), nil)
		mCandidates.On("FindByExamNumber", ctx, "4250101001").Return(&model.Candidate{ID: "c1"}, nil)
		mScores.On("Upsert", ctx, mock.MatchedBy(func(sc *model.SubjectScore) bool {
			// 40/50*30 + 70/100*50 + 30/40*20 = 24 + 35 + 15
			return sc.Total == 74 && sc.Grade == "B2" && sc.Valid
		})).Return(&model.SubjectScore{ID: "stored", Total: 74, Grade: "B2", Valid: true}, nil)

		stored, issues, err := svc.Enter(ctx, "sub-1", "4250101001", fp(40), fp(70), fp(30))

		assert.NoError(t, err)
		assert.Empty(t, issues)
		assert.Equal(t, "stored", stored.ID)
		mScores.AssertExpectations(t)
		mSubjects.AssertExpectations(t)
		mCandidates.AssertExpectations(t)
	})

	t.Run("missing component stored invalid with issues", func(t *testing.T) {
		mScores := new(repoMocks.MockScoreRepository)
		mSubjects := new(repoMocks.MockSubjectRepository)
		mCandidates := new(repoMocks.MockCandidateRepository)
		svc := NewScoreService(nil, mScores, mSubjects, mCandidates, nil)

		mSubjects.On("FindByID", ctx, "sub-1").Return(testSubject(), nil)
		mCandidates.On("FindByExamNumber", ctx, "4250101001").Return(&model.Candidate{ID: "c1"}, nil)
		mScores.On("Upsert", ctx, mock.MatchedBy(func(sc *model.SubjectScore) bool {
			return !sc.Valid && sc.Grade == ""
		})).Return(&model.SubjectScore{ID: "stored", Valid: false}, nil)

		_, issues, err := svc.Enter(ctx, "sub-1", "4250101001", fp(40), nil, fp(30))

		assert.NoError(t, err)
		assert.Len(t, issues, 1)
		assert.Equal(t, scoring.IssueMissingScore, issues[0].Kind)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		mScores := new(repoMocks.MockScoreRepository)
		mSubjects := new(repoMocks.MockSubjectRepository)
		mCandidates := new(repoMocks.MockCandidateRepository)
		svc := NewScoreService(nil, mScores, mSubjects, mCandidates, nil)

		mSubjects.On("FindByID", ctx, "sub-1").Return(testSubject(), nil)
		mCandidates.On("FindByExamNumber", ctx, "nobody").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Enter(ctx, "sub-1", "nobody", fp(40), fp(70), fp(30))

		assert.ErrorIs(t, err, ErrCandidateNotFound)
	})

	t.Run("unknown subject", func(t *testing.T) {
		mScores := new(repoMocks.MockScoreRepository)
		mSubjects := new(repoMocks.MockSubjectRepository)
		mCandidates := new(repoMocks.MockCandidateRepository)
		svc := NewScoreService(nil, mScores, mSubjects, mCandidates, nil)

		mSubjects.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Enter(ctx, "missing", "4250101001", fp(40), fp(70), fp(30))

		assert.ErrorIs(t, err, ErrSubjectNotFound)
	})
}

func TestScoreService_UploadSheet(t *testing.T) {
	ctx := context.Background()

	sheet := strings.Join([]string{
		"exam_number,objective,essay,practical",
		"4250101001,40,70,30",
		"4250101002,40,70,30",
		"4250101003,999,70,30",
	}, "\n")

	mScores := new(repoMocks.MockScoreRepository)
	mSubjects := new(repoMocks.MockSubjectRepository)
	mCandidates := new(repoMocks.MockCandidateRepository)
	mStore := new(storeMocks.MockStorage)
	svc := NewScoreService(mStore, mScores, mSubjects, mCandidates, nil)

	mSubjects.On("FindByID", ctx, "sub-1").Return(testSubject(), nil)
	mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "scoresheets/CHM-") && strings.HasSuffix(key, ".csv")
	}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)

	mCandidates.On("FindByExamNumber", ctx, "4250101001").Return(&model.Candidate{ID: "c1"}, nil)
	mCandidates.On("FindByExamNumber", ctx, "4250101002").Return(nil, sql.ErrNoRows)
	mCandidates.On("FindByExamNumber", ctx, "4250101003").Return(&model.Candidate{ID: "c3"}, nil)

	mScores.On("Upsert", ctx, mock.MatchedBy(func(sc *model.SubjectScore) bool {
		return sc.ExamNumber == "4250101001" && sc.Total == 74
	})).Return(&model.SubjectScore{ID: "stored"}, nil)

	res, err := svc.UploadSheet(ctx, "sub-1", strings.NewReader(sheet), "chm.csv", int64(len(sheet)))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 2, res.Rejected)
	assert.Len(t, res.Issues, 2)
	assert.Equal(t, scoring.IssueUnknownCandidate, res.Issues[0].Kind)
	assert.Equal(t, scoring.IssueOutOfRange, res.Issues[1].Kind)
	assert.True(t, strings.HasPrefix(res.SheetPath, "scoresheets/CHM-"))

	mScores.AssertExpectations(t)
	mStore.AssertExpectations(t)
	mCandidates.AssertExpectations(t)
}

func TestScoreService_Issues(t *testing.T) {
	ctx := context.Background()

	mScores := new(repoMocks.MockScoreRepository)
	mSubjects := new(repoMocks.MockSubjectRepository)
	svc := NewScoreService(nil, mScores, mSubjects, nil, nil)

	mSubjects.On("FindByID", ctx, "sub-1").Return(testSubject(), nil)
	mScores.On("ListBySubject", ctx, "sub-1", mock.Anything).
		Return(pageOfScores(
			model.SubjectScore{ExamNumber: "4250101001", RawObjective: fp(40), RawEssay: fp(70), RawPractical: fp(30), Valid: true},
			model.SubjectScore{ExamNumber: "4250101002", RawObjective: fp(40), RawPractical: fp(30), Valid: false},
		), nil)

	issues, err := svc.Issues(ctx, "sub-1")

	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, "4250101002", issues[0].ExamNumber)
	assert.Equal(t, scoring.IssueMissingScore, issues[0].Kind)
	assert.Equal(t, "essay", issues[0].Component)
}
