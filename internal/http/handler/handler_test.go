package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"examapi/internal/model"
	"examapi/internal/scoring"
	"examapi/internal/service"
	serviceMocks "examapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterCandidate(t *testing.T) {
	mockSvc := new(serviceMocks.MockCandidateService)
	app := fiber.New()
	app.Post("/candidates", RegisterCandidate(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.MatchedBy(func(c *model.Candidate) bool {
			return c.ExamNumber == "4250101001" && c.DateOfBirth.Year() == 2008
		})).Return(&model.Candidate{ID: "c1", ExamNumber: "4250101001"}, nil).Once()

		resp := post(`{"exam_number":"4250101001","first_name":"Ada","last_name":"Obi","date_of_birth":"2008-03-14","gender":"F","centre_code":"425010"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Candidate
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "c1", result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		resp := post(`{"exam_number":"4250101001","first_name":"Ada"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		resp := post(`{"exam_number":"4250101001","first_name":"Ada","last_name":"Obi","date_of_birth":"14/03/2008","centre_code":"425010"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("duplicate exam number", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).
			Return(nil, service.ErrDuplicateExamNumber).Once()

		resp := post(`{"exam_number":"4250101001","first_name":"Ada","last_name":"Obi","date_of_birth":"2008-03-14","centre_code":"425010"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "DUPLICATE_EXAM_NUMBER", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListCandidates(t *testing.T) {
	mockSvc := new(serviceMocks.MockCandidateService)
	app := fiber.New()
	app.Get("/candidates", ListCandidates(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.CandidateListResult{
			Items: []model.Candidate{{ID: uuid.New().String(), ExamNumber: "4250101001"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.CandidateListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestEnterScore(t *testing.T) {
	mockSvc := new(serviceMocks.MockScoreService)
	app := fiber.New()
	app.Put("/subjects/:id/scores/:examNumber", EnterScore(mockSvc))

	subjectID := uuid.New().String()

	put := func(path, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Enter", mock.Anything, subjectID, "4250101001", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.SubjectScore{ID: "s1", Total: 74, Grade: "B2", Valid: true}, nil, nil).Once()

		resp := put("/subjects/"+subjectID+"/scores/4250101001", `{"objective":40,"essay":70,"practical":30}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result enterScoreResponse
		json.NewDecoder(resp.Body).Decode(&result)
		require.NotNil(t, result.Score)
		assert.Equal(t, "B2", result.Score.Grade)
		assert.Empty(t, result.Issues)
		mockSvc.AssertExpectations(t)
	})

	t.Run("stored with issues", func(t *testing.T) {
		issues := []scoring.ValidationIssue{{ExamNumber: "4250101001", Component: "essay", Kind: scoring.IssueMissingScore}}
		mockSvc.On("Enter", mock.Anything, subjectID, "4250101001", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.SubjectScore{ID: "s1", Valid: false}, issues, nil).Once()

		resp := put("/subjects/"+subjectID+"/scores/4250101001", `{"objective":40}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result enterScoreResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Issues, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid subject id", func(t *testing.T) {
		resp := put("/subjects/not-a-uuid/scores/4250101001", `{"objective":40}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		mockSvc.On("Enter", mock.Anything, subjectID, "nobody", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, service.ErrCandidateNotFound).Once()

		resp := put("/subjects/"+subjectID+"/scores/nobody", `{"objective":40}`)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "CANDIDATE_NOT_FOUND", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadScoreSheet(t *testing.T) {
	mockSvc := new(serviceMocks.MockScoreService)
	app := fiber.New()
	app.Post("/subjects/:id/scores/upload", UploadScoreSheet(mockSvc))

	subjectID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("sheet", "chm.csv")
		part.Write([]byte("exam_number,objective,essay,practical\n4250101001,40,70,30\n"))
		writer.Close()

		mockSvc.On("UploadSheet", mock.Anything, subjectID, mock.Anything, "chm.csv", mock.Anything).
			Return(&service.SheetUploadResult{SheetPath: "scoresheets/CHM-x.csv", Accepted: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/subjects/"+subjectID+"/scores/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.SheetUploadResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 1, result.Accepted)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/subjects/"+subjectID+"/scores/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})
}

func TestAnalyzeSubject(t *testing.T) {
	mockSvc := new(serviceMocks.MockScoresAnalysisService)
	app := fiber.New()
	app.Get("/subjects/:id/analysis", AnalyzeSubject(mockSvc))

	subjectID := uuid.New().String()

	t.Run("default method is percentile", func(t *testing.T) {
		dist := &scoring.Distribution{
			Boundaries: &scoring.BoundarySet{Method: scoring.MethodPercentile},
			Summary:    scoring.Summary{N: 10},
		}
		mockSvc.On("Analyze", mock.Anything, subjectID, scoring.MethodPercentile).Return(dist, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/subjects/"+subjectID+"/analysis", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result scoring.Distribution
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 10, result.Summary.N)
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit method", func(t *testing.T) {
		dist := &scoring.Distribution{
			Boundaries: &scoring.BoundarySet{Method: scoring.MethodZScore},
			Summary:    scoring.Summary{N: 10},
		}
		mockSvc.On("Analyze", mock.Anything, subjectID, scoring.MethodZScore).Return(dist, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/subjects/"+subjectID+"/analysis?method=zscore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/subjects/"+subjectID+"/analysis?method=vibes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNKNOWN_METHOD", body.Error.Code)
	})

	t.Run("no scores", func(t *testing.T) {
		mockSvc.On("Analyze", mock.Anything, subjectID, scoring.MethodPercentile).
			Return(nil, service.ErrNoScoresForSubject).Once()

		req := httptest.NewRequest(http.MethodGet, "/subjects/"+subjectID+"/analysis", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NO_SCORES", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestAnalysisImpact(t *testing.T) {
	mockSvc := new(serviceMocks.MockScoresAnalysisService)
	app := fiber.New()
	app.Get("/subjects/:id/analysis/impact", AnalysisImpact(mockSvc))

	subjectID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		imp := &scoring.Impact{BaseMethod: scoring.MethodCriterion, AltMethod: scoring.MethodPercentile, Changed: 7}
		mockSvc.On("Impact", mock.Anything, subjectID, scoring.MethodCriterion, scoring.MethodPercentile).
			Return(imp, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/subjects/"+subjectID+"/analysis/impact?base=criterion&alt=percentile", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result scoring.Impact
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 7, result.Changed)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown alt method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/subjects/"+subjectID+"/analysis/impact?alt=vibes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestConfirmCertificate(t *testing.T) {
	mockSvc := new(serviceMocks.MockCertificateService)
	app := fiber.New()
	app.Get("/certificates/:number/confirm", ConfirmCertificate(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &service.ConfirmationResult{
			Number:      "CERT-2026-ABC",
			Status:      model.CertificateStatusConfirmed,
			DownloadURL: "https://storage.example/signed",
		}
		mockSvc.On("Confirm", mock.Anything, "CERT-2026-ABC").Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/certificates/CERT-2026-ABC/confirm", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ConfirmationResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.CertificateStatusConfirmed, result.Status)
		assert.NotEmpty(t, result.DownloadURL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("revoked", func(t *testing.T) {
		mockSvc.On("Confirm", mock.Anything, "CERT-2026-BAD").
			Return(nil, service.ErrCertificateRevoked).Once()

		req := httptest.NewRequest(http.MethodGet, "/certificates/CERT-2026-BAD/confirm", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusGone, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "CERTIFICATE_REVOKED", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Confirm", mock.Anything, "CERT-2026-NONE").
			Return(nil, service.ErrCertificateNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/certificates/CERT-2026-NONE/confirm", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestAllocateScripts(t *testing.T) {
	mockSvc := new(serviceMocks.MockAllocationService)
	app := fiber.New()
	app.Post("/subjects/:id/allocations", AllocateScripts(mockSvc))

	subjectID := uuid.New().String()

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/subjects/"+subjectID+"/allocations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		allocs := []model.Allocation{
			{ExaminerID: "ex-big", Scripts: 100},
			{ExaminerID: "ex-small", Scripts: 20},
		}
		mockSvc.On("Allocate", mock.Anything, subjectID, 120).Return(allocs, nil).Once()

		resp := post(`{"scripts":120}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		resp := post(`{"scripts":0}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("insufficient examiners", func(t *testing.T) {
		mockSvc.On("Allocate", mock.Anything, subjectID, 5000).
			Return(nil, service.ErrInsufficientExaminers).Once()

		resp := post(`{"scripts":5000}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INSUFFICIENT_EXAMINERS", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, db, Services{
		Candidates:   new(serviceMocks.MockCandidateService),
		Subjects:     new(serviceMocks.MockSubjectService),
		Scores:       new(serviceMocks.MockScoreService),
		Analysis:     new(serviceMocks.MockScoresAnalysisService),
		Allocations:  new(serviceMocks.MockAllocationService),
		Certificates: new(serviceMocks.MockCertificateService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
