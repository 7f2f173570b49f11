package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"examapi/internal/service"
)

// Services bundles the injected service layer for route registration.
type Services struct {
	Candidates   service.CandidateService
	Subjects     service.SubjectService
	Scores       service.ScoreService
	Analysis     service.ScoresAnalysisService
	Allocations  service.AllocationService
	Certificates service.CertificateService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay minimal; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: readiness checks DB connectivity, liveness does not.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Candidate registration
	app.Post("/candidates", RegisterCandidate(svcs.Candidates))
	app.Get("/candidates", ListCandidates(svcs.Candidates))
	app.Get("/candidates/:id", GetCandidate(svcs.Candidates))
	app.Delete("/candidates/:id", DeleteCandidate(svcs.Candidates))
	app.Put("/candidates/:id/photo", UploadCandidatePhoto(svcs.Candidates))

	// Subject configuration
	app.Post("/subjects", CreateSubject(svcs.Subjects))
	app.Get("/subjects", ListSubjects(svcs.Subjects))
	app.Get("/subjects/:id", GetSubject(svcs.Subjects))

	// Score entry
	app.Put("/subjects/:id/scores/:examNumber", EnterScore(svcs.Scores))
	app.Post("/subjects/:id/scores/upload", UploadScoreSheet(svcs.Scores))
	app.Get("/subjects/:id/scores", ListScores(svcs.Scores))
	app.Get("/subjects/:id/scores/issues", ListScoreIssues(svcs.Scores))

	// Grade-boundary analysis
	app.Get("/subjects/:id/analysis", AnalyzeSubject(svcs.Analysis))
	app.Get("/subjects/:id/analysis/impact", AnalysisImpact(svcs.Analysis))

	// Examiner allocation
	app.Post("/examiners", RegisterExaminer(svcs.Allocations))
	app.Get("/examiners", ListExaminers(svcs.Allocations))
	app.Post("/subjects/:id/allocations", AllocateScripts(svcs.Allocations))
	app.Get("/subjects/:id/allocations", ListAllocations(svcs.Allocations))
	app.Delete("/subjects/:id/allocations", Deallocate(svcs.Allocations))

	// Certificate lifecycle
	app.Post("/certificates", IssueCertificate(svcs.Certificates))
	app.Get("/certificates/:number/confirm", ConfirmCertificate(svcs.Certificates))
	app.Post("/certificates/:number/revoke", RevokeCertificate(svcs.Certificates))
}
