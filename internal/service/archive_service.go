package service

import (
	"bytes"
	"context"
	"design_hub_backend/internal/config"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"design_hub_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ArchiveFile is one uploaded work file, base64-encoded for the archive
// web app.
type ArchiveFile struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Base64 string `json:"base64"`
}

// ArchivePayload is the submission record shipped to the school's archive.
type ArchivePayload struct {
	StudentName    string            `json:"studentName"`
	StudentID      string            `json:"studentId"`
	Grade          model.GradeLevel  `json:"grade"`
	Domain         model.SkillDomain `json:"domain"`
	ChallengeTitle string            `json:"challengeTitle"`
	SubmissionText string            `json:"submissionText"`
	AIFeedback     string            `json:"aiFeedback"`
	ATLSkills      []model.ATLSkill  `json:"atlSkills"`
	Files          []ArchiveFile     `json:"files"`
}

type ArchiveResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	FileURLs []string `json:"fileUrls,omitempty"`
}

// ExportResult is the outcome of a challenge-brief document export.
// IsFallback marks a locally rendered document produced because the
// backend did not answer in time.
type ExportResult struct {
	Success    bool   `json:"success"`
	DocURL     string `json:"docUrl,omitempty"`
	DocHTML    string `json:"docHtml,omitempty"`
	IsFallback bool   `json:"isFallback"`
	Message    string `json:"message,omitempty"`
}

// ArchiveService talks to the submission archive web app. Archival is
// best-effort: callers log failures and keep going. Document export is
// bounded by a timeout and falls back to a locally rendered printable
// brief rather than hanging.
type ArchiveService struct {
	config config.ArchiveConfig
	client *http.Client
}

func NewArchiveService(cfg config.ArchiveConfig) *ArchiveService {
	return &ArchiveService{
		config: cfg,
		client: &http.Client{},
	}
}

// Archive ships a submission payload to the archive endpoint. An unset
// endpoint or any transport failure is returned as an ArchiveError; the
// caller treats it as a warning, never a rollback.
func (s *ArchiveService) Archive(ctx context.Context, payload ArchivePayload) (*ArchiveResult, error) {
	if s.config.Endpoint == "" {
		return nil, &util.ArchiveError{Err: fmt.Errorf("archive endpoint not configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ArchiveTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &util.ArchiveError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, &util.ArchiveError{Err: err}
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &util.ArchiveError{Err: err}
	}
	defer resp.Body.Close()

	var result ArchiveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &util.ArchiveError{Err: fmt.Errorf("invalid archive response: %w", err)}
	}
	if !result.Success {
		return &result, &util.ArchiveError{Err: fmt.Errorf("archive rejected submission: %s", result.Message)}
	}
	return &result, nil
}

type exportRequest struct {
	Action      string             `json:"action"`
	StudentName string             `json:"studentName"`
	Grade       model.GradeLevel   `json:"grade"`
	Domain      model.SkillDomain  `json:"domain"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Scenario    string             `json:"scenario"`
	Rubric      []model.RubricItem `json:"rubric"`
	Tools       []string           `json:"tools"`
}

// ExportDocument asks the archive backend to create a challenge-brief
// document. The call is bounded by the configured export timeout; on any
// failure a printable HTML brief is rendered locally and flagged as the
// fallback.
func (s *ArchiveService) ExportDocument(ctx context.Context, challenge *model.Challenge, studentName string) *ExportResult {
	docURL, err := s.exportRemote(ctx, challenge, studentName)
	if err == nil {
		return &ExportResult{Success: true, DocURL: docURL}
	}

	logger.Log.Warn("document export falling back to local render", zap.Error(err))

	html, renderErr := RenderChallengeBrief(challenge, studentName)
	if renderErr != nil {
		return &ExportResult{Success: false, Message: renderErr.Error()}
	}
	return &ExportResult{
		Success:    true,
		DocHTML:    html,
		IsFallback: true,
		Message:    "Rendered printable document locally.",
	}
}

func (s *ArchiveService) exportRemote(ctx context.Context, challenge *model.Challenge, studentName string) (string, error) {
	if s.config.Endpoint == "" {
		return "", fmt.Errorf("archive endpoint not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ExportTimeout)
	defer cancel()

	body, err := json.Marshal(exportRequest{
		Action:      "CREATE_DOC",
		StudentName: studentName,
		Grade:       challenge.Grade,
		Domain:      challenge.Domain,
		Title:       challenge.Title,
		Description: challenge.Description,
		Scenario:    challenge.Scenario,
		Rubric:      challenge.Rubric,
		Tools:       challenge.Tools,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("archive backend returned status %d", resp.StatusCode)
	}

	var result struct {
		Success bool   `json:"success"`
		DocURL  string `json:"docUrl"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("invalid export response: %w", err)
	}
	if !result.Success || result.DocURL == "" {
		return "", fmt.Errorf("export failed: %s", result.Message)
	}

	// The backend hands out an edit link; students get the copy variant.
	docURL := result.DocURL
	if idx := strings.Index(docURL, "/edit"); idx >= 0 {
		docURL = docURL[:idx] + "/copy"
	} else if idx := strings.Index(docURL, "/view"); idx >= 0 {
		docURL = docURL[:idx] + "/copy"
	}
	return docURL, nil
}

var briefTemplate = template.Must(template.New("brief").Parse(`<html>
<head>
  <title>{{.Challenge.Title}} - Challenge Brief</title>
  <style>
    body { font-family: 'Helvetica', 'Arial', sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 40px auto; padding: 20px; }
    h1 { color: #111; border-bottom: 2px solid #eee; padding-bottom: 10px; }
    h2 { color: #444; margin-top: 30px; font-size: 18px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #eee; padding-bottom: 5px; }
    .meta { color: #666; font-size: 14px; margin-bottom: 30px; }
    .rubric-table { width: 100%; border-collapse: collapse; margin-top: 10px; }
    .rubric-table th, .rubric-table td { border: 1px solid #ddd; padding: 12px; text-align: left; }
    .rubric-table th { background-color: #f9f9f9; }
    .points { font-weight: bold; color: #2563eb; }
    @media print { body { margin: 0; padding: 20px; } }
  </style>
</head>
<body>
  <h1>{{.Challenge.Title}}</h1>
  <div class="meta">
    <strong>Student:</strong> {{.StudentName}} &nbsp;|&nbsp;
    <strong>Grade:</strong> {{.Challenge.Grade}} &nbsp;|&nbsp;
    <strong>Domain:</strong> {{.Challenge.Domain}}
  </div>
  <h2>The Scenario</h2>
  <p>{{if .Challenge.Scenario}}{{.Challenge.Scenario}}{{else}}No scenario provided.{{end}}</p>
  <h2>Instructions</h2>
  <p>{{if .Challenge.Description}}{{.Challenge.Description}}{{else}}No instructions provided.{{end}}</p>
  <h2>Tools Required</h2>
  <ul>
    {{range .Challenge.Tools}}<li>{{.}}</li>{{else}}<li>None specified</li>{{end}}
  </ul>
  <h2>Assessment Rubric</h2>
  <table class="rubric-table">
    <thead>
      <tr><th width="15%">Criterion</th><th>Description</th><th width="10%">Points</th></tr>
    </thead>
    <tbody>
      {{range .Challenge.Rubric}}<tr><td><strong>{{.Criterion}}</strong></td><td>{{.Description}}</td><td class="points">{{.Points}}</td></tr>
      {{else}}<tr><td colspan="3">No rubric items.</td></tr>{{end}}
    </tbody>
  </table>
</body>
</html>`))

// RenderChallengeBrief produces the printable local document used when the
// export backend is unavailable.
func RenderChallengeBrief(challenge *model.Challenge, studentName string) (string, error) {
	var buf bytes.Buffer
	err := briefTemplate.Execute(&buf, struct {
		Challenge   *model.Challenge
		StudentName string
	}{challenge, studentName})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
