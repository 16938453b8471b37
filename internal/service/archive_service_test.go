package service

import (
	"context"
	"design_hub_backend/internal/config"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archiveConfigFor(endpoint string) config.ArchiveConfig {
	return config.ArchiveConfig{
		Endpoint:       endpoint,
		ExportTimeout:  200 * time.Millisecond,
		ArchiveTimeout: 200 * time.Millisecond,
	}
}

func TestArchiveUnsetEndpointIsArchiveError(t *testing.T) {
	svc := NewArchiveService(archiveConfigFor(""))

	_, err := svc.Archive(context.Background(), ArchivePayload{StudentName: "Ada"})

	var archiveErr *util.ArchiveError
	assert.ErrorAs(t, err, &archiveErr)
}

func TestArchiveSuccessReturnsFileURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"fileUrls":["https://archive.school/f/9"]}`)
	}))
	defer srv.Close()

	svc := NewArchiveService(archiveConfigFor(srv.URL))
	result, err := svc.Archive(context.Background(), ArchivePayload{StudentName: "Ada"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"https://archive.school/f/9"}, result.FileURLs)
}

func TestArchiveRejectionIsArchiveError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"quota exceeded"}`)
	}))
	defer srv.Close()

	svc := NewArchiveService(archiveConfigFor(srv.URL))
	_, err := svc.Archive(context.Background(), ArchivePayload{StudentName: "Ada"})

	var archiveErr *util.ArchiveError
	assert.ErrorAs(t, err, &archiveErr)
}

func exportChallenge() *model.Challenge {
	return &model.Challenge{
		Domain:      model.LaserCutter,
		Grade:       model.G9,
		Title:       "Acrylic Desk Organizer",
		Description: "Design and cut a desk organizer.",
		Scenario:    "The art room needs storage.",
		Tools:       []string{"Laser cutter"},
		Rubric:      []model.RubricItem{{Criterion: "C.2", Points: 8, Description: "Cut quality"}},
	}
}

func TestExportRewritesEditLinkToCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"docUrl":"https://docs.example.com/document/d/abc/edit?usp=sharing"}`)
	}))
	defer srv.Close()

	svc := NewArchiveService(archiveConfigFor(srv.URL))
	result := svc.ExportDocument(context.Background(), exportChallenge(), "Ada")

	assert.True(t, result.Success)
	assert.False(t, result.IsFallback)
	assert.Equal(t, "https://docs.example.com/document/d/abc/copy", result.DocURL)
}

func TestExportTimeoutFallsBackToLocalRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		fmt.Fprint(w, `{"success":true,"docUrl":"https://docs.example.com/d/late/edit"}`)
	}))
	defer srv.Close()

	svc := NewArchiveService(archiveConfigFor(srv.URL))
	result := svc.ExportDocument(context.Background(), exportChallenge(), "Ada")

	assert.True(t, result.Success)
	assert.True(t, result.IsFallback)
	assert.Empty(t, result.DocURL)
	assert.Contains(t, result.DocHTML, "Acrylic Desk Organizer")
	assert.Contains(t, result.DocHTML, "Ada")
}

func TestExportOfflineFallsBack(t *testing.T) {
	svc := NewArchiveService(archiveConfigFor(""))
	result := svc.ExportDocument(context.Background(), exportChallenge(), "Ada")

	assert.True(t, result.Success)
	assert.True(t, result.IsFallback)
	assert.Contains(t, result.DocHTML, "Cut quality")
}

func TestRenderChallengeBriefHandlesEmptyFields(t *testing.T) {
	challenge := &model.Challenge{Domain: model.Textiles, Grade: model.G6, Title: "Bare"}
	html, err := RenderChallengeBrief(challenge, "Ben")

	require.NoError(t, err)
	assert.Contains(t, html, "No scenario provided.")
	assert.Contains(t, html, "No rubric items.")
	assert.Contains(t, html, "None specified")
}
