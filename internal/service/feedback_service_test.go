package service

import (
	"context"
	"design_hub_backend/internal/config"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer fakes an OpenAI-compatible /chat/completions endpoint that
// always replies with the given message content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		reply := ChatCompletionResponse{}
		reply.Choices = append(reply.Choices, struct {
			Message AIChatMessage `json:"message"`
		}{Message: AIChatMessage{Role: "assistant", Content: content}})
		json.NewEncoder(w).Encode(reply)
	}))
}

func aiClientFor(url string) *AIClient {
	return NewAIClient(config.AIConfig{BaseURL: url, APIKey: "test", Model: "test-model"})
}

func TestAnalyzeParsesReply(t *testing.T) {
	srv := chatServer(t, `{"feedback":"Great joints (C.2). Watch blade depth.","atlSkills":["Self-Management","Thinking"]}`)
	defer srv.Close()

	svc := NewFeedbackService(aiClientFor(srv.URL))
	result, err := svc.Analyze(context.Background(), "Birdhouse", "I built it", "C.2 (8 pts): Craftsmanship")

	require.NoError(t, err)
	assert.Equal(t, "Great joints (C.2). Watch blade depth.", result.Feedback)
	assert.Equal(t, []model.ATLSkill{"Self-Management", "Thinking"}, result.ATLSkills)
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	srv := chatServer(t, "```json\n{\"feedback\":\"ok\",\"atlSkills\":[\"Research\"]}\n```")
	defer srv.Close()

	svc := NewFeedbackService(aiClientFor(srv.URL))
	result, err := svc.Analyze(context.Background(), "t", "s", "r")

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Feedback)
}

func TestAnalyzeTransportFailureIsAnalyzerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewFeedbackService(aiClientFor(srv.URL))
	_, err := svc.Analyze(context.Background(), "t", "s", "r")

	var analyzerErr *util.AnalyzerError
	assert.ErrorAs(t, err, &analyzerErr)
}

func TestAnalyzeMalformedReplyIsAnalyzerError(t *testing.T) {
	srv := chatServer(t, "sorry, I cannot answer in JSON today")
	defer srv.Close()

	svc := NewFeedbackService(aiClientFor(srv.URL))
	_, err := svc.Analyze(context.Background(), "t", "s", "r")

	var analyzerErr *util.AnalyzerError
	assert.ErrorAs(t, err, &analyzerErr)
}

func TestValidateToneVerdicts(t *testing.T) {
	srv := chatServer(t, `{"isConstructive":false,"suggestion":"Name one concrete improvement."}`)
	defer srv.Close()

	svc := NewFeedbackService(aiClientFor(srv.URL))
	verdict := svc.ValidateTone(context.Background(), "this is bad")

	assert.False(t, verdict.IsConstructive)
	assert.Equal(t, "Name one concrete improvement.", verdict.Suggestion)
}

func TestValidateToneFailsOpenOnTransportError(t *testing.T) {
	svc := NewFeedbackService(aiClientFor("http://127.0.0.1:1"))
	verdict := svc.ValidateTone(context.Background(), "whatever")
	assert.True(t, verdict.IsConstructive)
}

func TestValidateToneFailsOpenOnGarbage(t *testing.T) {
	srv := chatServer(t, "not json at all")
	defer srv.Close()

	svc := NewFeedbackService(aiClientFor(srv.URL))
	verdict := svc.ValidateTone(context.Background(), "whatever")
	assert.True(t, verdict.IsConstructive)
}

func TestRubricSummary(t *testing.T) {
	summary := RubricSummary([]model.RubricItem{
		{Criterion: "C.1", Points: 4, Description: "Plan"},
		{Criterion: "C.2", Points: 8, Description: "Build"},
	})
	assert.Equal(t, "C.1 (4 pts): Plan; C.2 (8 pts): Build", summary)
}

func TestGenerateChallengeFallsBackWhenOffline(t *testing.T) {
	svc := NewGeneratorService(aiClientFor(""))

	challenge := svc.GenerateChallenge(context.Background(), model.Robotics, model.G8, model.Hard)

	require.NotNil(t, challenge)
	assert.Equal(t, model.Robotics, challenge.Domain)
	assert.Equal(t, model.G8, challenge.Grade)
	assert.Equal(t, "System offline.", challenge.Scenario)
	assert.Equal(t, "System", challenge.Author)
}

func TestGenerateChallengeParsesReply(t *testing.T) {
	srv := chatServer(t, `{"title":"Line Follower","description":"Build a line-following robot.","scenario":"The warehouse needs a courier.","tools":["Microbit","Motor driver"],"tutorialLinks":["microbit line follower","robot safety basics"],"rubric":[{"criterion":"C.2","points":8,"description":"Wiring quality"}]}`)
	defer srv.Close()

	svc := NewGeneratorService(aiClientFor(srv.URL))
	challenge := svc.GenerateChallenge(context.Background(), model.Robotics, model.G8, "")

	assert.Equal(t, "Line Follower", challenge.Title)
	assert.Equal(t, SubmissionBonusXP, challenge.XPReward)
	require.Len(t, challenge.Rubric, 1)
	assert.Equal(t, "C.2", challenge.Rubric[0].Criterion)
}

func TestGenerateTeamChallengeFallback(t *testing.T) {
	svc := NewGeneratorService(aiClientFor("http://127.0.0.1:1"))

	project := svc.GenerateTeamChallenge(context.Background(), "Sustainable packaging")

	require.NotNil(t, project)
	assert.Equal(t, "Sustainable packaging", project.Theme)
	assert.NotEmpty(t, project.Objectives)
}

func TestGenerateTeamChallengeKeepsRequestedTheme(t *testing.T) {
	srv := chatServer(t, `{"title":"Packaging Rescue","scenario":"Redesign the cafeteria packaging.","objectives":["Audit waste"],"deliverables":["Prototype"],"teamRubric":[],"tutorialLinks":[]}`)
	defer srv.Close()

	svc := NewGeneratorService(aiClientFor(srv.URL))
	project := svc.GenerateTeamChallenge(context.Background(), "Sustainable packaging")

	assert.Equal(t, "Packaging Rescue", project.Title)
	assert.Equal(t, "Sustainable packaging", project.Theme)
}

func TestAIClientRequiresEndpoint(t *testing.T) {
	client := aiClientFor("")
	_, err := client.Complete(context.Background(), "sys", "user")
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for i, tc := range cases {
		assert.Equal(t, tc.want, extractJSON(tc.in), fmt.Sprintf("case %d", i))
	}
}
