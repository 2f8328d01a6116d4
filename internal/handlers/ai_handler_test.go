package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findmyvakeel/backend/internal/models"
	"findmyvakeel/backend/internal/services"
)

type fakeAnalyzer struct {
	analysis *services.AIAnalysis
	err      error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, rawText string) (*services.AIAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type fakeAssistant struct {
	reply       string
	lastHistory []models.ChatMessage
	lastContext models.CaseContext
}

func (f *fakeAssistant) Respond(ctx context.Context, history []models.ChatMessage, caseCtx models.CaseContext) string {
	f.lastHistory = history
	f.lastContext = caseCtx
	return f.reply
}

func newAITestApp(analyzer services.ProblemAnalyzer, assistant services.CaseAssistant) *fiber.App {
	app := fiber.New()
	h := NewAIHandler(analyzer, assistant)
	app.Post("/ai/process", h.HandleProcess)
	app.Post("/ai/chat", h.HandleChat)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]json.RawMessage) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestHandleProcess_Success(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &services.AIAnalysis{
		ProcessedProblem:    "Deposit dispute with landlord.",
		Category:            "real-estate",
		Urgency:             "medium",
		KeyFacts:            []string{"deposit withheld"},
		SuggestedActions:    []string{"send written notice"},
		EstimatedComplexity: "simple",
	}}
	app := newAITestApp(analyzer, &fakeAssistant{})

	status, body := postJSON(t, app, "/ai/process", fiber.Map{
		"problem": "My landlord refuses to return my security deposit after I moved out",
	})
	require.Equal(t, fiber.StatusOK, status)

	var analysis services.AIAnalysis
	require.NoError(t, json.Unmarshal(body["analysis"], &analysis))
	assert.Equal(t, "real-estate", analysis.Category)
	assert.Equal(t, "Deposit dispute with landlord.", analysis.ProcessedProblem)
}

func TestHandleProcess_AnalyzerFailureReturnsFallback(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("upstream unavailable")}
	app := newAITestApp(analyzer, &fakeAssistant{})

	problem := "My landlord refuses to return my security deposit after I moved out"
	status, body := postJSON(t, app, "/ai/process", fiber.Map{"problem": problem})
	require.Equal(t, fiber.StatusOK, status)

	var analysis services.AIAnalysis
	require.NoError(t, json.Unmarshal(body["analysis"], &analysis))
	assert.Equal(t, problem, analysis.ProcessedProblem)
	assert.Equal(t, "other", analysis.Category)
	assert.Equal(t, "medium", analysis.Urgency)
}

func TestHandleProcess_ValidationFailure(t *testing.T) {
	app := newAITestApp(&fakeAnalyzer{}, &fakeAssistant{})

	status, body := postJSON(t, app, "/ai/process", fiber.Map{"problem": "short"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body["error"]), "Validation failed")
}

func TestHandleChat_Success(t *testing.T) {
	assistant := &fakeAssistant{reply: "You can issue a legal notice under the rent act."}
	app := newAITestApp(&fakeAnalyzer{}, assistant)

	status, body := postJSON(t, app, "/ai/chat", fiber.Map{
		"messages": []fiber.Map{
			{"role": "user", "content": "What can I do about my deposit?"},
		},
		"caseContext": fiber.Map{
			"problem":  "Deposit withheld",
			"category": "real-estate",
			"urgency":  "medium",
		},
	})
	require.Equal(t, fiber.StatusOK, status)

	var reply string
	require.NoError(t, json.Unmarshal(body["response"], &reply))
	assert.Equal(t, "You can issue a legal notice under the rent act.", reply)
	assert.Equal(t, "real-estate", assistant.lastContext.Category)
	require.Len(t, assistant.lastHistory, 1)
}

func TestHandleChat_MissingContextDefaultsToEmpty(t *testing.T) {
	assistant := &fakeAssistant{reply: "Hello."}
	app := newAITestApp(&fakeAnalyzer{}, assistant)

	status, _ := postJSON(t, app, "/ai/chat", fiber.Map{
		"messages": []fiber.Map{{"role": "user", "content": "Hi"}},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.CaseContext{}, assistant.lastContext)
}

func TestHandleChat_InvalidRoleRejected(t *testing.T) {
	app := newAITestApp(&fakeAnalyzer{}, &fakeAssistant{})

	status, _ := postJSON(t, app, "/ai/chat", fiber.Map{
		"messages": []fiber.Map{{"role": "moderator", "content": "Hi"}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleChat_EmptyHistoryRejected(t *testing.T) {
	app := newAITestApp(&fakeAnalyzer{}, &fakeAssistant{})

	status, _ := postJSON(t, app, "/ai/chat", fiber.Map{
		"messages": []fiber.Map{},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
