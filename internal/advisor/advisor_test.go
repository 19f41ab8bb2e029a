package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/pkg/anthropic"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 10, OutputTokens: 5},
	}
}

func shuttleDescription() model.SystemDescription {
	return model.SystemDescription{
		SystemType:        model.SystemShuttle,
		ContainerMaterial: model.MaterialCombustible,
	}
}

func TestAdvisor_Narrate(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == "claude-sonnet-4-5-20250929" &&
			req.MaxTokens == 1024 &&
			len(req.Messages) == 1 &&
			req.Messages[0].Role == "user"
	})).Return(textResponse("  Here is your narrated report.  "), nil)

	a := New(client, "claude-sonnet-4-5-20250929", 1024)
	out, err := a.Narrate(context.Background(), shuttleDescription(), "REPORT BODY", model.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Here is your narrated report.", out)
	client.AssertExpectations(t)
}

func TestAdvisor_Narrate_IncludesReportAndClassification(t *testing.T) {
	var captured anthropic.MessageRequest
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(anthropic.MessageRequest)
		}).
		Return(textResponse("ok"), nil)

	a := New(client, "m", 256)
	_, err := a.Narrate(context.Background(), shuttleDescription(), "Table 14 applies.", model.Options{})
	require.NoError(t, err)

	assert.Contains(t, captured.Messages[0].Content, "shuttle-type ASRS")
	assert.Contains(t, captured.Messages[0].Content, "combustible containers")
	assert.Contains(t, captured.Messages[0].Content, "Table 14 applies.")
	assert.Contains(t, captured.System, "fire protection engineer")
}

func TestAdvisor_Narrate_OptionsExtendSystemPrompt(t *testing.T) {
	var captured anthropic.MessageRequest
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(anthropic.MessageRequest)
		}).
		Return(textResponse("ok"), nil)

	a := New(client, "m", 256)
	opts := model.Options{Debug: true, ProfessionalTone: true, IncludeReferences: true}
	_, err := a.Narrate(context.Background(), shuttleDescription(), "r", opts)
	require.NoError(t, err)

	assert.Contains(t, captured.System, "Debug mode enabled")
	assert.Contains(t, captured.System, "professional engineering tone")
	assert.Contains(t, captured.System, "table and figure references")
}

func TestAdvisor_Narrate_APIError(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	a := New(client, "m", 256)
	_, err := a.Narrate(context.Background(), shuttleDescription(), "r", model.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "advisor: narrate")
}

func TestAdvisor_Narrate_EmptyResponse(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("   "), nil)

	a := New(client, "m", 256)
	_, err := a.Narrate(context.Background(), shuttleDescription(), "r", model.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty narration")
}

func TestNew_DefaultsMaxTokens(t *testing.T) {
	var captured anthropic.MessageRequest
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(anthropic.MessageRequest)
		}).
		Return(textResponse("ok"), nil)

	a := New(client, "m", 0)
	_, err := a.Narrate(context.Background(), shuttleDescription(), "r", model.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1024), captured.MaxTokens)
}

func TestConsultationContext(t *testing.T) {
	assert.Empty(t, consultationContext(model.Options{}))

	out := consultationContext(model.Options{Debug: true, IncludeReferences: true})
	assert.Contains(t, out, "Debug mode enabled")
	assert.Contains(t, out, "FM Global 8-34 table and figure references")
	assert.NotContains(t, out, "professional engineering tone")
}
