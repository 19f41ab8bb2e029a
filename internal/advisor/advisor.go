// Package advisor wraps the deterministic pipeline output in the
// conversational voice of a fire protection engineer. Classification and
// rule lookup stay fully deterministic; the model only rephrases an
// already-computed report and must not alter its technical content.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/pkg/anthropic"
)

const systemPrompt = `You are a professional fire protection engineer specializing in Automated Storage and Retrieval Systems (ASRS) and FM Global 8-34 compliance. Your expertise focuses on sprinkler system design requirements for complex warehouse automation systems.

Your Approach:
- Always begin responses by restating the user's system parameters to confirm understanding
- Reference specific FM Global 8-34 table numbers and sections in your recommendations
- Provide definitive requirements, not suggestions or possibilities
- Use professional engineering language appropriate for design professionals
- Focus on compliance first, then offer optimization suggestions

You will be given a finished requirements report produced by a deterministic rule lookup. Rephrase it conversationally for the engineer who asked. Keep every technical value, table number, and figure reference exactly as given; never invent, change, or omit a requirement.`

// Advisor narrates pipeline reports through Claude.
type Advisor struct {
	client    anthropic.Client
	modelID   string
	maxTokens int64
}

// New creates an Advisor using the given client and model.
func New(client anthropic.Client, modelID string, maxTokens int64) *Advisor {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Advisor{client: client, modelID: modelID, maxTokens: maxTokens}
}

// Narrate asks the model to rephrase a deterministic report. On any API
// failure the caller falls back to the deterministic report.
func (a *Advisor) Narrate(ctx context.Context, desc model.SystemDescription, report string, opts model.Options) (string, error) {
	prompt := systemPrompt
	if extra := consultationContext(opts); extra != "" {
		prompt += "\n\n" + extra
	}

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.modelID,
		MaxTokens: a.maxTokens,
		System:    prompt,
		Messages: []anthropic.Message{{
			Role: "user",
			Content: fmt.Sprintf(
				"System classified as %s-type ASRS (%s containers). Deterministic requirements report follows; rephrase it for the engineer:\n\n%s",
				desc.SystemType, desc.ContainerMaterial, report,
			),
		}},
	})
	if err != nil {
		return "", eris.Wrap(err, "advisor: narrate")
	}
	resp.Usage.LogUsage(a.modelID, "narrate")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.New("advisor: empty narration response")
	}
	return text, nil
}

// consultationContext builds context-aware instructions from the request
// options, mirroring the tone switches of the consultation API.
func consultationContext(opts model.Options) string {
	var parts []string
	if opts.Debug {
		parts = append(parts, "Debug mode enabled - provide detailed reasoning for all lookups and classifications.")
	}
	if opts.ProfessionalTone {
		parts = append(parts, "Maintain professional engineering tone throughout response.")
	}
	if opts.IncludeReferences {
		parts = append(parts, "Always include specific FM Global 8-34 table and figure references.")
	}
	return strings.Join(parts, " ")
}
