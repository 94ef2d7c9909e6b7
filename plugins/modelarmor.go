package plugins

import (
	"context"
	"fmt"
	"strings"

	modelarmor "cloud.google.com/go/modelarmor/apiv1"
	"cloud.google.com/go/modelarmor/apiv1/modelarmorpb"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// ModelArmorSafetyFilter sanitizes user prompts, tool outputs and model
// responses through the Model Armor API. Sanitization failures propagate as
// ordinary errors.
type ModelArmorSafetyFilter struct {
	client   *modelarmor.Client
	template string
}

// NewModelArmorSafetyFilter connects to the regional Model Armor endpoint
// for the configured location and template.
func NewModelArmorSafetyFilter(ctx context.Context, cfg *config.Config) (*ModelArmorSafetyFilter, error) {
	client, err := modelarmor.NewClient(ctx,
		option.WithEndpoint(fmt.Sprintf("modelarmor.%s.rep.googleapis.com:443", cfg.Location)))
	if err != nil {
		return nil, fmt.Errorf("create model armor client: %w", err)
	}
	return &ModelArmorSafetyFilter{
		client: client,
		template: fmt.Sprintf("projects/%s/locations/%s/templates/%s",
			cfg.ProjectID, cfg.Location, cfg.ModelArmorTemplateID),
	}, nil
}

func (m *ModelArmorSafetyFilter) PluginName() string { return "ModelArmorPlugin" }

func (m *ModelArmorSafetyFilter) Close() error { return m.client.Close() }

func (m *ModelArmorSafetyFilter) sanitizeUserPrompt(ctx context.Context, text string) ([]string, error) {
	resp, err := m.client.SanitizeUserPrompt(ctx, &modelarmorpb.SanitizeUserPromptRequest{
		Name: m.template,
		UserPromptData: &modelarmorpb.DataItem{
			DataItem: &modelarmorpb.DataItem_Text{Text: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sanitize user prompt: %w", err)
	}
	return ParseSanitizationResult(resp.GetSanitizationResult()), nil
}

func (m *ModelArmorSafetyFilter) sanitizeModelResponse(ctx context.Context, text string) ([]string, error) {
	resp, err := m.client.SanitizeModelResponse(ctx, &modelarmorpb.SanitizeModelResponseRequest{
		Name: m.template,
		ModelResponseData: &modelarmorpb.DataItem{
			DataItem: &modelarmorpb.DataItem_Text{Text: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sanitize model response: %w", err)
	}
	return ParseSanitizationResult(resp.GetSanitizationResult()), nil
}

// OnUserMessage flags unsafe prompts in session state and substitutes the
// message with the removal notice and the detected filter names.
func (m *ModelArmorSafetyFilter) OnUserMessage(ctx context.Context, inv *core.Invocation, msg *genai.Content) (*genai.Content, error) {
	detected, err := m.sanitizeUserPrompt(ctx, firstPartText(msg))
	if err != nil {
		return nil, err
	}
	if len(detected) == 0 {
		return nil, nil
	}
	inv.Session.State.Set(promptSafeKey, false)
	return core.TextContent(genai.RoleUser, fmt.Sprintf(
		"%s. The reasons are because it included %s.",
		UserPromptRemovedMessage, strings.Join(detected, ", "))), nil
}

func (m *ModelArmorSafetyFilter) BeforeRun(ctx context.Context, inv *core.Invocation) (*genai.Content, error) {
	return consumePromptSafeFlag(inv)
}

func (m *ModelArmorSafetyFilter) BeforeTool(ctx context.Context, inv *core.Invocation, tool *core.Tool, args map[string]any) (map[string]any, error) {
	return nil, nil
}

// AfterTool runs tool output through the user-prompt sanitizer; tool output
// re-enters the prompt, so the same template applies.
func (m *ModelArmorSafetyFilter) AfterTool(ctx context.Context, inv *core.Invocation, tool *core.Tool, args map[string]any, result map[string]any) (map[string]any, error) {
	detected, err := m.sanitizeUserPrompt(ctx, fmt.Sprintf("%v", result))
	if err != nil {
		return nil, err
	}
	if len(detected) == 0 {
		return nil, nil
	}
	return map[string]any{"error": fmt.Sprintf(
		"%s. The reasons are because it included %s.",
		UnsafeToolOutputMessage, strings.Join(detected, ", "))}, nil
}

func (m *ModelArmorSafetyFilter) AfterModel(ctx context.Context, inv *core.Invocation, resp *genai.GenerateContentResponse) (*genai.Content, error) {
	output := responseText(resp)
	if output == "" {
		return nil, nil
	}
	detected, err := m.sanitizeModelResponse(ctx, output)
	if err != nil {
		return nil, err
	}
	if len(detected) == 0 {
		return nil, nil
	}
	return core.TextContent(genai.RoleModel, ModelResponseRemovedMessage), nil
}

// ParseSanitizationResult flattens a Model Armor sanitization result into
// the list of detected filter names. An empty list means no match.
func ParseSanitizationResult(result *modelarmorpb.SanitizationResult) []string {
	if result == nil || result.GetFilterMatchState() != modelarmorpb.FilterMatchState_MATCH_FOUND {
		return nil
	}
	var detected []string
	filters := result.GetFilterResults()

	if csam := filters["csam"].GetCsamFilterFilterResult(); csam.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
		detected = append(detected, "CSAM")
	}
	if uri := filters["malicious_uris"].GetMaliciousUriFilterResult(); uri.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
		detected = append(detected, "Malicious URIs")
	}
	if rai := filters["rai"].GetRaiFilterResult(); rai.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
		for name, typeResult := range rai.GetRaiFilterTypeResults() {
			if typeResult.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
				detected = append(detected, name)
			}
		}
	}
	if pi := filters["pi_and_jailbreak"].GetPiAndJailbreakFilterResult(); pi.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
		detected = append(detected, "Prompt Injection and Jailbreaking")
	}
	if sdp := filters["sdp"].GetSdpFilterResult(); sdp != nil {
		detected = append(detected, parseSdpResult(sdp)...)
	}
	return detected
}

func parseSdpResult(sdp *modelarmorpb.SdpFilterResult) []string {
	var detected []string
	if inspect := sdp.GetInspectResult(); inspect.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
		for _, finding := range inspect.GetFindings() {
			detected = append(detected, formatInfoType(finding.GetInfoType()))
		}
	}
	if deid := sdp.GetDeidentifyResult(); deid.GetMatchState() == modelarmorpb.FilterMatchState_MATCH_FOUND {
		for _, infoType := range deid.GetInfoTypes() {
			detected = append(detected, formatInfoType(infoType))
		}
	}
	return detected
}

// formatInfoType turns an SDP info type like US_SOCIAL_SECURITY_NUMBER into
// a readable label.
func formatInfoType(infoType string) string {
	s := strings.ToLower(strings.ReplaceAll(infoType, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
