package conversation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	domainerrors "github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/llm"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/tools"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/weather"
)

// Degraded answers. The chat endpoint always returns some text; model and
// upstream failures never surface as HTTP errors.
const (
	networkApology      = "Sorry, I am having trouble connecting to the network right now."
	emptyAnswerFallback = "I received the data but couldn't generate a response."
)

// phase is a state of the two-pass exchange. The machine makes the "at
// most one tool call per turn" rule structural: there is no edge from
// awaitingSecondResponse back to awaitingToolResult.
type phase int

const (
	phaseAwaitingFirstResponse phase = iota
	phaseAwaitingToolResult
	phaseAwaitingSecondResponse
	phaseDone
)

// Orchestrator drives a chat turn: persist the user message, run the
// two-pass exchange, persist the answer, and conditionally retitle the
// session.
type Orchestrator struct {
	llmClient llm.Client
	sessions  docdb.SessionsCollection
	messages  docdb.MessagesCollection
	users     docdb.UsersCollection
	resolver  tools.Resolver
	weather   weather.Service

	chatModel       string
	titleModel      string
	temperature     float64
	maxOutputTokens int

	logger zerolog.Logger
}

// OrchestratorConfig holds the dependencies for the orchestrator.
type OrchestratorConfig struct {
	LLMClient llm.Client
	Sessions  docdb.SessionsCollection
	Messages  docdb.MessagesCollection
	Users     docdb.UsersCollection
	Resolver  tools.Resolver
	Weather   weather.Service

	ChatModel       string
	TitleModel      string
	Temperature     float64
	MaxOutputTokens int

	Logger zerolog.Logger
}

// NewOrchestrator creates a new conversation orchestrator.
func NewOrchestrator(cfg *OrchestratorConfig) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.LLMClient == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if cfg.Sessions == nil || cfg.Messages == nil || cfg.Users == nil {
		return nil, fmt.Errorf("sessions, messages and users collections are required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("tool resolver is required")
	}
	if cfg.Weather == nil {
		return nil, fmt.Errorf("weather service is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gemini-2.5-flash"
	}
	titleModel := cfg.TitleModel
	if titleModel == "" {
		titleModel = "gemini-2.5-flash-lite"
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxOutputTokens := cfg.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = 200
	}

	return &Orchestrator{
		llmClient:       cfg.LLMClient,
		sessions:        cfg.Sessions,
		messages:        cfg.Messages,
		users:           cfg.Users,
		resolver:        cfg.Resolver,
		weather:         cfg.Weather,
		chatModel:       chatModel,
		titleModel:      titleModel,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		logger:          cfg.Logger,
	}, nil
}

// Respond handles one inbound user message and returns the persisted
// model answer.
func (o *Orchestrator) Respond(ctx context.Context, userID, sessionID, content string) (*models.ChatMessage, error) {
	session, err := o.sessions.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, domainerrors.NewNotFoundError("session", sessionID)
	}

	user, err := o.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domainerrors.NewNotFoundError("user", userID)
	}

	userMessage := models.NewChatMessage(session.ID, models.RoleUser, content)
	if err := o.messages.Add(ctx, userMessage); err != nil {
		return nil, domainerrors.NewInternalError("failed to persist user message", err)
	}

	history, err := o.assembleHistory(ctx, session.ID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load chat history", err)
	}

	answer := o.converse(ctx, history, o.systemInstruction(ctx, user), user)

	modelMessage := models.NewChatMessage(session.ID, models.RoleModel, answer)
	if err := o.messages.Add(ctx, modelMessage); err != nil {
		return nil, domainerrors.NewInternalError("failed to persist model message", err)
	}

	o.maybeUpdateTitle(ctx, session, content)

	return modelMessage, nil
}

// assembleHistory replays the persisted session messages as model turns,
// ordered by creation time.
func (o *Orchestrator) assembleHistory(ctx context.Context, sessionID string) ([]llm.Content, error) {
	persisted, err := o.messages.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Content, 0, len(persisted))
	for _, msg := range persisted {
		history = append(history, llm.NewTextContent(string(msg.Role), msg.Content))
	}
	return history, nil
}

// systemInstruction builds the system prompt, injecting today's weather
// when a fresh snapshot exists. A cache read failure only skips the
// injection.
func (o *Orchestrator) systemInstruction(ctx context.Context, user *models.User) string {
	var today *models.ForecastDay
	if user.HasCoordinates() {
		snap, err := o.weather.Fresh(ctx, user.ID)
		if err != nil {
			o.logger.Warn().Err(err).Str("user_id", user.ID).Msg("weather injection skipped")
		} else if snap != nil && len(snap.Days) > 0 {
			today = &snap.Days[0]
		}
	}
	return BuildSystemInstruction(user, today)
}

// converse runs the two-pass exchange. It always produces an answer:
// model failures degrade to the network apology, an empty final text to
// the fixed fallback. The tool turns are appended to the in-memory
// request only and are never persisted.
func (o *Orchestrator) converse(ctx context.Context, history []llm.Content, systemInstruction string, user *models.User) string {
	req := o.buildRequest(history, systemInstruction)

	var (
		answer      string
		pendingCall *llm.FunctionCall
		modelTurn   *llm.Content
	)

	state := phaseAwaitingFirstResponse
	for state != phaseDone {
		switch state {
		case phaseAwaitingFirstResponse:
			resp, err := o.llmClient.GenerateContent(ctx, o.chatModel, req)
			if err != nil {
				o.logger.Error().Err(err).Msg("first model call failed")
				answer = networkApology
				state = phaseDone
				break
			}
			if call := resp.FunctionCall(); call != nil {
				pendingCall = call
				modelTurn = resp.Content()
				state = phaseAwaitingToolResult
				break
			}
			answer = resp.Text()
			state = phaseDone

		case phaseAwaitingToolResult:
			result := o.resolver.Resolve(ctx, pendingCall, user)
			o.logger.Debug().Str("tool", pendingCall.Name).Str("result", result).Msg("tool resolved")
			req.Contents = append(req.Contents, *modelTurn, llm.NewFunctionResponseContent(pendingCall.Name, result))
			state = phaseAwaitingSecondResponse

		case phaseAwaitingSecondResponse:
			resp, err := o.llmClient.GenerateContent(ctx, o.chatModel, req)
			if err != nil {
				o.logger.Error().Err(err).Msg("second model call failed")
				answer = networkApology
			} else {
				answer = resp.Text()
			}
			state = phaseDone
		}
	}

	if answer == "" {
		answer = emptyAnswerFallback
	}
	return answer
}

// buildRequest assembles the generateContent request with both tool
// declarations. Tool calls are emitted by the model but executed here,
// which is what lets the caching policy apply to every upstream fetch.
func (o *Orchestrator) buildRequest(history []llm.Content, systemInstruction string) *llm.GenerateRequest {
	temperature := o.temperature
	instruction := llm.NewTextContent("", systemInstruction)

	return &llm.GenerateRequest{
		Contents:          history,
		SystemInstruction: &instruction,
		Tools:             []llm.Tool{llm.WeatherTool(), llm.MarketTool()},
		ToolConfig: &llm.ToolConfig{
			FunctionCallingConfig: &llm.FunctionCallingConfig{Mode: "AUTO"},
		},
		GenerationConfig: &llm.GenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: o.maxOutputTokens,
		},
	}
}

// maybeUpdateTitle retitles the session from the triggering user message
// when it still carries a placeholder title. Every failure here is
// swallowed: titling must never fail the chat request.
func (o *Orchestrator) maybeUpdateTitle(ctx context.Context, session *models.ChatSession, userContent string) {
	if !IsPlaceholderTitle(session.Title) {
		return
	}

	prompt := fmt.Sprintf(`Summarize this into a 3-5 word title.
RULES:
1. Do NOT use numbering (e.g., no "1.", no "-").
2. Do NOT use quotes.
3. Just output the raw words.

Query: %s`, userContent)

	resp, err := o.llmClient.GenerateContent(ctx, o.titleModel, &llm.GenerateRequest{
		Contents:         []llm.Content{llm.NewTextContent("user", prompt)},
		GenerationConfig: &llm.GenerationConfig{MaxOutputTokens: 20},
	})
	if err != nil {
		o.logger.Warn().Err(err).Str("session_id", session.ID).Msg("title generation failed, keeping current title")
		return
	}

	title := CleanTitle(resp.Text())
	if title == "" {
		return
	}

	if err := o.sessions.UpdateTitle(ctx, session.ID, title); err != nil {
		o.logger.Warn().Err(err).Str("session_id", session.ID).Msg("title update failed")
		return
	}
	session.Title = title
	o.logger.Info().Str("session_id", session.ID).Str("title", title).Msg("session auto-titled")
}
