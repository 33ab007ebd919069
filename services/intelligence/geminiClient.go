package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// System instruction handed to the model once per session. The date rules
// matter: the model, not this service, is responsible for turning relative
// expressions into a fully-qualified timestamp.
const systemInstruction = `You are a helpful and friendly chatbot for a meeting room booking management system.
Your primary goal is to help users book meeting rooms.
When a user wants to book a room, like "I want to book a room for 3 people at 5pm tomorrow for 2 hours", you must use the 'bookMeetingRoom' tool.
CRITICAL: You must accurately parse the date.
- Understand "today", "tomorrow", "the day after tomorrow", and specific dates (e.g., "November 20th").
- ALWAYS convert the time to a full ISO 8601 string (e.g., '2025-11-18T17:00:00').
- If the user says "10 AM" and the current time is already past 10 AM, you MUST assume they mean 10 AM TOMORROW, not today.

You must extract:
1.  numberOfPeople (how many attendees)
2.  dateTime (the meeting start, converted to ISO 8601)
3.  durationInHours (meeting length in hours, default 1 when not given)
Always be polite and confirm the booking details with the user.`

func bookMeetingRoomDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        BookingFunctionName,
		Description: "Books a meeting room based on user specifications. Finds an available room first.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"numberOfPeople": {
					Type:        genai.TypeInteger,
					Description: "The number of people attending the meeting.",
				},
				"dateTime": {
					Type:        genai.TypeString,
					Description: "The START date and time of the meeting in ISO 8601 format (e.g., 2025-11-17T14:00:00).",
				},
				"durationInHours": {
					Type:        genai.TypeInteger,
					Description: "Duration of the meeting in hours. Default to 1 if not specified.",
				},
				"roomName": {
					Type:        genai.TypeString,
					Description: "Optional name of the specific room the user wants to book.",
				},
			},
			Required: []string{"numberOfPeople", "dateTime"},
		},
	}
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiClient{client: client, modelName: modelName}
}

// NewSession starts a fresh chat session configured with the system
// instruction and the single declared booking function.
func (g *GeminiClient) NewSession() ConversationSession {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.Tools = []*genai.Tool{
		{FunctionDeclarations: []*genai.FunctionDeclaration{bookMeetingRoomDeclaration()}},
	}
	return &geminiSession{chat: model.StartChat()}
}

type geminiSession struct {
	chat *genai.ChatSession
}

func (s *geminiSession) SendText(ctx context.Context, text string) (*TurnResult, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini send error: %w", err)
	}
	return turnResultFrom(resp), nil
}

func (s *geminiSession) SendFunctionResult(ctx context.Context, name, result string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.FunctionResponse{
		Name:     name,
		Response: map[string]any{"result": result},
	})
	if err != nil {
		return "", fmt.Errorf("gemini function response error: %w", err)
	}
	return turnResultFrom(resp).Text, nil
}

func turnResultFrom(resp *genai.GenerateContentResponse) *TurnResult {
	res := &TurnResult{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return res
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			res.FunctionCalls = append(res.FunctionCalls, FunctionCall{Name: p.Name, Args: p.Args})
		}
	}
	res.Text = sb.String()
	return res
}
