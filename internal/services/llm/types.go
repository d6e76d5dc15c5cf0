// Package llm provides the Gemini generative-language client.
package llm

// Content is one conversation turn sent to or received from the model.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a fragment of a turn: plain text, a tool-call request emitted by
// the model, or a tool result fed back by the orchestrator.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionCall is the model's request to execute a named tool.
type FunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// FunctionResponse carries a tool result back to the model.
type FunctionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

// Schema describes the shape of a tool parameter object.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// FunctionDeclaration declares one callable tool to the model.
type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Tool groups function declarations for a request.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

// FunctionCallingConfig controls how the model may emit tool calls.
// The model only ever emits the call; execution always happens here.
type FunctionCallingConfig struct {
	Mode string `json:"mode,omitempty"`
}

// ToolConfig wraps the function calling configuration.
type ToolConfig struct {
	FunctionCallingConfig *FunctionCallingConfig `json:"functionCallingConfig,omitempty"`
}

// GenerationConfig holds sampling parameters for a request.
type GenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// GenerateRequest is the generateContent request body.
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
	ToolConfig        *ToolConfig       `json:"toolConfig,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// GenerateResponse is the generateContent response body.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Text returns the concatenated text parts of the first candidate.
func (r *GenerateResponse) Text() string {
	c := r.Content()
	if c == nil {
		return ""
	}
	var text string
	for _, part := range c.Parts {
		text += part.Text
	}
	return text
}

// FunctionCall returns the first tool call of the first candidate, or nil.
func (r *GenerateResponse) FunctionCall() *FunctionCall {
	c := r.Content()
	if c == nil {
		return nil
	}
	for _, part := range c.Parts {
		if part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}

// Content returns the first candidate's content, or nil.
func (r *GenerateResponse) Content() *Content {
	if len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content
}

// NewTextContent builds a single-text-part turn.
func NewTextContent(role, text string) Content {
	return Content{
		Role:  role,
		Parts: []Part{{Text: text}},
	}
}

// NewFunctionResponseContent builds the synthesized tool-result turn.
func NewFunctionResponseContent(name, result string) Content {
	return Content{
		Role: "user",
		Parts: []Part{{
			FunctionResponse: &FunctionResponse{
				Name:     name,
				Response: map[string]interface{}{"result": result},
			},
		}},
	}
}
