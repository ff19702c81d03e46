package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"oferta-studio/service"
)

// AIController handles HTTP requests for copy and art suggestions
type AIController struct {
	aiService service.AIServiceInterface
}

// NewAIController creates a new AIController
func NewAIController(aiService service.AIServiceInterface) *AIController {
	return &AIController{aiService: aiService}
}

// SuggestText handles POST /admin/oferta/ai/text
// Body: {"task": "headline", "payload": {"product": "...", ...}}
func (c *AIController) SuggestText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Task    string            `json:"task"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Task == "" {
		req.Task = "headline"
	}

	text, err := c.aiService.GenerateText(r.Context(), req.Task, req.Payload)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate text: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"text": text}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// SuggestImage handles POST /admin/oferta/ai/image
// Body: {"prompt": "..."}; streams the generated PNG.
func (c *AIController) SuggestImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	data, err := c.aiService.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate image: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}
