package service

import "context"

// AIServiceInterface defines the contract for the copy/art suggestion
// gateway. Implementations must degrade gracefully: editing never blocks
// on the gateway being down.
type AIServiceInterface interface {
	GenerateText(ctx context.Context, task string, payload map[string]string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}
