package adapter

import "context"

// ImageGenerator turns a prompt into the URL of a generated image.
// Implemented by the mock generator on the server and by the HTTP client
// on the gallery side.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
