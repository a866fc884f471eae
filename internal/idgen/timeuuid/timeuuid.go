package timeuuid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Generator hands out UUIDv7 identifiers: a millisecond timestamp followed by
// random bits, so ids created in the same instant still differ.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("new uuid v7: %w", err)
	}

	return id.String(), nil
}
