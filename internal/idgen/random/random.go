package random

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const maxReferenceLength = 32

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) SessionID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	return id.String(), nil
}

// Reference returns an uppercase base36 token of the given length. It is not
// checked for uniqueness.
func (g *Generator) Reference(_ context.Context, length int) (string, error) {
	if length <= 0 || length > maxReferenceLength {
		return "", fmt.Errorf("reference length %d out of range: %w", length, ErrLength)
	}

	var b strings.Builder

	for b.Len() < length {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate reference: %w", err)
		}

		b.WriteString(new(big.Int).SetBytes(id[:]).Text(36)) //nolint:gomnd
	}

	return strings.ToUpper(b.String()[:length]), nil
}
