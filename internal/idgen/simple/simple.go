package simple

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Generator hands out sequential ids. References are the counter in base 36,
// zero padded to the reference length.
type Generator struct {
	mu      sync.Mutex
	counter int
	prefix  string
}

func New() *Generator {
	//nolint:exhaustruct
	return &Generator{prefix: "session"}
}

func (g *Generator) next() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return g.counter
}

func (g *Generator) SessionID(_ context.Context) (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next()), nil
}

func (g *Generator) Reference(_ context.Context, length int) (string, error) {
	ref := strings.ToUpper(strconv.FormatInt(int64(g.next()), 36))
	if len(ref) > length {
		return ref[len(ref)-length:], nil
	}

	return strings.Repeat("0", length-len(ref)) + ref, nil
}
