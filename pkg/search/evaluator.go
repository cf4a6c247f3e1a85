package search

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jmespath/go-jmespath"
)

// Evaluator wraps JMESPath expression evaluation with a compiled-expression cache.
type Evaluator struct {
	cache map[string]*jmespath.JMESPath
	mu    sync.RWMutex
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: make(map[string]*jmespath.JMESPath),
	}
}

var defaultEvaluator = NewEvaluator()

// FindTypedBlock returns field of the first block whose "type" equals
// wantedType, or nil when blocks is empty, absent or has no such block.
func FindTypedBlock(blocks any, wantedType, field string) any {
	return defaultEvaluator.FindTypedBlock(blocks, wantedType, field)
}

func (e *Evaluator) FindTypedBlock(blocks any, wantedType, field string) any {
	if blocks == nil {
		return nil
	}

	expression := fmt.Sprintf("[?type == %s] | [0].%s", rawString(wantedType), strconv.Quote(field))
	result, err := e.Evaluate(expression, blocks)
	if err != nil {
		return nil
	}
	return result
}

// Evaluate evaluates a JMESPath expression against data
func (e *Evaluator) Evaluate(expression string, data any) (any, error) {
	compiled, err := e.getOrCompile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	result, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate expression %q: %w", expression, err)
	}

	return result, nil
}

func (e *Evaluator) getOrCompile(expression string) (*jmespath.JMESPath, error) {
	e.mu.RLock()
	if compiled, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return compiled, nil
	}
	e.mu.RUnlock()

	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = compiled
	e.mu.Unlock()

	return compiled, nil
}

// rawString renders s as a JMESPath raw string literal.
func rawString(s string) string {
	return "'" + strings.ReplaceAll(s, `'`, `\'`) + "'"
}
