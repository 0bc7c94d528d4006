// Package treesitter parses whole files with tree-sitter grammars to report
// syntax errors after a file is opened or saved.
package treesitter

import (
	"context"
	"fmt"
	"sync"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"
)

// Result describes one finished check.
type Result struct {
	Path     string
	Language string
	Errors   int
	// FirstErrorLine is 1-based; 0 when the file parsed cleanly.
	FirstErrorLine int
	Err            error
}

// Summary renders the result for the status message line.
func (r Result) Summary() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s check failed: %v", r.Language, r.Err)
	case r.Errors == 0:
		return fmt.Sprintf("%s: no syntax errors", r.Language)
	case r.Errors == 1:
		return fmt.Sprintf("%s: 1 syntax error (line %d)", r.Language, r.FirstErrorLine)
	}
	return fmt.Sprintf("%s: %d syntax errors (first at line %d)", r.Language, r.Errors, r.FirstErrorLine)
}

type checkRequest struct {
	path     string
	language string
	text     []byte
}

// Engine runs checks on a background goroutine and reports them on
// Events. Language names are the ones used for the status bar file type.
type Engine struct {
	parsers map[string]*sitter.Parser
	timeout time.Duration
	reqCh   chan checkRequest
	events  chan Result
	stopCh  chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

func New(timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Engine{
		parsers: make(map[string]*sitter.Parser),
		timeout: timeout,
		reqCh:   make(chan checkRequest, 4),
		events:  make(chan Result, 8),
		stopCh:  make(chan struct{}),
	}
}

func grammar(language string) *sitter.Language {
	switch language {
	case "Go":
		return golang.GetLanguage()
	case "C":
		return c.GetLanguage()
	case "C++":
		return cpp.GetLanguage()
	case "Python":
		return python.GetLanguage()
	case "Shell":
		return bash.GetLanguage()
	case "YAML":
		return yaml.GetLanguage()
	case "TOML":
		return toml.GetLanguage()
	}
	return nil
}

// Supports reports whether a grammar is available for language.
func Supports(language string) bool {
	return grammar(language) != nil
}

func (e *Engine) Start() error {
	go e.loop()
	return nil
}

func (e *Engine) Stop() error {
	e.once.Do(func() { close(e.stopCh) })
	return nil
}

func (e *Engine) Events() <-chan Result {
	return e.events
}

// Check queues text for a background check. Unsupported languages and
// requests arriving while the queue is full are dropped.
func (e *Engine) Check(path, language string, text []byte) bool {
	if !Supports(language) {
		return false
	}
	select {
	case e.reqCh <- checkRequest{path: path, language: language, text: text}:
		return true
	default:
		return false
	}
}

func (e *Engine) loop() {
	for {
		select {
		case <-e.stopCh:
			return
		case req := <-e.reqCh:
			res, ok := e.CheckSync(context.Background(), req.path, req.language, req.text)
			if !ok {
				continue
			}
			select {
			case e.events <- res:
			default:
			}
		}
	}
}

// CheckSync parses text and counts ERROR and MISSING nodes. ok is false
// when the language has no grammar.
func (e *Engine) CheckSync(ctx context.Context, path, language string, text []byte) (Result, bool) {
	lang := grammar(language)
	if lang == nil {
		return Result{}, false
	}
	res := Result{Path: path, Language: language}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.mu.Lock()
	parser := e.parsers[language]
	if parser == nil {
		parser = sitter.NewParser()
		parser.SetLanguage(lang)
		e.parsers[language] = parser
	}
	tree, err := parser.ParseCtx(ctx, nil, text)
	e.mu.Unlock()
	if err != nil {
		res.Err = err
		return res, true
	}
	defer tree.Close()
	countErrors(tree.RootNode(), &res)
	return res, true
}

func countErrors(n *sitter.Node, res *Result) {
	if n == nil || !n.HasError() && !n.IsMissing() {
		return
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		res.Errors++
		line := int(n.StartPoint().Row) + 1
		if res.FirstErrorLine == 0 || line < res.FirstErrorLine {
			res.FirstErrorLine = line
		}
		if n.IsMissing() {
			return
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		countErrors(n.Child(i), res)
	}
}
