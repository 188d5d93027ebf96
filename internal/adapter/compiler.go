package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// Loader names accepted in the compilers configuration.
const (
	LoaderJSON = "json"
	LoaderJS   = "js"
	LoaderJSX  = "jsx"
	LoaderTS   = "ts"
	LoaderTSX  = "tsx"
)

var esbuildLoaders = map[string]api.Loader{
	LoaderJS:  api.LoaderJS,
	LoaderJSX: api.LoaderJSX,
	LoaderTS:  api.LoaderTS,
	LoaderTSX: api.LoaderTSX,
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ErrUnknownLoader is returned for a loader name with no compiler behind it.
var ErrUnknownLoader = errors.New("unknown loader")

// CompilerForLoader returns the compiler registered under the given loader name.
func CompilerForLoader(name string) (m.Compiler, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	if name == LoaderJSON {
		return CompileJSON, nil
	}

	loader, ok := esbuildLoaders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownLoader, name, strings.Join(LoaderNames(), ", "))
	}

	return NewEsbuildCompiler(loader), nil
}

// LoaderNames lists the supported loader names, sorted.
func LoaderNames() []string {
	names := []string{LoaderJSON}
	for name := range esbuildLoaders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CompileJSON turns a JSON document into a module assigning it to module.exports.
func CompileJSON(src []byte, filename m.Path) ([]byte, error) {
	src = bytes.TrimPrefix(src, utf8BOM)

	if !json.Valid(src) {
		return nil, fmt.Errorf("%s is not valid JSON", filename)
	}

	out := make([]byte, 0, len(src)+len("module.exports = "))
	out = append(out, "module.exports = "...)

	return append(out, src...), nil
}

// NewEsbuildCompiler returns a compiler that transforms sources with esbuild
// into CommonJS. Imports are converted to require() calls, which the
// rewriter then picks up like any other reference.
func NewEsbuildCompiler(loader api.Loader) m.Compiler {
	return func(src []byte, filename m.Path) ([]byte, error) {
		result := api.Transform(string(src), api.TransformOptions{
			Loader:     loader,
			Format:     api.FormatCommonJS,
			Target:     api.ES2017,
			Sourcefile: string(filename),
			LogLevel:   api.LogLevelSilent,
		})

		if len(result.Errors) > 0 {
			return nil, esbuildError(result.Errors)
		}

		return result.Code, nil
	}
}

func esbuildError(messages []api.Message) error {
	parts := make([]string, 0, len(messages))

	for _, msg := range messages {
		if msg.Location != nil {
			parts = append(parts, fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text))
			continue
		}

		parts = append(parts, msg.Text)
	}

	return errors.New(strings.Join(parts, "; "))
}
