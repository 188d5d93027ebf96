// Package shim holds the runtime boilerplate wrapped around a bundle.
//
// The templates are loaded once at start-up and never change; an Emitter
// receives them by value.
package shim

import (
	_ "embed"
	"strconv"
	"strings"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

var (
	//go:embed header.js
	headerTemplate string

	//go:embed footer.js
	footerTemplate string

	//go:embed fileHeader.js
	fileHeaderTemplate string

	//go:embed fileFooter.js
	fileFooterTemplate string
)

// Placeholders understood by the per-file templates.
const (
	placeholderID          = "${id}"
	placeholderPath        = "${path}"
	placeholderPathLiteral = "${pathLiteral}"
)

// Templates is the boilerplate emitted around the bundle and around each file.
type Templates struct {
	Header     string
	Footer     string
	FileHeader string
	FileFooter string
}

// Default returns the embedded runtime templates.
func Default() Templates {
	return Templates{
		Header:     headerTemplate,
		Footer:     footerTemplate,
		FileHeader: fileHeaderTemplate,
		FileFooter: fileFooterTemplate,
	}
}

// WrapFile surrounds code with the per-file header and footer for module id.
func (t Templates) WrapFile(id m.ModuleID, path m.Path, code []byte) []byte {
	header := t.render(t.FileHeader, id, path)
	footer := t.render(t.FileFooter, id, path)

	out := make([]byte, 0, len(header)+len(code)+len(footer))
	out = append(out, header...)
	out = append(out, code...)

	return append(out, footer...)
}

func (t Templates) render(tmpl string, id m.ModuleID, path m.Path) string {
	return strings.NewReplacer(
		placeholderID, strconv.Itoa(int(id)),
		placeholderPathLiteral, strconv.Quote(string(path)),
		placeholderPath, strings.ReplaceAll(string(path), "*/", "*\\/"),
	).Replace(tmpl)
}
