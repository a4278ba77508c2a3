package gen

import (
	"bytes"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
)

// File is one emitted output file.
type File struct {
	// Name is the file name relative to the target directory.
	Name string
	// Content is the rendered Go source.
	Content []byte
}

// Emit merges validated artifacts into one file for the type. Artifacts
// are ordered by the registry's registration order, never by the order
// they arrived in, so identical descriptors emit byte-identical files.
func Emit(pkg, header string, t *load.TypeDescriptor, artifacts []*Artifact, registry *Registry) (*File, error) {
	fp, err := Fingerprint(t)
	if err != nil {
		return nil, &GenerationError{Type: t.Name, Message: "fingerprint", Cause: err}
	}

	ordered := make([]*Artifact, len(artifacts))
	copy(ordered, artifacts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return registry.position(ordered[i].Generator) < registry.position(ordered[j].Generator)
	})

	f := jen.NewFile(pkg)
	f.HeaderComment(header)
	f.HeaderComment("Source: " + t.Name + " sha256:" + fp)
	for _, a := range ordered {
		for _, c := range a.Code {
			f.Add(c)
			f.Line()
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, &GenerationError{Type: t.Name, Message: "render", Cause: err}
	}
	return &File{Name: strings.ToLower(t.Name) + "_gen.go", Content: buf.Bytes()}, nil
}
