package shaders

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed quad.wgsl
var QuadWGSL string

//go:embed overlay.wgsl
var OverlayWGSL string

const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

var ErrInvalidShader = errors.New("invalid shader")

// EntryPoints parses the WGSL source and returns the names of its entry points.
func EntryPoints(source string) ([]string, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrInvalidShader, err)
	}

	module, err := naga.Lower(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: lower: %w", ErrInvalidShader, err)
	}

	names := make([]string, 0, len(module.EntryPoints))
	for _, ep := range module.EntryPoints {
		names = append(names, ep.Name)
	}

	return names, nil
}

// Validate checks that source is valid WGSL and declares both the vertex and the
// fragment entry point the quad pipeline binds to.
func Validate(source string) error {
	names, err := EntryPoints(source)
	if err != nil {
		return err
	}

	for _, required := range []string{VertexEntryPoint, FragmentEntryPoint} {
		found := false
		for _, name := range names {
			if name == required {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("%w: missing entry point %q", ErrInvalidShader, required)
		}
	}

	return nil
}
