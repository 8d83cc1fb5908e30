// Package render turns Graphviz DOT source into image files.
//
// Both graph types in this project (shop distance graphs and
// pattern-yarn graphs) serialize themselves to DOT; this package owns
// the shared rendering step via [github.com/goccy/go-graphviz].
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
)

// SVG renders a DOT graph to SVG.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

// WriteFile renders dot and writes the result to path, picking the output
// format from the file extension: .dot saves the source unrendered, .svg
// and .png render via Graphviz. Other extensions are an error.
func WriteFile(ctx context.Context, dot, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		data, err = SVG(ctx, dot)
	case ".png":
		data, err = PNG(ctx, dot)
	default:
		return fmt.Errorf("unsupported output format %q (use .dot, .svg, or .png)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
