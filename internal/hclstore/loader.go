// Package hclstore reads the HCL definition store from disk and translates
// it into the format-agnostic definition model. Any HCL diagnostic or
// malformed record is a fatal load error; semantic problems (duplicates,
// dangling references) are left for the validators so that one load surfaces
// the complete picture.
package hclstore

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/toolhub/internal/ctxlog"
	"github.com/vk/toolhub/internal/definition"
	"github.com/vk/toolhub/internal/fsutil"
	"github.com/vk/toolhub/internal/schema"
)

// Loader reads .hcl definition files from one or more root paths.
type Loader struct{}

// NewLoader returns a Loader for the HCL definition store format.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks every root path for .hcl files, decodes each one and returns a
// fresh definition set in deterministic file order. It never mutates any
// previously returned set.
func (l *Loader) Load(ctx context.Context, paths ...string) (*definition.Set, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, root := range paths {
		found, err := fsutil.FindFilesByExtension(root, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk definition store path %s: %w", root, err)
		}
		filePaths = append(filePaths, found...)
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl definition files found.", "paths", paths)
	}

	set := &definition.Set{}
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse definition file %s: %w", filePath, diags)
		}

		var file schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
			return nil, fmt.Errorf("malformed definition record in %s: %w", filePath, diags)
		}

		if err := l.translateFile(set, &file, filePath); err != nil {
			return nil, err
		}
		logger.Debug("Loaded definitions from file.", "file", filePath)
	}

	logger.Info("Definition store loaded.",
		"methods", len(set.Methods), "tools", len(set.Tools), "patterns", len(set.Patterns))
	return set, nil
}
