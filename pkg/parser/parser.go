// Package parser is the front door of the library: it loads a codebook
// document from a source, decodes the YAML into the untyped raw tree, runs
// validation, and builds the typed document model. Parsing is one-shot;
// revising a codebook means parsing a new payload.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-codebook/internal/build"
	"github.com/goliatone/go-codebook/pkg/document"
	"github.com/goliatone/go-codebook/pkg/validation"
)

// Result bundles the built document with the advisories collected during its
// validation.
type Result struct {
	Document   *document.Document
	Advisories []validation.Advisory
}

// Option configures a parse.
type Option func(*options)

type options struct {
	fileSystem        fs.FS
	validationOptions []validation.Option
}

// WithFileSystem supplies the fs.FS used to resolve SourceFromFS sources.
func WithFileSystem(files fs.FS) Option {
	return func(opts *options) {
		opts.fileSystem = files
	}
}

// WithValidationOptions forwards options to the validation pass.
func WithValidationOptions(validationOpts ...validation.Option) Option {
	return func(opts *options) {
		opts.validationOptions = append(opts.validationOptions, validationOpts...)
	}
}

// Parse decodes, validates, and builds a codebook from raw YAML.
func Parse(raw []byte, opts ...Option) (Result, error) {
	return ParseSource(SourceFromBytes(raw), opts...)
}

// ParseFile decodes, validates, and builds a codebook from an on-disk file.
func ParseFile(path string, opts ...Option) (Result, error) {
	return ParseSource(SourceFromFile(path), opts...)
}

// ParseSource loads the payload identified by src and runs the full
// raw tree -> validation -> build pipeline.
func ParseSource(src Source, opts ...Option) (Result, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	raw, err := load(src, cfg)
	if err != nil {
		return Result{}, err
	}

	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return Result{}, fmt.Errorf("parser: decode codebook %s: %w", src.Location(), err)
	}

	advisories, err := validation.Validate(tree, cfg.validationOptions...)
	if err != nil {
		return Result{}, fmt.Errorf("parser: invalid codebook %s: %w", src.Location(), err)
	}

	return Result{
		Document:   build.Document(tree),
		Advisories: advisories,
	}, nil
}

func load(src Source, cfg options) ([]byte, error) {
	if src == nil {
		return nil, errors.New("parser: source is required")
	}
	switch s := src.(type) {
	case bytesSource:
		if len(s.raw) == 0 {
			return nil, errors.New("parser: codebook payload is empty")
		}
		return s.raw, nil
	case fileSource:
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("parser: read codebook %s: %w", s.path, err)
		}
		return raw, nil
	case fsSource:
		if cfg.fileSystem == nil {
			return nil, errors.New("parser: fs source requires WithFileSystem")
		}
		raw, err := fs.ReadFile(cfg.fileSystem, s.name)
		if err != nil {
			return nil, fmt.Errorf("parser: read codebook %s: %w", s.name, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("parser: unsupported source kind %q", src.Kind())
	}
}
