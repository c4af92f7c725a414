package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/socperf/internal/model"
)

// Format is a diagram file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported diagram format %q (expected .json, .yaml, .yml or .cue)", filepath.Ext(path)),
			Path:    path,
		}
	}
}

// LoadDiagram reads a diagram file.
func LoadDiagram(path string) (model.Diagram, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.Diagram{}, err
	}
	data, err := readFile(path)
	if err != nil {
		return model.Diagram{}, err
	}
	d, err := DecodeDiagram(data, format, path)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Path == "" {
			le.Path = path
		}
		return model.Diagram{}, err
	}
	return d, nil
}

// DecodeDiagram parses diagram bytes. filename is used in CUE positions.
func DecodeDiagram(data []byte, format Format, filename string) (model.Diagram, error) {
	var raw []byte
	switch format {
	case FormatJSON:
		raw = data
	case FormatYAML:
		var err error
		if raw, err = yamlToJSON(data); err != nil {
			return model.Diagram{}, err
		}
	case FormatCUE:
		var err error
		if raw, err = cueToJSON(data, filename, "#Diagram"); err != nil {
			return model.Diagram{}, err
		}
	default:
		return model.Diagram{}, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported diagram format %q", format)}
	}

	var d model.Diagram
	if err := json.Unmarshal(raw, &d); err != nil {
		return model.Diagram{}, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding diagram: %v", err)}
	}
	if len(d.Nodes) == 0 {
		return model.Diagram{}, &LoadError{Code: ErrCodeEmpty, Message: "diagram has no nodes"}
	}
	return d, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: "file not found", Path: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading file: %v", err), Path: path}
	}
	return data, nil
}

// yamlToJSON lowers a YAML document to JSON so decoding shares the JSON
// field tags.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeEmpty, Message: "empty YAML document"}
		}
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("converting YAML: %v", err)}
	}
	return raw, nil
}

// cueToJSON compiles CUE source, unifies it with a schema definition,
// checks it is concrete and exports it as JSON.
func cueToJSON(data []byte, filename, definition string) ([]byte, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, cueError(ErrCodeGeneric, "", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, cueError(ErrCodeCompileFailed, filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath(definition)).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(ErrCodeInvalid, filename, err)
	}

	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, cueError(ErrCodeInvalid, filename, err)
	}
	return raw, nil
}
