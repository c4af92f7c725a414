package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/socperf/internal/loader"
	"github.com/roach88/socperf/internal/model"
)

// ValidationError is one problem found in a diagram or config.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Nodes  int               `json:"nodes"`
	Edges  int               `json:"edges"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate <diagram>",
		Short: "Validate a diagram without analyzing it",
		Long: `Load a diagram (and optionally a CUE configuration) and check it for
problems the analysis would silently skip: duplicate node or edge ids,
edges to unknown nodes, and handles naming undeclared interfaces.

Exit codes:
  0 - Diagram valid
  1 - Validation problems found
  2 - Command error (file not found, unsupported format)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], configPath, cmd)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "CUE analysis configuration to validate too")

	return cmd
}

func runValidate(opts *RootOptions, diagramPath, configPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var catalogErrs []ValidationError
	if configPath != "" {
		cfg, err := loader.LoadConfig(configPath)
		if err != nil {
			return loadFailure(formatter, err)
		}
		catalogErrs = CheckCatalog(cfg.Catalog())
		formatter.VerboseLog("Config %s: %d catalog components", configPath, cfg.Catalog().Len())
	}

	d, err := loader.LoadDiagram(diagramPath)
	if err != nil {
		return loadFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %s: %d nodes, %d edges", diagramPath, len(d.Nodes), len(d.Edges))

	result := ValidationResult{
		Valid:  true,
		Nodes:  len(d.Nodes),
		Edges:  len(d.Edges),
		Errors: append(catalogErrs, CheckDiagram(d)...),
	}
	if len(result.Errors) > 0 {
		result.Valid = false
		return outputValidationErrors(formatter, result)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Diagram valid: %d nodes, %d edges\n", result.Nodes, result.Edges)
	return nil
}

// CheckDiagram reports structural problems in a decoded diagram.
func CheckDiagram(d model.Diagram) []ValidationError {
	var errs []ValidationError
	invalid := func(format string, args ...any) {
		errs = append(errs, ValidationError{Code: loader.ErrCodeInvalid, Message: fmt.Sprintf(format, args...)})
	}

	nodes := make(map[string]model.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			invalid("nodes[%d]: id is required", i)
			continue
		}
		if _, dup := nodes[n.ID]; dup {
			invalid("nodes[%d]: duplicate node id %q", i, n.ID)
			continue
		}
		nodes[n.ID] = n
	}

	edges := make(map[string]bool, len(d.Edges))
	for i, e := range d.Edges {
		if e.ID != "" {
			if edges[e.ID] {
				invalid("edges[%d]: duplicate edge id %q", i, e.ID)
			}
			edges[e.ID] = true
		}

		src, srcOK := nodes[e.Source]
		if !srcOK {
			invalid("edges[%d]: unknown source node %q", i, e.Source)
		}
		dst, dstOK := nodes[e.Target]
		if !dstOK {
			invalid("edges[%d]: unknown target node %q", i, e.Target)
		}

		if srcOK && e.SourceHandle != "" && len(src.Data.Interfaces) > 0 {
			if _, ok := src.Data.Interface(e.SourceHandle); !ok {
				invalid("edges[%d]: node %q has no interface %q", i, e.Source, e.SourceHandle)
			}
		}
		if dstOK && e.TargetHandle != "" && len(dst.Data.Interfaces) > 0 {
			if _, ok := dst.Data.Interface(e.TargetHandle); !ok {
				invalid("edges[%d]: node %q has no interface %q", i, e.Target, e.TargetHandle)
			}
		}
	}
	return errs
}

// CheckCatalog reports catalog entries that Lookup could never reach:
// duplicate ids and names that repeat case-insensitively.
func CheckCatalog(c model.Catalog) []ValidationError {
	var errs []ValidationError
	ids := map[string]bool{}
	names := map[string]bool{}
	for i, comp := range c.Components() {
		if ids[comp.ID] {
			errs = append(errs, ValidationError{
				Code:    loader.ErrCodeInvalid,
				Message: fmt.Sprintf("components[%d]: duplicate component id %q", i, comp.ID),
			})
		}
		ids[comp.ID] = true

		name := strings.ToLower(comp.Name)
		if name == "" {
			continue
		}
		if names[name] {
			errs = append(errs, ValidationError{
				Code:    loader.ErrCodeInvalid,
				Message: fmt.Sprintf("components[%d]: duplicate component name %q", i, comp.Name),
			})
		}
		names[name] = true
	}
	return errs
}

// loadFailure reports a loader error. Missing or unsupported files are
// command errors; anything the loader could read is a validation failure.
func loadFailure(formatter *OutputFormatter, err error) error {
	switch code := loader.Code(err); code {
	case loader.ErrCodeNotFound, loader.ErrCodeUnsupported:
		return fail(formatter, code, ExitCommandError, "cannot validate", err)
	}
	return outputValidationErrors(formatter, ValidationResult{Errors: []ValidationError{fromLoadError(err)}})
}

// fromLoadError converts a loader error, keeping its code and position.
func fromLoadError(err error) ValidationError {
	ve := ValidationError{Code: loader.Code(err), Message: err.Error()}
	var le *loader.LoadError
	if errors.As(err, &le) {
		ve.Message = le.Message
		ve.File = le.Path
		if le.Pos.IsValid() {
			ve.File = le.Pos.Filename()
			ve.Line = le.Pos.Line()
			ve.Column = le.Pos.Column()
		}
	}
	return ve
}

// outputValidationErrors outputs validation problems.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	if formatter.Format == "json" {
		if err := formatter.writeJSON(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		switch {
		case err.Line > 0:
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n", err.File, err.Line, err.Column)
		case err.File != "":
			fmt.Fprintf(formatter.Writer, "%s\n", err.File)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
