package cmd

import (
	"errors"

	"github.com/eykd/ddata-go/internal/pipeline"
	"github.com/eykd/ddata-go/internal/source"
)

// fetchDiagnostic classifies a failed payload request.
func fetchDiagnostic(name string, err error) pipeline.Diagnostic {
	code := pipeline.CodeDataSourceFailure
	if errors.Is(err, source.ErrNotFound) {
		code = pipeline.CodeNoData
	}
	return pipeline.Diagnostic{
		Severity: pipeline.SeverityWarning,
		Code:     code,
		Message:  name + ": " + err.Error(),
		Subject:  name,
	}
}
