package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/eval"
)

// MaxLineBytes bounds a single expression line in batch input.
const MaxLineBytes = 64 << 20

// EvalBatch evaluates in one expression per line. Blank lines and lines
// starting with '#' are skipped. Results go to out and failures to errOut;
// a failed line does not stop the batch. The returned error is the first
// failure, annotated with its line number, or the context error when ctx
// ends the run early.
func EvalBatch(ctx context.Context, in io.Reader, out, errOut io.Writer, ev *eval.Evaluator, cfg OutputConfig) ([]Record, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	var (
		records  []Record
		firstErr error
	)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		rec := Evaluate(ctx, ev, line, nil)
		records = append(records, rec)
		if rec.Err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			DisplayError(errOut, fmt.Sprintf("line %d", lineNo), rec)
			if firstErr == nil {
				firstErr = apperrors.WrapError(rec.Err, "line %d", lineNo)
			}
			continue
		}
		DisplayResult(out, rec, cfg)
	}
	if err := scanner.Err(); err != nil {
		return records, apperrors.WrapError(err, "reading expressions")
	}
	return records, firstErr
}
