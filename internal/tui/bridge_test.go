package tui

import (
	"testing"

	"github.com/darksharpness/int2048/internal/eval"
)

func TestProgramRefWithoutProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	// Must not panic or block before a program is attached.
	ref.Send(OperationMsg{})
	operationBridge{ref: ref}.OnOperation(eval.Operation{Op: "*"})
}
