package rendering

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/opengl-setup-test/hellogl/lib/metrics"
)

// maxPendingErrors bounds the drain loop; a lost context can keep
// reporting errors
const maxPendingErrors = 32

var getError = gl.GetError

// Error lists the error codes OpenGL reported after an operation
type Error struct {
	Op    string
	Codes []uint32
}

func (e *Error) Error() string {
	names := make([]string, len(e.Codes))
	for i, code := range e.Codes {
		names[i] = ErrorName(code)
	}
	return fmt.Sprintf("OpenGL error after %s: %s", e.Op, strings.Join(names, ", "))
}

func ErrorName(code uint32) string {
	switch code {
	case 0:
		return "GL_NO_ERROR"
	case 0x0500:
		return "GL_INVALID_ENUM"
	case 0x0501:
		return "GL_INVALID_VALUE"
	case 0x0502:
		return "GL_INVALID_OPERATION"
	case 0x0503:
		return "GL_STACK_OVERFLOW"
	case 0x0504:
		return "GL_STACK_UNDERFLOW"
	case 0x0505:
		return "GL_OUT_OF_MEMORY"
	case 0x0506:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case 0x0507:
		return "GL_CONTEXT_LOST"
	default:
		return fmt.Sprintf("0x%04x", code)
	}
}

// ClearErrors discards whatever errors are pending
func ClearErrors() {
	for range maxPendingErrors {
		if getError() == gl.NO_ERROR {
			return
		}
	}
}

// CheckErrors collects the pending errors, logging and counting each one
// against op
func CheckErrors(op string) error {
	var codes []uint32
	for range maxPendingErrors {
		code := getError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}

	metrics.GLErrors.WithLabelValues(op).Add(float64(len(codes)))
	err := &Error{Op: op, Codes: codes}
	slog.Default().With("module", "rendering").Error(err.Error())
	return err
}

// Caller runs the GL calls in fn on behalf of op
type Caller func(op string, fn func()) error

// Call runs fn with the error state cleared before and checked after
func Call(op string, fn func()) error {
	ClearErrors()
	fn()
	return CheckErrors(op)
}

// Unchecked runs fn and never reports an error
func Unchecked(op string, fn func()) error {
	fn()
	return nil
}

// SetErrorSource replaces glGetError, for tests that run without a
// context. The returned func restores the real one.
func SetErrorSource(fn func() uint32) (restore func()) {
	orig := getError
	getError = fn
	return func() { getError = orig }
}
