package rendering

import (
	"errors"
	"testing"
)

// fakeErrors replaces glGetError with a queue of codes
func fakeErrors(t *testing.T, codes ...uint32) *[]uint32 {
	t.Helper()
	queue := append([]uint32{}, codes...)
	orig := getError
	getError = func() uint32 {
		if len(queue) == 0 {
			return 0
		}
		code := queue[0]
		queue = queue[1:]
		return code
	}
	t.Cleanup(func() { getError = orig })
	return &queue
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{0, "GL_NO_ERROR"},
		{0x0500, "GL_INVALID_ENUM"},
		{0x0501, "GL_INVALID_VALUE"},
		{0x0502, "GL_INVALID_OPERATION"},
		{0x0505, "GL_OUT_OF_MEMORY"},
		{0x0506, "GL_INVALID_FRAMEBUFFER_OPERATION"},
		{0x1234, "0x1234"},
	}
	for _, tt := range tests {
		if got := ErrorName(tt.code); got != tt.want {
			t.Errorf("ErrorName(%#x) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCallClearsStaleErrors(t *testing.T) {
	queue := fakeErrors(t, 0x0500, 0x0501)

	ran := false
	err := Call("glClear", func() { ran = true })
	if err != nil {
		t.Errorf("Call reported stale errors: %s", err)
	}
	if !ran {
		t.Errorf("fn was not run")
	}
	if len(*queue) != 0 {
		t.Errorf("stale errors left in the queue: %v", *queue)
	}
}

func TestCallReportsErrors(t *testing.T) {
	queue := fakeErrors(t)

	err := Call("glDrawElements", func() {
		*queue = append(*queue, 0x0502, 0x0500)
	})
	var glErr *Error
	if !errors.As(err, &glErr) {
		t.Fatalf("Call returned %v, want an *Error", err)
	}
	if glErr.Op != "glDrawElements" || len(glErr.Codes) != 2 {
		t.Errorf("error = %+v", glErr)
	}
	want := "OpenGL error after glDrawElements: GL_INVALID_OPERATION, GL_INVALID_ENUM"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCheckErrorsIsBounded(t *testing.T) {
	orig := getError
	getError = func() uint32 { return 0x0507 }
	t.Cleanup(func() { getError = orig })

	err := CheckErrors("glSwapBuffers")
	var glErr *Error
	if !errors.As(err, &glErr) {
		t.Fatalf("CheckErrors returned %v", err)
	}
	if len(glErr.Codes) != maxPendingErrors {
		t.Errorf("collected %d codes, want %d", len(glErr.Codes), maxPendingErrors)
	}
	ClearErrors()
}

func TestUnchecked(t *testing.T) {
	queue := fakeErrors(t)
	err := Unchecked("glDrawArrays", func() {
		*queue = append(*queue, 0x0502)
	})
	if err != nil {
		t.Errorf("Unchecked returned %s", err)
	}
}
