package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	observe(context.Background(), obs, "session_start", time.Now(), nil, map[string]any{"program": "Peaking"})

	out := buf.String()
	assert.Contains(t, out, "use_case=session_start")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "program=Peaking")
	assert.Contains(t, out, "level=INFO")
}

func TestLogUseCaseObserver_Error(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	observe(context.Background(), obs, "session_end", time.Now(), errors.New("boom"), nil)

	out := buf.String()
	assert.Contains(t, out, "success=false")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "level=ERROR")
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))

	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	assert.Same(t, obs, useCaseObserverOrNoop([]UseCaseObserver{obs}))
}
