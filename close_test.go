package wot

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCloser struct {
	err   error
	calls int
}

func (s *stubCloser) Close() error {
	s.calls++
	return s.err
}

func newTextLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestCloseWithLog_NilCloser(t *testing.T) {
	var logBuf bytes.Buffer

	CloseWithLog(nil, newTextLogger(&logBuf), "config file")

	assert.Empty(t, logBuf.String(), "should not log for nil closer")
}

func TestCloseWithLog_SuccessfulClose(t *testing.T) {
	closer := &stubCloser{}
	var logBuf bytes.Buffer

	CloseWithLog(closer, newTextLogger(&logBuf), "config file")

	assert.Equal(t, 1, closer.calls)
	assert.Empty(t, logBuf.String(), "should not log on successful close")
}

func TestCloseWithLog_CloseError(t *testing.T) {
	closer := &stubCloser{err: errors.New("close failed: device busy")}
	var logBuf bytes.Buffer

	CloseWithLog(closer, newTextLogger(&logBuf), "config file")

	assert.Equal(t, 1, closer.calls)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "failed to close resource")
	assert.Contains(t, logOutput, "config file")
	assert.Contains(t, logOutput, "close failed")
	assert.Contains(t, logOutput, "level=WARN")
}

func TestCloseWithLog_NilLogger(t *testing.T) {
	closer := &stubCloser{err: errors.New("test error")}

	require.NotPanics(t, func() {
		CloseWithLog(closer, nil, "payload body")
	})
	assert.Equal(t, 1, closer.calls)
}

func TestCloseWithLog_Deferred(t *testing.T) {
	var logBuf bytes.Buffer
	logger := newTextLogger(&logBuf)

	ok := &stubCloser{}
	failing := &stubCloser{err: errors.New("flush error")}

	func() {
		defer CloseWithLog(failing, logger, "response body")
		defer CloseWithLog(ok, logger, "schema file")
	}()

	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "response body")
	assert.Contains(t, logOutput, "flush error")
	assert.NotContains(t, logOutput, "schema file")
}

func TestCloseWithLog_RealIOCloser(t *testing.T) {
	var logBuf bytes.Buffer

	r, w := io.Pipe()
	require.NoError(t, w.Close())
	CloseWithLog(r, newTextLogger(&logBuf), "pipe reader")

	assert.Empty(t, logBuf.String())
}
