package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTool is a minimal Tool implementation for exercising dispatch without
// depending on any real handler or the store.
type stubTool struct {
	name   string
	result *ToolsCallResult
	err    error
}

func (s *stubTool) Name() string                 { return s.name }
func (s *stubTool) Description() string          { return "a stub tool for tests" }
func (s *stubTool) InputSchema() json.RawMessage { return json.RawMessage(`{"type":"object"}`) }
func (s *stubTool) Execute(context.Context, json.RawMessage) (*ToolsCallResult, error) {
	return s.result, s.err
}

func newTestServer() *Server {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "echo", result: &ToolsCallResult{Content: []ContentBlock{TextContent("ok")}}})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(registry, ServerInfo{Name: "membankd", Version: "test"}, logger)
}

func TestHandleMessage_ParseError(t *testing.T) {
	s := newTestServer()
	resp := s.HandleMessage(context.Background(), []byte(`not json`))
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
}

func TestHandleMessage_NotificationGetsNoResponse(t *testing.T) {
	s := newTestServer()
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	assert.Nil(t, resp)
}

func TestHandleMessage_UnknownMethod(t *testing.T) {
	s := newTestServer()
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"bogus/method"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, resp.Error.Code)
}

func TestHandleMessage_Initialize(t *testing.T) {
	s := newTestServer()
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test-client"}}}`))
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(*InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "membankd", result.ServerInfo.Name)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestHandleMessage_ToolsList(t *testing.T) {
	s := newTestServer()
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(*ToolsListResult)
	require.True(t, ok)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "echo", result.Tools[0].Name)
}

func TestHandleMessage_ToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer()
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"missing"}}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, resp.Error.Code)
}

func TestHandleMessage_ToolsCall_Success(t *testing.T) {
	s := newTestServer()
	var buf bytes.Buffer
	s.stdout = &buf
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{}}}`))
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(*ToolsCallResult)
	require.True(t, ok)
	assert.False(t, result.IsError)
	assert.Equal(t, "ok", result.Content[0].Text)
}

func TestHandleMessage_ToolsCall_HandlerErrorBecomesIsErrorResult(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "boom", err: assertError("execution blew up")})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewServer(registry, ServerInfo{Name: "membankd", Version: "test"}, logger)

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"boom","arguments":{}}}`))
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(*ToolsCallResult)
	require.True(t, ok)
	assert.True(t, result.IsError)
}

type assertError string

func (e assertError) Error() string { return string(e) }
