package lsp

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadMessage(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Length: 7\r\n\r\n{\"a\":1}"))
	body, err := readMessage(r)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(body))
}

func TestReadMessageExtraHeaders(t *testing.T) {
	raw := "Content-Type: application/vscode-jsonrpc; charset=utf-8\r\ncontent-length: 2\r\n\r\n{}"
	body, err := readMessage(bufio.NewReader(strings.NewReader(raw)))
	require.NoError(t, err)
	require.Equal(t, "{}", string(body))
}

func TestReadMessageMissingLength(t *testing.T) {
	_, err := readMessage(bufio.NewReader(strings.NewReader("Content-Type: text\r\n\r\n{}")))
	require.Error(t, err)
}

func TestReadMessageMalformedHeader(t *testing.T) {
	_, err := readMessage(bufio.NewReader(strings.NewReader("no colon here\r\n\r\n{}")))
	require.Error(t, err)
}

func TestWriteMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMessage(&buf, map[string]int{"n": 3}))

	body, err := readMessage(bufio.NewReader(&buf))
	require.NoError(t, err)
	require.JSONEq(t, `{"n":3}`, string(body))
}
