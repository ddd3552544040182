// Package lsp serves the subset of the Language Server Protocol the
// index can answer: initialize, textDocument/definition, and
// textDocument/references over a Content-Length framed stream,
// normally stdio.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/drebelsky/xdr-ls/index"
)

// Server wires an index to one client connection.
type Server struct {
	ix      *index.Index
	in      *bufio.Reader
	version string
	log     *slog.Logger

	writeMu sync.Mutex
	out     io.Writer

	wg sync.WaitGroup
}

// NewServer returns a server that reads requests from in and writes
// responses to out. The index is built when the client sends
// initialize.
func NewServer(ix *index.Index, in io.Reader, out io.Writer, version string) *Server {
	return &Server{
		ix:      ix,
		in:      bufio.NewReader(in),
		out:     out,
		version: version,
		log:     slog.Default(),
	}
}

// SetLogger replaces the server's logger. Call it before Run.
func (s *Server) SetLogger(log *slog.Logger) {
	s.log = log
}

// Run serves requests until the client sends exit, the input closes, or
// ctx is cancelled. In-flight handlers are waited for before it
// returns.
func (s *Server) Run(ctx context.Context) error {
	defer s.wg.Wait()

	// Cancelled on return so the reader goroutine never blocks on a
	// send nobody will receive.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgChan := make(chan []byte, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			body, err := readMessage(s.in)
			if err != nil {
				errChan <- err
				return
			}
			select {
			case msgChan <- body:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain messages read before the error surfaced.
			for {
				select {
				case body := <-msgChan:
					if s.dispatch(body) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					return err
				}
			}
		case body := <-msgChan:
			if s.dispatch(body) {
				return nil
			}
		}
	}
}

// dispatch routes one message and reports whether the server should
// exit. Lifecycle methods run inline so query handlers started later
// always see a built index; the queries themselves each get a
// goroutine.
func (s *Server) dispatch(body []byte) bool {
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		s.replyError(nil, codeParseError, err.Error())
		return false
	}
	switch req.Method {
	case "initialize":
		s.onInitialize(req)
	case "initialized":
		s.logMessage(MessageInfo, "server initialized!")
	case "textDocument/definition":
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.onDefinition(req)
		}()
	case "textDocument/references":
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.onReferences(req)
		}()
	case "shutdown":
		s.reply(req.ID, nil)
	case "exit":
		return true
	default:
		// Notifications we do not implement are dropped; unknown
		// requests get an answer.
		if len(req.ID) != 0 {
			s.replyError(req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method))
		}
	}
	return false
}

func (s *Server) onInitialize(req request) {
	var params InitializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.replyError(req.ID, codeInvalidParams, err.Error())
		return
	}
	if params.RootURI == "" {
		s.replyError(req.ID, codeInvalidParams, "this language server requires rootUri to be set")
		return
	}
	root, err := uriToPath(params.RootURI)
	if err != nil {
		s.replyError(req.ID, codeInvalidParams, err.Error())
		return
	}
	stats, err := s.ix.Build(root)
	if err != nil {
		s.replyError(req.ID, codeRequestFailed, err.Error())
		return
	}
	s.log.Debug("workspace indexed",
		"root", root,
		"indexed", stats.Indexed,
		"skipped", stats.Skipped,
		"definitions", stats.Definitions,
		"references", stats.References)
	s.reply(req.ID, InitializeResult{
		Capabilities: ServerCapabilities{DefinitionProvider: true, ReferencesProvider: true},
		ServerInfo:   ServerInfo{Name: "xdr-ls", Version: s.version},
	})
}

func (s *Server) onDefinition(req request) {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.replyError(req.ID, codeInvalidParams, err.Error())
		return
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		s.replyError(req.ID, codeInvalidParams, err.Error())
		return
	}
	pt := index.Point{Line: params.Position.Line, Col: params.Position.Character}
	name, ok := s.ix.IdentifierAt(path, pt)
	s.log.Debug("definition request", "path", path, "line", pt.Line, "col", pt.Col, "name", name)
	if !ok {
		s.reply(req.ID, nil)
		return
	}
	loc, ok := s.ix.Definition(name)
	if !ok {
		s.reply(req.ID, nil)
		return
	}
	s.reply(req.ID, lspLocation(loc))
}

func (s *Server) onReferences(req request) {
	var params ReferenceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.replyError(req.ID, codeInvalidParams, err.Error())
		return
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		s.replyError(req.ID, codeInvalidParams, err.Error())
		return
	}
	pt := index.Point{Line: params.Position.Line, Col: params.Position.Character}
	name, ok := s.ix.IdentifierAt(path, pt)
	s.log.Debug("references request", "path", path, "line", pt.Line, "col", pt.Col, "name", name)
	if !ok {
		s.reply(req.ID, nil)
		return
	}
	locs, ok := s.ix.References(name, params.Context.IncludeDeclaration)
	if !ok {
		s.reply(req.ID, nil)
		return
	}
	out := make([]Location, len(locs))
	for i, loc := range locs {
		out[i] = lspLocation(loc)
	}
	s.reply(req.ID, out)
}

// lspLocation converts an index location to the wire form. Both sides
// are zero-based, so only the shape changes.
func lspLocation(loc index.Location) Location {
	return Location{
		URI: pathToURI(loc.Path),
		Range: Range{
			Start: Position{Line: loc.Start.Line, Character: loc.Start.Col},
			End:   Position{Line: loc.End.Line, Character: loc.End.Col},
		},
	}
}

func (s *Server) send(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := writeMessage(s.out, v); err != nil {
		s.log.Error("writing response", "err", err)
	}
}

func (s *Server) reply(id json.RawMessage, result any) {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	s.send(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) replyError(id json.RawMessage, code int, msg string) {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	s.send(errorResponse{JSONRPC: "2.0", ID: id, Error: responseError{Code: code, Message: msg}})
}

func (s *Server) logMessage(typ int, msg string) {
	s.send(notification{JSONRPC: "2.0", Method: "window/logMessage", Params: LogMessageParams{Type: typ, Message: msg}})
}
