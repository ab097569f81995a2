package stdio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/listenrightmeow/mcps/internal/sdkbridge"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// Handler is a single-connection stdio transport. By default it reads from
// os.Stdin and writes to os.Stdout.
type Handler struct {
	svc          *mcpservice.Server
	r            io.Reader
	w            io.Writer
	l            *slog.Logger
	userProvider UserProvider
}

// NewHandler constructs a stdio Handler with defaults and applies options.
func NewHandler(svc *mcpservice.Server, opts ...Option) *Handler {
	h := &Handler{
		svc:          svc,
		r:            os.Stdin,
		w:            os.Stdout,
		l:            slog.New(slog.DiscardHandler),
		userProvider: OSUserProvider{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve runs the session until the peer closes its end of the stream or ctx
// is canceled. Both count as a clean shutdown. Serve must be called at most
// once per Handler.
func (h *Handler) Serve(ctx context.Context) error {
	srv, err := sdkbridge.NewServer(h.svc, sdkbridge.WithLogger(h.l), sdkbridge.WithTransport("stdio"))
	if err != nil {
		return fmt.Errorf("stdio: %w", err)
	}

	attrs := []any{}
	if uid, err := h.userProvider.CurrentUserID(); err == nil {
		attrs = append(attrs, slog.String("user", uid))
	}
	h.l.InfoContext(ctx, "stdio.serve.start", attrs...)

	err = srv.Run(ctx, h.transport())
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		h.l.InfoContext(ctx, "stdio.serve.stop")
		return nil
	default:
		h.l.ErrorContext(ctx, "stdio.serve.fail", slog.String("err", err.Error()))
		return fmt.Errorf("stdio: %w", err)
	}
}

func (h *Handler) transport() sdk.Transport {
	if h.r == os.Stdin && h.w == os.Stdout {
		return &sdk.StdioTransport{}
	}
	return &sdk.IOTransport{Reader: readCloser(h.r), Writer: writeCloser(h.w)}
}

func readCloser(r io.Reader) io.ReadCloser {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func writeCloser(w io.Writer) io.WriteCloser {
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}
