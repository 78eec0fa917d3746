package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"prompt-gallery/internal/domain"
	"prompt-gallery/internal/domain/model"
	"prompt-gallery/internal/infra/render"
	"prompt-gallery/internal/usecase"
)

const helpText = `commands:
  <prompt>          generate with the current media type
  /image <prompt>   generate an image
  /video <prompt>   generate a video
  /type image|video switch the current media type
  /list             show the gallery
  /help             show this help
  /quit             leave`

type repl struct {
	uc    usecase.GalleryUseCase
	out   io.Writer
	width int

	mu  sync.Mutex
	typ model.MediaType
}

func newREPL(uc usecase.GalleryUseCase, out io.Writer, width int, typ model.MediaType) *repl {
	return &repl{uc: uc, out: out, width: width, typ: typ}
}

// Run reads commands until /quit or EOF. On EOF it waits for in-flight
// submissions so piped input still produces results.
func (r *repl) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if r.handle(ctx, sc.Text()) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	r.uc.Wait()
	return nil
}

// handle runs a single input line and reports whether to quit.
func (r *repl) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		r.printf("%s\n", helpText)
	case "/list":
		r.Render()
	case "/type":
		typ, err := model.ParseMediaType(arg)
		if err != nil {
			r.printf("unknown media type %q (use image or video)\n", arg)
			return false
		}
		r.mu.Lock()
		r.typ = typ
		r.mu.Unlock()
		r.printf("media type: %s\n", typ)
	case "/image":
		r.submit(ctx, arg, model.MediaTypeImage)
	case "/video":
		r.submit(ctx, arg, model.MediaTypeVideo)
	default:
		if strings.HasPrefix(cmd, "/") {
			r.printf("unknown command %s, try /help\n", cmd)
			return false
		}
		r.mu.Lock()
		typ := r.typ
		r.mu.Unlock()
		r.submit(ctx, line, typ)
	}
	return false
}

func (r *repl) submit(ctx context.Context, prompt string, typ model.MediaType) {
	_, err := r.uc.Submit(ctx, prompt, typ)
	switch {
	case err == nil:
		r.Render()
	case errors.Is(err, domain.ErrPromptRequired):
		// blank input is a no-op
	case errors.Is(err, domain.ErrGenerationInProgress):
		r.printf("still generating, please wait\n")
	default:
		r.printf("error: %v\n", err)
	}
}

// Render prints the current gallery.
func (r *repl) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := render.Gallery(r.out, r.uc.List(), r.width); err != nil {
		fmt.Fprintf(r.out, "render: %v\n", err)
	}
}

func (r *repl) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}
