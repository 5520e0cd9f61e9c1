// Package server exposes a tree over an interactive TELNET connection, in
// the manner of a line-oriented database console: commands are terminated
// by ';' and dispatched to handlers that mutate or query a shared tree.
package server

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/guiguan/caster"
	"github.com/reiver/go-oi"
	"github.com/reiver/go-telnet"
	"github.com/sirupsen/logrus"

	"github.com/psimatis/rstartree-go/report"
	"github.com/psimatis/rstartree-go/rtree"
)

// Event is published on the server's Caster whenever a command mutates or
// queries the tree, so other goroutines (tests, a future monitoring UI)
// can observe activity without polling.
type Event struct {
	Command string
	Detail  string
}

// Handler is a telnet.Handler that parses semicolon-terminated commands
// against a single shared Tree. It is safe for one Handler to serve many
// concurrent connections; every command runs under a mutex held for the
// duration of the tree operation.
type Handler struct {
	Tree *rtree.Tree
	Log  *logrus.Logger

	cast *caster.Caster
	mu   commandLock
}

// commandLock serializes command handling against the shared tree, which
// holds no locks of its own (see rtree.Tree's single-threaded contract).
type commandLock struct {
	ch chan struct{}
}

func (l *commandLock) lock() {
	if l.ch == nil {
		l.ch = make(chan struct{}, 1)
	}
	l.ch <- struct{}{}
}

func (l *commandLock) unlock() {
	<-l.ch
}

// NewHandler constructs a Handler over an existing tree, with its own
// event broadcaster ready to publish.
func NewHandler(tr *rtree.Tree, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Tree: tr,
		Log:  log,
		cast: caster.New(nil),
		mu:   commandLock{ch: make(chan struct{}, 1)},
	}
}

// Events subscribes to the Events published by the add and query commands.
// It returns the subscription channel and whether the subscription was
// made. The channel closes when ctx is cancelled.
func (h *Handler) Events(ctx context.Context) (<-chan interface{}, bool) {
	return h.cast.Sub(ctx, 0)
}

var skipRunes = map[rune]bool{'\n': true, '\r': true, ';': true}

// ServeTELNET implements telnet.Handler: it reads one byte at a time,
// accumulates a command up to the next ';', dispatches it, and writes the
// response followed by a newline. A read error, or a byte that does not
// decode as a single-byte rune (any non-ASCII input), ends the session.
func (h *Handler) ServeTELNET(ctx telnet.Context, w telnet.Writer, r telnet.Reader) {
	var buffer [1]byte
	p := buffer[:]

	var command []rune
	for {
		n, err := r.Read(p)

		var rn rune
		if n > 0 {
			rn, _ = utf8.DecodeRune(p[:n])
			if !skipRunes[rn] {
				command = append(command, rn)
			}
		}
		if rn == ';' {
			oi.LongWriteString(w, h.dispatch(string(command))+"\n")
			command = command[:0]
		}
		if err != nil || rn == utf8.RuneError {
			oi.LongWriteString(w, "Closing...\n")
			break
		}
	}
}

func (h *Handler) dispatch(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "empty command"
	}

	h.mu.lock()
	defer h.mu.unlock()

	switch fields[0] {
	case "add":
		return h.handleAdd(fields[1:])
	case "query":
		return h.handleQuery(fields[1:])
	case "stats":
		return h.handleStats()
	case "print":
		return h.handlePrint()
	default:
		return fmt.Sprintf("unrecognized command: %s", fields[0])
	}
}

func (h *Handler) handleAdd(args []string) string {
	if len(args) < 1+h.Tree.Dimensions() {
		return fmt.Sprintf("add needs an ID followed by %d coordinates", h.Tree.Dimensions())
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Sprintf("invalid id: %v", err)
	}
	coords := make([]float32, h.Tree.Dimensions())
	for i := range coords {
		v, err := strconv.ParseFloat(args[1+i], 32)
		if err != nil {
			return fmt.Sprintf("invalid coordinate: %v", err)
		}
		coords[i] = float32(v)
	}
	h.Tree.Insert(rtree.NewPoint(id, coords))
	h.publish(Event{Command: "add", Detail: fmt.Sprintf("id=%d coords=%v", id, coords)})
	return fmt.Sprintf("inserted id=%d", id)
}

func (h *Handler) handleQuery(args []string) string {
	d := h.Tree.Dimensions()
	if len(args) < 2*d {
		return fmt.Sprintf("query needs %d low coordinates followed by %d high coordinates", d, d)
	}
	lo := make([]float32, d)
	hi := make([]float32, d)
	for i := 0; i < d; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Sprintf("invalid coordinate: %v", err)
		}
		lo[i] = float32(v)
	}
	for i := 0; i < d; i++ {
		v, err := strconv.ParseFloat(args[d+i], 32)
		if err != nil {
			return fmt.Sprintf("invalid coordinate: %v", err)
		}
		hi[i] = float32(v)
	}

	hits := h.Tree.RangeQuery(rtree.NewRectangle(rtree.NoID, lo, hi))
	h.publish(Event{Command: "query", Detail: fmt.Sprintf("hits=%d", len(hits))})

	var b strings.Builder
	fmt.Fprintf(&b, "%d hits:", len(hits))
	for _, hit := range hits {
		fmt.Fprintf(&b, " %d", hit.ID())
	}
	return b.String()
}

func (h *Handler) handleStats() string {
	var buf bytes.Buffer
	report.Stats(&buf, h.Tree.Stats())
	return buf.String()
}

func (h *Handler) handlePrint() string {
	s := h.Tree.Stats()
	return fmt.Sprintf("height=%d nodes=%d entries=%d", s.Height, s.TotalNodes, s.TotalDataEntries)
}

func (h *Handler) publish(e Event) {
	if ok := h.cast.Pub(e); !ok {
		h.Log.Debugf("server: publish event: subscribers not ready")
	}
}

// ListenAndServe starts a TELNET server on addr, serving h until the
// process is stopped or ListenAndServe returns an error.
func ListenAndServe(addr string, h *Handler) error {
	return telnet.ListenAndServe(addr, h)
}
