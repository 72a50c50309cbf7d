// Command rowpty is a small demonstration harness for the row engine:
// it spawns a shell under a real pseudo-terminal (github.com/creack/pty,
// grounded on the pack's ptysession.StartSession), feeds its output
// through cellfeed.Decoder into a fixed-size ring of row.Row, and on
// every newline prints the row's measured text. It exists to exercise
// row.Row end-to-end against live output; it is not a terminal
// emulator (VT parsing, cursor movement, and scrollback are out of
// scope, per spec.md's Non-goals).
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/hnimtadd/vtrow/attrrow"
	"github.com/hnimtadd/vtrow/cellfeed"
	"github.com/hnimtadd/vtrow/logger"
	"github.com/hnimtadd/vtrow/row"
)

func main() {
	shell := flag.String("shell", defaultShell(), "shell to spawn under the pty")
	cols := flag.Int("cols", 80, "row width in columns")
	rows := flag.Int("rows", 24, "number of rows to keep in the ring")
	flag.Parse()

	log := logger.New(logger.Options{Buffer: os.Stderr, Level: logger.InfoLevel, Type: logger.TypeText})

	if err := run(*shell, *cols, *rows, log); err != nil {
		log.Error("rowpty exited with error", "error", err)
		os.Exit(1)
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// ring holds a fixed number of row.Row, each independently constructed
// since row.Row carries no shared backing store across rows.
type ring struct {
	rows []*row.Row
	cur  int
}

func newRing(n, cols int) (*ring, error) {
	r := &ring{rows: make([]*row.Row, n)}
	for i := range r.rows {
		rr, err := row.New(cols, attrrow.Default, nil)
		if err != nil {
			return nil, err
		}
		r.rows[i] = rr
	}
	return r, nil
}

func (r *ring) current() *row.Row { return r.rows[r.cur] }

func (r *ring) advance() {
	r.cur = (r.cur + 1) % len(r.rows)
	r.rows[r.cur].Reset(attrrow.Default)
}

func run(shell string, cols, rowCount int, log logger.Logger) error {
	cmd := exec.Command(shell)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("rowpty: start pty: %w", err)
	}
	defer ptmx.Close()
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rowCount), Cols: uint16(cols)}); err != nil {
		log.Warn("rowpty: failed to set pty size", "error", err)
	}

	ring, err := newRing(rowCount, cols)
	if err != nil {
		return err
	}

	var col int
	reader := bufio.NewReader(ptmx)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			text := bytes.TrimRight(line, "\n")
			if err := feedLine(ring.current(), &col, text); err != nil {
				log.Warn("rowpty: failed to decode pty output", "error", err)
			}
			fmt.Printf("[row %2d] %s\n", ring.cur, decodeForPrint(ring.current()))
		}
		if bytes.HasSuffix(line, []byte("\n")) {
			ring.advance()
			col = 0
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("rowpty: read pty: %w", err)
		}
	}

	return cmd.Wait()
}

func feedLine(r *row.Row, col *int, text []byte) error {
	dec, err := cellfeed.NewDecoder(text, attrrow.Default)
	if err != nil {
		return err
	}
	wrap := false
	_, err = r.WriteCells(dec, *col, &wrap, nil)
	*col = r.MeasureRight()
	return err
}

func decodeForPrint(r *row.Row) string {
	text := r.GetText()
	out := make([]byte, 0, len(text))
	for _, c := range text {
		if c < 0x80 {
			out = append(out, byte(c))
		} else {
			out = append(out, '?')
		}
	}
	return string(bytes.TrimRight(out, " "))
}
