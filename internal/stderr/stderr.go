//go:build !windows

// Package stderr captures output that C audio libraries write straight to
// file descriptor 2, which would otherwise corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

var (
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and calls sink with every non-blank
// line read from it, on a dedicated goroutine. It must run before the
// audio output is opened. On error, stderr is left untouched.
func Start(sink func(line string)) error {
	if done != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite = orig, r, w
	done = make(chan struct{})
	go func(finished chan<- struct{}) {
		defer close(finished)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				sink(line)
			}
		}
	}(done)
	return nil
}

// WriteOriginal writes msg to the real stderr, bypassing the capture.
func WriteOriginal(msg string) {
	fd := origStderr
	if fd < 0 {
		fd = int(os.Stderr.Fd())
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores stderr and waits for captured lines to be delivered.
func Stop() {
	if done == nil {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	origStderr, pipeRead, pipeWrite, done = -1, nil, nil, nil
}
