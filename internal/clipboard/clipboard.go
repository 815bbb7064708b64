// Package clipboard copies text to the system clipboard through the
// platform's clipboard command.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command is installed.
var ErrUnavailable = errors.New("no clipboard command found")

type command struct {
	name string
	args []string
}

// commands lists the clipboard writers to try for goos, in order.
func commands(goos string, wayland bool) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "cmd", args: []string{"/c", "clip"}}}
	default:
		cmds := []command{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
		if wayland {
			cmds = append([]command{{name: "wl-copy"}}, cmds...)
		}
		return cmds
	}
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

func find() (command, bool) {
	for _, c := range commands(runtime.GOOS, os.Getenv("WAYLAND_DISPLAY") != "") {
		if _, err := lookPath(c.name); err == nil {
			return c, true
		}
	}
	return command{}, false
}

// Write copies text to the system clipboard.
func Write(text string) error {
	c, ok := find()
	if !ok {
		return ErrUnavailable
	}

	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", c.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Available reports whether Write has a command to run.
func Available() bool {
	_, ok := find()
	return ok
}
