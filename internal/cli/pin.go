package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/pin"
	"github.com/julianstephens/trackdown/internal/storage"
)

type PinCmd struct {
	Set    PinSetCmd    `cmd:"" help:"Set or change the PIN."`
	Remove PinRemoveCmd `cmd:"" help:"Remove the PIN."`
	Status PinStatusCmd `cmd:"" help:"Show whether a PIN is set."`
}

type PinSetCmd struct{}

func (c *PinSetCmd) Run(ctx *Context) error {
	gate := pin.NewGate(ctx.Store)

	entered, err := readPIN("New PIN (4-6 digits): ")
	if err != nil {
		return err
	}
	if err := pin.Validate(entered); err != nil {
		return err
	}
	again, err := readPIN("Confirm PIN: ")
	if err != nil {
		return err
	}
	if entered != again {
		return fmt.Errorf("PINs did not match")
	}

	if err := gate.Set(entered); err != nil {
		return err
	}
	logger.Info("PIN set")
	fmt.Println("PIN set. You will be asked for it on every run.")
	return nil
}

type PinRemoveCmd struct{}

func (c *PinRemoveCmd) Run(ctx *Context) error {
	gate := pin.NewGate(ctx.Store)
	if !gate.Configured() {
		fmt.Println("No PIN is set.")
		return nil
	}
	if err := gate.Remove(); err != nil {
		return err
	}
	logger.Info("PIN removed")
	fmt.Println("PIN removed.")
	return nil
}

type PinStatusCmd struct{}

func (c *PinStatusCmd) Run(ctx *Context) error {
	if pin.NewGate(ctx.Store).Configured() {
		fmt.Println("A PIN is set.")
	} else {
		fmt.Println("No PIN is set.")
	}
	return nil
}

const maxUnlockAttempts = 3

// RequireUnlock prompts for the PIN when one is configured, allowing a few
// attempts before giving up. A store without a PIN passes straight through.
func RequireUnlock(store storage.Provider) error {
	gate := pin.NewGate(store)
	if !gate.Configured() {
		return nil
	}

	for attempt := 1; attempt <= maxUnlockAttempts; attempt++ {
		entered, err := readPIN("PIN: ")
		if err != nil {
			return err
		}
		ok, err := gate.Verify(entered)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		logger.Warn("wrong PIN entered", "attempt", attempt)
		fmt.Println("Wrong PIN.")
	}
	return fmt.Errorf("too many wrong PIN attempts")
}

// stdinReader is shared across readPIN calls: a bufio reader may pull more
// than one line into its buffer, so rebuilding it per call would drop piped
// input between consecutive prompts.
var stdinReader *bufio.Reader

// readPIN reads without echo when stdin is a terminal, falling back to a plain
// line read when it is not (tests, pipes).
func readPIN(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}
	return readPINLine(stdinReader)
}

func readPINLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
