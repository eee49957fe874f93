package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/scribe/internal/ui"
)

var (
	stdinIsTerminal            = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	stdoutIsTerminal           = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
	confirmInput     io.Reader = os.Stdin
)

// shouldPromptForConfirm reports whether a human can answer a prompt.
func shouldPromptForConfirm() bool {
	return !isJSONOutput() && stdinIsTerminal() && stdoutIsTerminal()
}

// promptForConfirm asks a yes/no question. Anything but y or yes is no.
func promptForConfirm(message string) bool {
	fmt.Printf("%s %s ", ui.Warning(message), ui.Hint("[y/N]"))
	return readConfirmation(confirmInput)
}

func readConfirmation(r io.Reader) bool {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
