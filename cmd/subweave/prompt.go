package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var videoURLPattern = regexp.MustCompile(`^https?://\S+$`)

// promptForURL asks for a URL interactively. Without a terminal there is
// nobody to ask, so the missing argument is an error.
func promptForURL(cmd *cobra.Command) (string, error) {
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		stdin = os.Stdin
	}
	if !isatty.IsTerminal(stdin.Fd()) && !isatty.IsCygwinTerminal(stdin.Fd()) {
		return "", errors.New("no url argument and no terminal to prompt on")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Video URL: ")
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read url: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func validateVideoURL(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("a video url is required")
	}
	if !videoURLPattern.MatchString(value) {
		return fmt.Errorf("%q does not look like a video url", value)
	}
	return nil
}
