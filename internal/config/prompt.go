package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptAPIKey asks for the key on out and reads one line from in. When in is
// a terminal the input is not echoed.
func PromptAPIKey(in io.Reader, out io.Writer, provider string) (string, error) {
	fmt.Fprintf(out, "Please paste your %s API key and press Enter: ", provider)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read api key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read api key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ResolveAPIKey fills c.APIKey from the prompt when it is still empty.
// An empty answer is ErrNoCredential.
func (c *Config) ResolveAPIKey(in io.Reader, out io.Writer) error {
	if c.APIKey != "" {
		return nil
	}
	if in == nil {
		return ErrNoCredential
	}
	key, err := PromptAPIKey(in, out, c.Provider)
	if err != nil {
		return err
	}
	if key == "" {
		return ErrNoCredential
	}
	c.APIKey = key
	return nil
}
