package sshcfg

import (
	"fmt"
	"strings"

	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
)

// The SSH client config is a shared mutable file. mgit only ever touches
// text between its own marker pairs; everything outside them passes through
// byte for byte.

func beginMarker(alias string) string {
	return "# mgit-managed: " + alias
}

func endMarker(alias string) string {
	return "# end-mgit: " + alias
}

// buildBlock renders the managed config block for one host alias.
func buildBlock(alias, hostname, identityFile string) string {
	return fmt.Sprintf(
		"%s\nHost %s\n    HostName %s\n    User git\n    IdentityFile %s\n    IdentitiesOnly yes\n%s",
		beginMarker(alias), alias, hostname, identityFile, endMarker(alias))
}

// scanState is the two-state line scanner over the config file. It is
// toggled exactly by the literal begin/end marker lines for one alias.
type scanState int

const (
	outsideBlock scanState = iota
	insideBlock
)

// hasBlock reports whether content contains the begin marker for alias.
func hasBlock(content, alias string) bool {
	begin := beginMarker(alias)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == begin {
			return true
		}
	}
	return false
}

// replaceBlock swaps the marker-delimited region for alias with newBlock,
// keeping it at the same position in the file. The block must exist. An
// unterminated block is a ParseError, not silent consumption to EOF.
func replaceBlock(content, alias, newBlock, path string) (string, error) {
	begin, end := beginMarker(alias), endMarker(alias)
	var result []string
	state := outsideBlock
	for _, line := range strings.Split(content, "\n") {
		switch strings.TrimSpace(line) {
		case begin:
			state = insideBlock
			continue
		case end:
			state = outsideBlock
			result = append(result, newBlock)
			continue
		}
		if state == outsideBlock {
			result = append(result, line)
		}
	}
	if state == insideBlock {
		return "", unterminated(path, alias)
	}
	return strings.Join(result, "\n"), nil
}

// dropBlock removes the marker-delimited region for alias, markers
// included. Returns whether the block was present.
func dropBlock(content, alias, path string) (string, bool, error) {
	begin, end := beginMarker(alias), endMarker(alias)
	var result []string
	state := outsideBlock
	found := false
	for _, line := range strings.Split(content, "\n") {
		switch strings.TrimSpace(line) {
		case begin:
			state = insideBlock
			found = true
			continue
		case end:
			state = outsideBlock
			continue
		}
		if state == outsideBlock {
			result = append(result, line)
		}
	}
	if state == insideBlock {
		return "", false, unterminated(path, alias)
	}
	return strings.Join(result, "\n"), found, nil
}

// appendBlock adds a new block at the end of content, separated from any
// existing text by one blank line.
func appendBlock(content, block string) string {
	if strings.TrimSpace(content) == "" {
		return block + "\n"
	}
	return strings.TrimRight(content, "\n") + "\n\n" + block + "\n"
}

func unterminated(path, alias string) error {
	return mgiterrors.ParseError{
		Path:    path,
		Message: fmt.Sprintf("managed block for '%s' has no end marker", alias),
	}
}
