package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s{2,}`)

// resolveArgs tops up missing positional args from piped stdin, so
// `mboard task list -o fzf | fzf | mboard task delete` works
func resolveArgs(args []string, expected int) ([]string, error) {
	if len(args) >= expected {
		return args, nil
	}

	pipedArgs, err := readPipedArgs(os.Stdin)
	if err != nil {
		return nil, err
	}

	needed := expected - len(args)
	if len(pipedArgs) < needed {
		return nil, fmt.Errorf("accepts %d arg(s), received %d", expected, len(args)+len(pipedArgs))
	}

	resolved := append([]string{}, pipedArgs[:needed]...)
	resolved = append(resolved, args...)
	return resolved, nil
}

func readPipedArgs(stdin *os.File) ([]string, error) {
	stat, err := stdin.Stat()
	if err != nil {
		return nil, err
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}

	return extractArgsFromInput(data), nil
}

// extractArgsFromInput takes the first field of every non-empty line.
// Lines may be tab, " :: " or multi-space separated.
func extractArgsFromInput(data []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var out []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if fields := parsePipedLine(line); len(fields) > 0 {
			out = append(out, fields[0])
		}
	}
	return out
}

func parsePipedLine(line string) []string {
	switch {
	case strings.Contains(line, "\t"):
		return splitFields(line, func(r rune) bool { return r == '\t' })
	case strings.Contains(line, " :: "):
		return strings.Split(line, " :: ")
	case multiSpaceRE.MatchString(line):
		return multiSpaceRE.Split(line, -1)
	default:
		return strings.Fields(line)
	}
}

func splitFields(input string, split func(rune) bool) []string {
	fields := strings.FieldsFunc(input, split)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}
