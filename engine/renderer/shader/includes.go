package shader

import (
	"fmt"
	"strings"
)

// includePrefix marks a line comment that pulls a registered WGSL snippet into the source.
const includePrefix = "@oxy:include"

// expandIncludes replaces every "//@oxy:include <name>" line with the snippet registered under name.
// Other lines are kept as-is. Nested includes are not expanded.
//
// Parameters:
//   - source: the raw WGSL source
//   - includes: snippets keyed by include name
//
// Returns:
//   - string: the expanded source
//   - error: an error naming the line of a malformed or unknown include
func expandIncludes(source string, includes map[string]string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		comment, ok := strings.CutPrefix(strings.TrimSpace(line), "//")
		if !ok {
			out = append(out, line)
			continue
		}
		rest, ok := strings.CutPrefix(strings.TrimSpace(comment), includePrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		args := strings.Fields(rest)
		if len(args) != 1 {
			return "", fmt.Errorf("line %d: include requires exactly one name", i+1)
		}
		snippet, ok := includes[args[0]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, args[0])
		}
		out = append(out, strings.TrimRight(snippet, "\n"))
	}
	return strings.Join(out, "\n"), nil
}
