package shader

// ShaderBuilderOption is a functional option applied to a shader before its source is processed.
type ShaderBuilderOption func(*shader)

// WithInclude registers a WGSL snippet that replaces every "//@oxy:include <name>" line.
//
// Parameters:
//   - name: the include name used in the annotation
//   - source: the WGSL text to inject
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithInclude(name, source string) ShaderBuilderOption {
	return func(s *shader) {
		s.includes[name] = source
	}
}

// WithIncludes registers several include snippets at once. Existing names are overwritten.
//
// Parameters:
//   - includes: WGSL snippets keyed by include name
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithIncludes(includes map[string]string) ShaderBuilderOption {
	return func(s *shader) {
		for name, src := range includes {
			s.includes[name] = src
		}
	}
}
