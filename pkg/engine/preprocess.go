package engine

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites quote-script source into something zygomys
// accepts:
//
//   - :keyword becomes the string literal "__kw_keyword"
//   - kebab-case identifiers become snake_case (print-time -> print_time);
//     a hyphen is only rewritten between identifier characters, so the
//     minus operator survives
//   - ; and ;; line comments become // comments
//
// String literals, both "..." and `...`, pass through untouched.
func preprocessSource(source string) string {
	src := []byte(source)
	out := make([]byte, 0, len(src)+len(src)/4)

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			end := scanQuoted(src, i)
			out = append(out, src[i:end]...)
			i = end

		case c == '`':
			end := i + 1
			for end < len(src) && src[end] != '`' {
				end++
			}
			if end < len(src) {
				end++
			}
			out = append(out, src[i:end]...)
			i = end

		case c == ';':
			out = append(out, '/', '/')
			i++
			for i < len(src) && src[i] == ';' {
				i++
			}
			for i < len(src) && src[i] != '\n' {
				out = append(out, src[i])
				i++
			}

		case c == ':' && i+1 < len(src) && src[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(src) && isLetter(src[i+1]):
			end := i + 1
			for end < len(src) && isKWChar(src[end]) {
				end++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, src[i+1:end]...)
			out = append(out, '"')
			i = end

		case c == '-' && i > 0 && i+1 < len(src) && isIdentChar(src[i-1]) && isLetter(src[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// scanQuoted returns the index just past the double-quoted literal that
// starts at src[start], honoring backslash escapes.
func scanQuoted(src []byte, start int) int {
	i := start + 1
	for i < len(src) && src[i] != '"' {
		if src[i] == '\\' && i+1 < len(src) {
			i += 2
			continue
		}
		i++
	}
	if i < len(src) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
