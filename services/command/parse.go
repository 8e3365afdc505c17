package command

// parseCommand tokenizes one command line. Double-quoted spans form a single
// token with the quotes stripped; there is no escaping inside quotes. The
// first token is the command name, the rest are positional arguments. An
// empty line yields an empty command name.
func parseCommand(line string) (name string, args []string) {
	var parts []string
	var current []rune
	inQuote := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuote = !inQuote
			if !inQuote && len(current) > 0 {
				parts = append(parts, string(current))
				current = current[:0]
			}
		case ch == ' ' && !inQuote:
			if len(current) > 0 {
				parts = append(parts, string(current))
				current = current[:0]
			}
		default:
			current = append(current, ch)
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}
