package command

import "strings"

// Command is one tokenized chat command.
type Command struct {
	// Help is set for the bare trigger word and for "<trigger> help".
	Help  bool
	Scope Scope
	Verb  string
	Args  []string
}

// Tokenize turns text into a Command when its first word is trigger.
func Tokenize(trigger, text string) (Command, bool) {
	words := strings.Fields(text)
	if len(words) == 0 || !strings.EqualFold(words[0], trigger) {
		return Command{}, false
	}
	if len(words) == 1 || words[1] == "help" {
		return Command{Help: true}, true
	}

	cmd := Command{Scope: Default}
	rest := words[1:]
	if scope, ok := scopeNames[rest[0]]; ok {
		cmd.Scope = scope
		rest = rest[1:]
	}
	if len(rest) > 0 {
		cmd.Verb = rest[0]
		cmd.Args = rest[1:]
	}
	return cmd, true
}
