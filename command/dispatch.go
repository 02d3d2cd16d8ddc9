package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gobridge/versebot/sections"
)

// errInvalid marks a command that is answered with the invalid command text.
var errInvalid = errors.New("invalid command")

// Dispatcher applies commands to a sections.Store.
type Dispatcher struct {
	trigger string
	store   *sections.Store
}

// New constructs a *Dispatcher answering to trigger.
func New(trigger string, store *sections.Store) *Dispatcher {
	return &Dispatcher{
		trigger: trigger,
		store:   store,
	}
}

type verb struct {
	run func(d *Dispatcher, cmd Command) ([]string, error)
	// mutates is set for verbs that write the sections back.
	mutates bool
}

var verbs = map[string]verb{
	"enable":   {run: setDisabled(false, "`%s` has been enabled."), mutates: true},
	"disable":  {run: setDisabled(true, "`%s` has been disabled."), mutates: true},
	"status":   {run: status},
	"reset":    {run: reset, mutates: true},
	"username": {run: username, mutates: true},
	"icon":     {run: icon, mutates: true},
	"time":     {run: postingTime, mutates: true},
	"channel":  {run: channel, mutates: true},
	"debug":    {run: debug},
}

// Dispatch runs cmd and returns the responses, one chat post each. The
// returned lines are valid even when err is set; err reports that the
// change could not be written back.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) ([]string, error) {
	if cmd.Help {
		return []string{d.Help()}, nil
	}

	v, ok := verbs[cmd.Verb]
	if !ok {
		return []string{d.invalid()}, nil
	}

	lines, err := v.run(d, cmd)
	if errors.Is(err, errInvalid) {
		return []string{d.invalid()}, nil
	}
	if err != nil {
		return nil, err
	}

	if v.mutates {
		if err := d.store.Persist(ctx); err != nil {
			return lines, fmt.Errorf("%s: %w", cmd.Verb, err)
		}
	}
	return lines, nil
}

// Help is the introduction given for the bare trigger word.
func (d *Dispatcher) Help() string {
	t := d.trigger
	return strings.Join([]string{
		"Hi, I'm " + t + "! Mention a verse like John 3:16 and I'll post it.",
		"Usage: `" + t + " [daily|all] <enable|disable|status|reset|username <name>|icon <url|:emoji:>>`",
		"Daily verse: `" + t + " daily time <hour[:minute[:second]]>`, `" + t + " daily channel <#channel>`, `" + t + " debug`",
	}, "\n")
}

func (d *Dispatcher) invalid() string {
	return fmt.Sprintf("Invalid command received. Type `%s` for help.", d.trigger)
}

// forEach applies fn to every section of the scope, answering with one line
// per section.
func (d *Dispatcher) forEach(scope Scope, fn func(*sections.Settings), line func(sections.Section) string) ([]string, error) {
	var lines []string
	for _, sec := range scope.Sections() {
		if err := d.store.Update(sec, fn); err != nil {
			return nil, err
		}
		lines = append(lines, line(sec))
	}
	return lines, nil
}

func sprintf(format string) func(sections.Section) string {
	return func(sec sections.Section) string { return fmt.Sprintf(format, sec) }
}

func setDisabled(disabled bool, format string) func(*Dispatcher, Command) ([]string, error) {
	return func(d *Dispatcher, cmd Command) ([]string, error) {
		return d.forEach(cmd.Scope, func(s *sections.Settings) { s.SetDisabled(disabled) }, sprintf(format))
	}
}

func status(d *Dispatcher, cmd Command) ([]string, error) {
	var lines []string
	for _, sec := range cmd.Scope.Sections() {
		state := "enabled"
		if d.store.Disabled(sec) {
			state = "disabled"
		}
		lines = append(lines, fmt.Sprintf("`%s` is currently %s.", sec, state))
	}
	return lines, nil
}

func reset(d *Dispatcher, cmd Command) ([]string, error) {
	var lines []string
	for _, sec := range cmd.Scope.Sections() {
		if err := d.store.Reset(sec); err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("`%s` has been reset.", sec))
	}
	return lines, nil
}

func username(d *Dispatcher, cmd Command) ([]string, error) {
	if len(cmd.Args) == 0 {
		return nil, errInvalid
	}
	name := strings.Join(cmd.Args, " ")
	return d.forEach(cmd.Scope,
		func(s *sections.Settings) { s.SetUsername(name) },
		func(sec sections.Section) string { return fmt.Sprintf("`%s`'s username is now `%s`.", sec, name) },
	)
}

func icon(d *Dispatcher, cmd Command) ([]string, error) {
	if len(cmd.Args) != 1 {
		return nil, errInvalid
	}
	arg := cmd.Args[0]
	isEmoji := len(arg) > 1 && strings.HasPrefix(arg, ":") && strings.HasSuffix(arg, ":")
	return d.forEach(cmd.Scope, func(s *sections.Settings) {
		if isEmoji {
			s.SetIconEmoji(arg)
			return
		}
		s.SetIconURL(arg)
	}, sprintf("`%s` now has a new icon."))
}

func postingTime(d *Dispatcher, cmd Command) ([]string, error) {
	if cmd.Scope != Daily {
		return nil, errInvalid
	}
	h, m, s, ok := parseTime(cmd.Args)
	if !ok {
		return nil, errInvalid
	}

	sec := cmd.Scope.Primary()
	if err := d.store.Update(sec, func(st *sections.Settings) { st.SetTime(h, m, s) }); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("`%s`'s posting time is now `%s`.", sec, d.store.Schedule())}, nil
}

// parseTime reads "h[:m[:s]]" from a single argument or h, m, s from up to
// three arguments. Components that are not numbers take their defaults.
func parseTime(args []string) (h, m, s int, ok bool) {
	parts := args
	if len(args) == 1 {
		parts = strings.Split(args[0], ":")
	}
	if len(parts) == 0 || len(parts) > 3 {
		return 0, 0, 0, false
	}

	values := [3]int{sections.DefaultHour, sections.DefaultMinute, sections.DefaultSecond}
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			values[i] = n
		}
	}
	return values[0], values[1], values[2], true
}

func channel(d *Dispatcher, cmd Command) ([]string, error) {
	if cmd.Scope != Daily || len(cmd.Args) != 1 {
		return nil, errInvalid
	}
	name := NormalizeChannel(cmd.Args[0])

	sec := cmd.Scope.Primary()
	if err := d.store.Update(sec, func(st *sections.Settings) { st.SetChannel(name) }); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("`%s` will now be posting to `%s`.", sec, name)}, nil
}

func debug(d *Dispatcher, _ Command) ([]string, error) {
	var lines []string
	for _, sec := range d.store.Sections() {
		if sec == sections.Slack {
			continue
		}
		lines = append(lines, "["+sec.String()+"]")
		for _, p := range d.store.Pairs(sec) {
			lines = append(lines, p.Key+" = "+p.Value)
		}
		lines = append(lines, "")
	}
	if len(lines) == 0 {
		return []string{"No sections stored."}, nil
	}
	return []string{"```" + strings.Join(lines, "\n") + "```"}, nil
}
