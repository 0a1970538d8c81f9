package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"suncron/internal/geo"
	"suncron/internal/solar"

	"cloudeng.io/cmdutil/flags"
)

// Action is the command selected on the command line
type Action int

const (
	ReportAction Action = iota
	WaitAction
	PollAction
)

func (a Action) String() string {
	switch a {
	case WaitAction:
		return "wait"
	case PollAction:
		return "poll"
	default:
		return "report"
	}
}

// Config is the fully resolved configuration for one invocation
type Config struct {
	Coordinates geo.Coordinates
	// Date is 12:00:00 local time on the chosen date, in a fixed offset zone.
	Date   time.Time
	Action Action

	// JSON selects machine readable output for report and poll.
	JSON bool
	// Watch keeps poll running, printing a reading every minute.
	Watch bool

	// Wait settings.
	Event     solar.Event
	Offset    time.Duration
	Tag       string
	RunMissed bool
}

const dateLayout = "2006-01-02"

var timeZonePattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

type globalArgs struct {
	date, timeZone, latitude, longitude string
}

type waitArgs struct {
	event, offset, altitude string
}

func globalFlags(a *globalArgs) *flag.FlagSet {
	fs := newFlagSet("suncron")
	stringFlag(fs, &a.date, "d", "date", "", "date to calculate for, as YYYY-MM-DD (default today)")
	stringFlag(fs, &a.timeZone, "t", "time-zone", "", "UTC offset as [+|-]HH:MM (default the local offset on the date)")
	stringFlag(fs, &a.latitude, "l", "latitude", "", "latitude in decimal degrees, e.g. 51.4769N")
	stringFlag(fs, &a.longitude, "o", "longitude", "", "longitude in decimal degrees, e.g. 0.0005W")
	return fs
}

func reportFlags(cfg *Config) *flag.FlagSet {
	fs := newFlagSet("report")
	fs.BoolVar(&cfg.JSON, "json", false, "print the report as JSON")
	return fs
}

func waitFlags(cfg *Config, a *waitArgs) *flag.FlagSet {
	fs := newFlagSet("wait")
	stringFlag(fs, &a.event, "e", "event", "", "event to wait for: "+strings.Join(solar.EventNames(), ", "))
	stringFlag(fs, &a.offset, "o", "offset", "00:00:00", "shift from the event as [-]HH:MM[:SS]; negative wakes before it")
	stringFlag(fs, &a.altitude, "a", "altitude", "", "degrees below the horizon for custom_am and custom_pm")
	fs.StringVar(&cfg.Tag, "tag", "", "label for the waiting process; has no other effect")
	fs.BoolVar(&cfg.RunMissed, "run-missed-event", false, "succeed even if the event was missed by more than 30 seconds")
	return fs
}

func pollFlags(cfg *Config) *flag.FlagSet {
	fs := newFlagSet("poll")
	fs.BoolVar(&cfg.JSON, "json", false, "print readings as JSON")
	fs.BoolVar(&cfg.Watch, "watch", false, "print a reading every minute until interrupted")
	return fs
}

// Parse resolves the command line args, without the program name, against
// defaults. now supplies today's date and the local offset when they are not
// given. Asking for help returns an error wrapping flag.ErrHelp.
func Parse(args []string, defaults Defaults, now time.Time) (*Config, error) {
	var g globalArgs
	global := globalFlags(&g)
	if err := global.Parse(args); err != nil {
		return nil, flagError(err)
	}

	cfg := &Config{Coordinates: defaults.Coordinates}

	if g.latitude != "" || g.longitude != "" {
		if g.latitude == "" || g.longitude == "" {
			return nil, newError("--latitude/--longitude", "latitude and longitude must be set together")
		}
		coords, err := geo.ParseCoordinates(g.latitude, g.longitude)
		if err != nil {
			return nil, &Error{Source: "--latitude/--longitude", Err: err}
		}
		cfg.Coordinates = coords
	}

	day := now
	if g.date != "" {
		d, err := ParseDate(g.date)
		if err != nil {
			return nil, &Error{Source: "--date", Err: err}
		}
		day = d
	}
	loc := now.Location()
	if g.timeZone != "" {
		l, err := ParseTimeZone(g.timeZone)
		if err != nil {
			return nil, &Error{Source: "--time-zone", Err: err}
		}
		loc = l
	}
	year, month, d := day.Date()
	cfg.Date = solar.FixedOffset(time.Date(year, month, d, 12, 0, 0, 0, loc))

	rest := global.Args()
	if len(rest) == 0 {
		return nil, newError("command", "expected one of report, wait or poll")
	}
	command, commandArgs := rest[0], rest[1:]
	if err := flags.OneOf(command).Validate("report", "wait", "poll"); err != nil {
		return nil, &Error{Source: "command", Err: err}
	}

	var err error
	switch command {
	case "report":
		cfg.Action = ReportAction
		err = parseCommand(reportFlags(cfg), commandArgs)
	case "wait":
		cfg.Action = WaitAction
		err = parseWait(cfg, commandArgs)
	case "poll":
		cfg.Action = PollAction
		err = parseCommand(pollFlags(cfg), commandArgs)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseWait(cfg *Config, args []string) error {
	var a waitArgs
	if err := parseCommand(waitFlags(cfg, &a), args); err != nil {
		return err
	}

	if a.event == "" {
		return newError("--event", "an event is required")
	}

	var alt *solar.Altitude
	if a.altitude != "" {
		parsed, err := solar.ParseAltitude(a.altitude)
		if err != nil {
			return &Error{Source: "--altitude", Err: err}
		}
		alt = &parsed
	}

	event, err := solar.ParseEvent(a.event, alt)
	if err != nil {
		return &Error{Source: "--event", Err: err}
	}
	cfg.Event = event

	offset, err := ParseOffset(a.offset)
	if err != nil {
		return &Error{Source: "--offset", Err: err}
	}
	cfg.Offset = offset
	return nil
}

func parseCommand(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}
	if fs.NArg() > 0 {
		return newError(fs.Name(), "unexpected argument '%s'", fs.Arg(0))
	}
	return nil
}

// ParseDate parses a date in YYYY-MM-DD form
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected a date in the format YYYY-MM-DD, got '%s'", s)
	}
	return d, nil
}

// ParseTimeZone parses a UTC offset in [+|-]HH:MM form, between -23:59 and
// +23:59, into a fixed zone
func ParseTimeZone(s string) (*time.Location, error) {
	m := timeZonePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("expected a time zone in the format [+|-]HH:MM, got '%s'", s)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("time zone must be between -23:59 and +23:59, got '%s'", s)
	}
	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	return time.FixedZone("", offset), nil
}

// ParseOffset parses [-]HH:MM or [-]HH:MM:SS, where the unsigned part is a
// time of day between 00:00:00 and 23:59:59
func ParseOffset(s string) (time.Duration, error) {
	sign := time.Duration(1)
	unsigned := s
	if strings.HasPrefix(s, "-") {
		sign = -1
		unsigned = s[1:]
	}

	layout := "15:04:05"
	if len(unsigned) == len("15:04") {
		layout = "15:04"
	}
	t, err := time.Parse(layout, unsigned)
	if err != nil {
		return 0, fmt.Errorf("expected an offset in the format '[-]HH:MM' or '[-]HH:MM:SS', got '%s'", s)
	}

	d := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	return sign * d, nil
}

// Usage writes the command line help to w
func Usage(w io.Writer) {
	var (
		cfg Config
		g   globalArgs
		a   waitArgs
	)
	fmt.Fprintf(w, "Usage: suncron [flags] <report|wait|poll> [command flags]\n\n"+
		"Calculates the times of solar events at a location and can wait for one of them,\n"+
		"e.g. suncron --latitude 51.47N --longitude 3.1W wait --event sunrise && lights-on.sh\n\n"+
		"Flags:\n%s\nreport:\n%s\nwait:\n%s\npoll:\n%s",
		flags.Defaults(globalFlags(&g)),
		flags.Defaults(reportFlags(&cfg)),
		flags.Defaults(waitFlags(&cfg, &a)),
		flags.Defaults(pollFlags(&cfg)))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// stringFlag registers a flag under a short and a long name
func stringFlag(fs *flag.FlagSet, p *string, short, long, value, usage string) {
	fs.StringVar(p, short, value, usage)
	fs.StringVar(p, long, value, usage+" (short -"+short+")")
}

func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return &Error{Source: "arguments", Err: err}
}
