package schedule

// Kind selects how rows inside an event's windows are read.
type Kind string

const (
	// KindMatch rows hold "team A vs team B" pairings.
	KindMatch Kind = "match"
	// KindHeats rows hold single-column heats (event name + division).
	KindHeats Kind = "heats"
)

const (
	defaultHeatTime     = "See Schedule"
	defaultHeatLocation = "Swimming Pool"
)

// Window is an inclusive block of grid rows attributed to one event.
type Window struct {
	Start    int    `yaml:"start" validate:"min=0"`
	End      int    `yaml:"end" validate:"gtefield=Start"`
	Division string `yaml:"division"`
}

// EventWindows describes where one event's sub-events live in the schedule grid.
type EventWindows struct {
	EventID      string   `yaml:"event" validate:"required"`
	Kind         Kind     `yaml:"kind" validate:"omitempty,oneof=match heats"`
	Windows      []Window `yaml:"windows" validate:"required,min=1,dive"`
	HeatTime     string   `yaml:"heat_time"`
	HeatLocation string   `yaml:"heat_location"`
}

// Table is the declarative row-window layout of the schedule sheet, in parse order.
type Table []EventWindows

// EventIDs returns the configured event ids in table order.
func (t Table) EventIDs() []string {
	ids := make([]string, 0, len(t))
	for _, ew := range t {
		ids = append(ids, ew.EventID)
	}
	return ids
}

func (ew EventWindows) kind() Kind {
	if ew.Kind == "" {
		return KindMatch
	}
	return ew.Kind
}

func (ew EventWindows) heatTime() string {
	if ew.HeatTime == "" {
		return defaultHeatTime
	}
	return ew.HeatTime
}

func (ew EventWindows) heatLocation() string {
	if ew.HeatLocation == "" {
		return defaultHeatLocation
	}
	return ew.HeatLocation
}
