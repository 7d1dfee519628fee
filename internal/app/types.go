package app

import "encoding/json"

// Weekday identifies one of the seven fixed weekday keys used by schedule
// documents. Keys outside this set are ignored when parsing.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays is the fixed iteration order for rendering and export,
// independent of the key order in a schedule document.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DaySchedule is one weekday's class. Time is display-formatted and is never
// parsed.
type DaySchedule struct {
	Time      string `json:"time"`
	ClassName string `json:"class_name"`
}

// WeeklySchedule is the full set of per-weekday class assignments for one
// schedule source. A missing weekday means no class that day.
type WeeklySchedule struct {
	ID   string
	Name string
	Days map[Weekday]*DaySchedule
}

// UnmarshalJSON parses the document shape: name, id and zero-or-more weekday
// keys at the top level. Only the seven fixed weekday keys are consulted.
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var meta struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	s.ID = meta.ID
	s.Name = meta.Name
	s.Days = make(map[Weekday]*DaySchedule)
	for _, day := range Weekdays {
		raw, ok := fields[string(day)]
		if !ok {
			continue
		}
		var ds DaySchedule
		if err := json.Unmarshal(raw, &ds); err != nil {
			return err
		}
		s.Days[day] = &ds
	}
	return nil
}

// MarshalJSON writes the document shape back out.
func (s *WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Days)+2)
	out["id"] = s.ID
	out["name"] = s.Name
	for day, ds := range s.Days {
		out[string(day)] = ds
	}
	return json.Marshal(out)
}

// Day returns the class for one weekday, nil when there is no class.
func (s *WeeklySchedule) Day(d Weekday) *DaySchedule {
	if s == nil {
		return nil
	}
	return s.Days[d]
}

// ClassDays lists the weekdays that have a class, in fixed Monday→Sunday order.
func (s *WeeklySchedule) ClassDays() []Weekday {
	if s == nil {
		return nil
	}
	days := make([]Weekday, 0, len(s.Days))
	for _, day := range Weekdays {
		if s.Days[day] != nil {
			days = append(days, day)
		}
	}
	return days
}

// ScheduleSource is a named reference to one WeeklySchedule document. The
// selector shows Label and submits Ref.
type ScheduleSource struct {
	Ref   string `json:"ref"`
	Label string `json:"label"`
}

// SourceConfig is the configuration document listing schedule references in
// display order.
type SourceConfig struct {
	Schedules []string `json:"schedules"`
}

// PresentationMode is the active visual layout strategy. Exactly one is
// active at a time.
type PresentationMode string

const (
	ModeTable    PresentationMode = "table"
	ModeList     PresentationMode = "list"
	ModeCalendar PresentationMode = "calendar"
)

// ParseMode validates a mode string coming from the UI.
func ParseMode(s string) (PresentationMode, bool) {
	switch m := PresentationMode(s); m {
	case ModeTable, ModeList, ModeCalendar:
		return m, true
	}
	return "", false
}
