package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// writeString writes to w and logs any error (helper for ICS generation)
func writeString(w io.Writer, s string) {
	if _, err := fmt.Fprint(w, s); err != nil {
		log.Printf("Error writing to response: %v", err)
	}
}

// icsByDay maps weekday keys to RFC 5545 BYDAY codes.
var icsByDay = map[Weekday]string{
	Monday:    "MO",
	Tuesday:   "TU",
	Wednesday: "WE",
	Thursday:  "TH",
	Friday:    "FR",
	Saturday:  "SA",
	Sunday:    "SU",
}

var goWeekdays = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// nextWeekday returns the first date on or after now that falls on day.
func nextWeekday(now time.Time, day Weekday) time.Time {
	d := now
	for d.Weekday() != goWeekdays[day] {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// exportName builds the filename stem for download attachments.
func exportName(schedule *WeeklySchedule) string {
	name := schedule.Name
	if name == "" {
		name = schedule.ID
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// GenerateICS generates an iCalendar (ICS) file with one weekly recurring
// event per class day. Class times are display strings and are never parsed,
// so events are all-day with the time kept in the summary.
func GenerateICS(w http.ResponseWriter, schedule *WeeklySchedule, now time.Time) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=horario_%s.ics", exportName(schedule)))

	// ICS header
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:Horario %s\n", schedule.Name)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	writeICSEvents(w, schedule, now)

	fmt.Fprintln(w, "END:VCALENDAR")
}

// writeICSEvents writes one recurring VEVENT per class day, Monday→Sunday.
func writeICSEvents(w io.Writer, schedule *WeeklySchedule, now time.Time) {
	for _, day := range schedule.ClassDays() {
		ds := schedule.Day(day)
		start := nextWeekday(now, day)

		// UID must be stable for proper calendar updates
		uid := fmt.Sprintf("%s-%s@horario-semanal", schedule.ID, strings.ToLower(string(day)))

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", now.UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", start.Format("20060102"))
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", start.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(w, "RRULE:FREQ=WEEKLY;BYDAY=%s\n", icsByDay[day])
		fmt.Fprintf(w, "SUMMARY:%s %s\n", ds.Time, ds.ClassName)
		fmt.Fprintf(w, "DESCRIPTION:%s a las %s (%s)\n", ds.ClassName, ds.Time, schedule.Name)
		fmt.Fprintln(w, "END:VEVENT")
	}
}

// scheduleCSVRow is the gocsv row shape for CSV exports.
type scheduleCSVRow struct {
	Day   string `csv:"dia"`
	Time  string `csv:"hora"`
	Class string `csv:"clase"`
}

// GenerateCSV generates a CSV file with one row per class day.
func GenerateCSV(w http.ResponseWriter, schedule *WeeklySchedule) {
	rows := make([]*scheduleCSVRow, 0, len(schedule.Days))
	for _, day := range schedule.ClassDays() {
		ds := schedule.Day(day)
		rows = append(rows, &scheduleCSVRow{
			Day:   DayLabel(day),
			Time:  ds.Time,
			Class: ds.ClassName,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		log.Printf("Error generating CSV export: %v", err)
		http.Error(w, ErrFailedToGenerateCSV, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=horario_%s.csv", exportName(schedule)))
	writeString(w, out)
}

// GenerateJSON generates a JSON download of the schedule document.
func GenerateJSON(w http.ResponseWriter, schedule *WeeklySchedule) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=horario_%s.json", exportName(schedule)))

	if err := json.NewEncoder(w).Encode(schedule); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// GenerateSubscriptionICS generates an iCalendar (ICS) subscription feed.
// Unlike GenerateICS this is designed for calendar subscriptions:
// - No Content-Disposition attachment header (inline content)
// - Includes METHOD:PUBLISH and a refresh interval header
func GenerateSubscriptionICS(w http.ResponseWriter, schedule *WeeklySchedule, now time.Time) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	// No Content-Disposition header - calendar apps need inline content for subscriptions

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH") // Required for subscriptions
	fmt.Fprintf(w, "X-WR-CALNAME:Horario %s\n", schedule.Name)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "X-PUBLISHED-TTL:PT1H") // Suggest refresh every 1 hour

	writeICSEvents(w, schedule, now)

	fmt.Fprintln(w, "END:VCALENDAR")
}
