package app

import (
	"fmt"

	"golang.org/x/text/language"
)

// DayLabels maps each weekday key to its Spanish display label.
var DayLabels = map[Weekday]string{
	Monday:    "Lunes",
	Tuesday:   "Martes",
	Wednesday: "Miércoles",
	Thursday:  "Jueves",
	Friday:    "Viernes",
	Saturday:  "Sábado",
	Sunday:    "Domingo",
}

// NoClassLabel is the placeholder shown for a day without a class.
const NoClassLabel = "Sin clase"

// ModeLabels maps presentation modes to their display labels.
var ModeLabels = map[PresentationMode]string{
	ModeTable:    "Tabla",
	ModeList:     "Lista",
	ModeCalendar: "Calendario",
}

// DayLabel returns the localized label for a weekday. A weekday without a
// mapping is a programming error, not a runtime condition.
func DayLabel(d Weekday) string {
	label, ok := DayLabels[d]
	if !ok {
		panic(fmt.Sprintf("no display label for weekday %q", d))
	}
	return label
}

// Supported display languages for user-visible text. Spanish is the default.
var displayLangs = []language.Tag{
	language.Spanish,
	language.English,
}

var langMatcher = language.NewMatcher(displayLangs)

// configErrorMessages is parallel to displayLangs.
var configErrorMessages = []string{
	"No se pudo cargar la configuración de horarios. Inténtalo de nuevo más tarde.",
	"Could not load the schedule configuration. Please try again later.",
}

// ConfigErrorMessage returns the user-visible startup failure text in the
// language negotiated from the Accept-Language header.
func ConfigErrorMessage(acceptLanguage string) string {
	_, idx := language.MatchStrings(langMatcher, acceptLanguage)
	return configErrorMessages[idx]
}
