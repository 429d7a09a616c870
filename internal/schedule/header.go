package schedule

import "fmt"

var weekdayNames = [7]string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// Genitive case, as in "2 октября"
var monthNames = [12]string{
	"января",
	"февраля",
	"марта",
	"апреля",
	"мая",
	"июня",
	"июля",
	"августа",
	"сентября",
	"октября",
	"ноября",
	"декабря",
}

// FormatHeader renders a DD.MM.YYYY date as a day header,
// e.g. "Четверг, 2 октября 2025"
func FormatHeader(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %d %s %d",
		weekdayNames[t.Weekday()],
		t.Day(),
		monthNames[t.Month()-1],
		t.Year()), nil
}
