package scheduling

import (
	"fmt"
	"strings"

	"fieldline/models"
)

// FormatSlotsForVoice renders up to count slots as a spoken sentence for the
// call pipeline.
func FormatSlotsForVoice(slots []models.TimeSlot, count int) string {
	if len(slots) == 0 {
		return "I don't have any available slots in the next week."
	}
	if count <= 0 {
		count = 3
	}
	if count > len(slots) {
		count = len(slots)
	}

	phrases := make([]string, 0, count)
	for _, slot := range slots[:count] {
		phrases = append(phrases, fmt.Sprintf("%s, %s at %s",
			slot.Start.Format("Monday"),
			slot.Start.Format("January 2"),
			slot.Start.Format("3:04 PM")))
	}

	switch len(phrases) {
	case 1:
		return fmt.Sprintf("I have %s available.", phrases[0])
	case 2:
		return fmt.Sprintf("I have %s or %s available.", phrases[0], phrases[1])
	default:
		options := strings.Join(phrases[:len(phrases)-1], ", ") + ", or " + phrases[len(phrases)-1]
		return fmt.Sprintf("I have a few options: %s. Which works best for you?", options)
	}
}
