// Package gestures maps the model's integer class codes to human-readable
// gesture names. Codes follow the label-encoded (alphabetical) order the
// model was trained with.
package gestures

import "fmt"

var labels = map[int]string{
	0:  "Above ear - pull hair",
	1:  "Cheek - pinch skin",
	2:  "Drink from bottle/cup",
	3:  "Eyebrow - pull hair",
	4:  "Eyelash - pull hair",
	5:  "Feel around in tray and pull out an object",
	6:  "Forehead - pull hairline",
	7:  "Forehead - scratch",
	8:  "Glasses on/off",
	9:  "Neck - pinch skin",
	10: "Neck - scratch",
	11: "Pinch knee/leg skin",
	12: "Pull air toward your face",
	13: "Scratch knee/leg skin",
	14: "Text on phone",
	15: "Wave hello",
	16: "Write name in air",
	17: "Write name on leg",
}

// Label returns the gesture name for a class code, or an explicit
// placeholder for codes outside the known set.
func Label(code int) string {
	if name, ok := labels[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown gesture (%d)", code)
}
