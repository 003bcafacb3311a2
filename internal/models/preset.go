package models

// Preset is a named bundle of defaults for common number questions. Selecting
// a preset fills scale/units/help text that the user has not set themselves;
// explicit values always win over the catalog.
type Preset struct {
	Key            string
	Scale          *Scale
	Units          string
	HelpText       string
	DescriptorText string
}

const painDescriptors = `0 – Pain Free

Mild Pain – Nagging, annoying, but doesn't really interfere with daily living activities.
1 – Pain is very mild, barely noticeable. Most of the time you don't think about it.
2 – Minor pain. Annoying and may have occasional stronger twinges.
3 – Pain is noticeable and distracting, however, you can get used to it and adapt.

Moderate Pain – Interferes significantly with daily living activities.
4 – Moderate pain. If you are deeply involved in an activity, it can be ignored for a period of time, but is still distracting.
5 – Moderately strong pain. It can't be ignored for more than a few minutes, but with effort you still can manage to work or participate in some social activities.
6 – Moderately strong pain that interferes with normal daily activities. Difficulty concentrating.

Severe Pain – Disabling; unable to perform daily living activities.
7 – Severe pain that dominates your senses and significantly limits your ability to perform normal daily activities or maintain social relationships. Interferes with sleep.
8 – Intense pain. Physical activity is severely limited. Conversing requires great effort.
9 – Excruciating pain. Unable to converse. Crying out and/or moaning uncontrollably.
10 – Unspeakable pain. Bedridden and possibly delirious.`

// NumberPresets is the fixed preset catalog.
var NumberPresets = map[string]Preset{
	"pain_0_10": {
		Key:            "pain_0_10",
		Scale:          NewScale(0, 10, 1),
		HelpText:       "0 = pain free, 10 = worst imaginable.",
		DescriptorText: painDescriptors,
	},
	"stiffness_0_10": {
		Key:      "stiffness_0_10",
		Scale:    NewScale(0, 10, 1),
		HelpText: "0 = no stiffness, 10 = worst imaginable.",
	},
	"fatigue_0_10": {
		Key:   "fatigue_0_10",
		Scale: NewScale(0, 10, 1),
	},
	"stress_0_10": {
		Key:   "stress_0_10",
		Scale: NewScale(0, 10, 1),
	},
	"mood_1_5": {
		Key:   "mood_1_5",
		Scale: NewScale(1, 5, 1),
	},
	"sleep_hours": {
		Key:   "sleep_hours",
		Scale: NewScale(0, 14, 0.5),
		Units: "hours",
	},
	"exercise_minutes": {
		Key:   "exercise_minutes",
		Scale: NewScale(0, 300, 5),
		Units: "minutes",
	},
}

// PresetKeys lists the catalog keys in a stable order for prompts and help.
var PresetKeys = []string{
	"pain_0_10",
	"stiffness_0_10",
	"fatigue_0_10",
	"stress_0_10",
	"mood_1_5",
	"sleep_hours",
	"exercise_minutes",
}

// ApplyNumberPreset fills preset defaults into a number question, field by
// field, for anything the user left unset. Never overwrites an explicit value.
func ApplyNumberPreset(q Question) Question {
	if q.Type != TypeNumber {
		return q
	}
	p, ok := NumberPresets[q.Preset]
	if !ok {
		return q
	}

	q.Preset = p.Key
	if q.Scale == nil {
		q.Scale = NormaliseScale(p.Scale)
	}
	if q.Units == "" {
		q.Units = p.Units
	}
	if q.HelpText == "" {
		q.HelpText = p.HelpText
	}
	if q.DescriptorText == "" {
		q.DescriptorText = p.DescriptorText
	}
	return q
}
