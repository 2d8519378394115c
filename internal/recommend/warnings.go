package recommend

import "slices"

// WarningWeatherUnavailable is attached when no weather could be obtained.
const WarningWeatherUnavailable = "Weather data unavailable. Check local conditions before going out."

// WarningWearPFD is added to spots scoring above PFDReminderThreshold.
const WarningWearPFD = "Wear your personal flotation device (PFD) at all times, even in ideal conditions."

// PFDReminderThreshold is the score above which WarningWearPFD is added.
const PFDReminderThreshold = 70.0

var mandatorySafetyWarnings = []string{
	"PFD REQUIRED: carry a properly sized personal flotation device. Wearing it at all times is strongly recommended.",
	"WHISTLE REQUIRED: a sound-signalling device (whistle) must be attached to your PFD.",
	"LEASH RECOMMENDED: use an ankle leash to stay attached to your board.",
	"NEVER GO ALONE: tell someone your route and expected return time.",
	"NO ALCOHOL: do not drink alcohol before or while paddling.",
}

// MandatorySafetyWarnings returns the disclosures included with every result.
func MandatorySafetyWarnings() []string {
	return slices.Clone(mandatorySafetyWarnings)
}
