package handlers

// Client-facing confirmation messages, keyed by locale. The locale middleware
// narrows requests to en or hi.
var messages = map[string]map[string]string{
	"en": {
		"user_registered":       "User registered",
		"application_submitted": "Application submitted",
		"application_approved":  "Application approved and campaign created",
		"application_rejected":  "Application rejected",
		"campaign_deleted":      "Campaign deleted",
		"notes_updated":         "Notes updated",
	},
	"hi": {
		"user_registered":       "उपयोगकर्ता पंजीकृत",
		"application_submitted": "आवेदन जमा किया गया",
		"application_approved":  "आवेदन स्वीकृत, अभियान बनाया गया",
		"application_rejected":  "आवेदन अस्वीकृत",
		"campaign_deleted":      "अभियान हटाया गया",
		"notes_updated":         "टिप्पणियाँ अपडेट की गईं",
	},
}

func messageText(locale, key string) string {
	if m, ok := messages[locale]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages["en"][key]; ok {
		return s
	}
	return key
}
