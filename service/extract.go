package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"frontdesk/model"
	"frontdesk/utils"
)

var (
	nameShapeRe = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ][A-Za-zÀ-ÖØ-öø-ÿ '\-]*$`)
	myNameIsRe  = regexp.MustCompile(`(?i)\bmy name is\s+(.+)$`)
	iAmRe       = regexp.MustCompile(`(?i)\bi am\s+(.+)$`)
)

// genericAcks are answers that pass the name shape check but are clearly
// not names when the user is asked for one.
var genericAcks = map[string]struct{}{
	"yes": {}, "no": {}, "okay": {}, "ok": {}, "sure": {}, "thanks": {}, "thank you": {},
}

var bestTimeWords = []string{
	"morning", "afternoon", "evening", "tomorrow", "today",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// looksLikeName accepts 1-60 characters of letters, spaces, hyphens and
// apostrophes, rejecting generic acknowledgements.
func looksLikeName(s string) bool {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < 1 || n > 60 {
		return false
	}
	if !nameShapeRe.MatchString(s) {
		return false
	}
	if _, banned := genericAcks[strings.ToLower(s)]; banned {
		return false
	}
	return true
}

// ExtractContact fills still-empty contact slots from one utterance.
// Filled slots are immutable: a later candidate never overwrites one.
//
// When the dialogue is explicitly asking for contact details
// (COLLECT_CONTACT) and no name is known yet, a bare name like "Alex" is
// accepted as-is and the rest of the extraction is skipped for the turn.
func ExtractContact(state *model.ConversationState, text string) {
	t := strings.TrimSpace(text)
	low := strings.ToLower(t)
	c := &state.Collected

	if state.Step == model.StepCollectContact && c.Name == "" && looksLikeName(t) {
		c.Name = t
		return
	}

	if c.Name == "" {
		if m := myNameIsRe.FindStringSubmatch(t); m != nil {
			if candidate := strings.TrimSpace(m[1]); looksLikeName(candidate) {
				c.Name = candidate
			}
		}
	}
	if c.Name == "" {
		if m := iAmRe.FindStringSubmatch(t); m != nil {
			if candidate := strings.TrimSpace(m[1]); looksLikeName(candidate) {
				c.Name = candidate
			}
		}
	}

	if c.Phone == "" {
		if filtered := utils.FilterPhone(t); utils.DigitCount(filtered) >= 8 {
			c.Phone = filtered
		}
	}

	if c.BestTime == "" && utils.ContainsAny(low, bestTimeWords) {
		c.BestTime = t
	}
}
