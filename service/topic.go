package service

import (
	"strings"

	"frontdesk/model"
)

const topicGeneral = "General inquiry"

// ProcedureLabel renders a procedure tag for human-facing text:
// "root_canal" becomes "Root Canal".
func ProcedureLabel(p model.Procedure) string {
	words := strings.Split(string(p), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// InferTopic derives the conversation topic from intent and procedure
// alone. Pure: same inputs always yield the same label, and the result is
// recomputed every turn rather than stored independently.
func InferTopic(intent model.Intent, procedure model.Procedure) string {
	switch {
	case intent == model.IntentOpeningHours:
		return "Opening hours"
	case intent == model.IntentBookAppt:
		return "Appointment booking"
	case intent == model.IntentPricing && procedure != model.ProcedureNone:
		return ProcedureLabel(procedure) + " pricing"
	case intent == model.IntentInsurance && procedure != model.ProcedureNone:
		return "Insurance coverage for " + ProcedureLabel(procedure)
	case intent == model.IntentInsurance:
		return "Insurance question"
	case intent == model.IntentEmergency:
		return "Emergency / urgent issue"
	case intent == model.IntentMedicalAdv:
		return "Medical advice request (needs clinician)"
	case intent == model.IntentServices:
		return "Services inquiry"
	default:
		return topicGeneral
	}
}
