package service

import (
	"frontdesk/model"
	"frontdesk/utils"
)

// intentRule binds an ordered keyword set to an intent tag. Rules are
// evaluated top to bottom against the lowercased utterance; the first rule
// with a substring hit wins. The order is safety-first and load-bearing:
// a message matching both booking and hours keywords must classify as
// BOOK_APPOINTMENT because booking is actionable.
type intentRule struct {
	keywords []string
	intent   model.Intent
}

var intentRules = []intentRule{
	{[]string{"antibiotic", "antibiotics", "amoxicillin", "penicillin"}, model.IntentMedicalAdv},
	{[]string{"emergency", "severe pain", "unbearable pain", "bleeding", "swollen", "swelling", "urgent"}, model.IntentEmergency},
	{[]string{"book", "booking", "appointment", "make an appointment", "schedule", "set an appointment"}, model.IntentBookAppt},
	{[]string{
		"opening hours", "open hours", "working hours", "business hours",
		"when are you open", "when do you open", "when do you close",
		"opening time", "closing time", "hours",
	}, model.IntentOpeningHours},
	{[]string{"insurance", "public insurance", "private pay", "private insurance", "coverage", "insured"}, model.IntentInsurance},
	{[]string{"price", "cost", "how much", "pricing", "fee", "rates", "quote"}, model.IntentPricing},
	{[]string{"do you offer", "services", "what do you do", "offer", "treatments", "procedures"}, model.IntentServices},
}

type procedureRule struct {
	keywords  []string
	procedure model.Procedure
}

// procedureRules is an independent cascade over the same text. The
// emergency_consult entry is last on purpose: it is a fallback that only
// fires when no concrete procedure matched.
var procedureRules = []procedureRule{
	{[]string{"implant", "implants"}, model.ProcedureImplant},
	{[]string{"cleaning", "scale", "scaling"}, model.ProcedureCleaning},
	{[]string{"filling", "fillings", "cavity"}, model.ProcedureFilling},
	{[]string{"root canal", "endodont"}, model.ProcedureRootCanal},
	{[]string{"crown", "crowns", "bridge", "bridges"}, model.ProcedureCrownBridge},
	{[]string{"check-up", "checkup", "consult", "consultation", "examination"}, model.ProcedureConsultation},
	{[]string{"kids", "child", "children", "pediatric"}, model.ProcedureKids},
	{[]string{"toothache", "pain", "emergency"}, model.ProcedureEmergency},
}

// ClassifyIntent maps raw text to an intent tag, or IntentNone when no
// rule matches. Matching is plain substring over the normalized text.
func ClassifyIntent(text string) model.Intent {
	t := utils.Normalize(text)
	if t == "" {
		return model.IntentNone
	}
	for _, r := range intentRules {
		if utils.ContainsAny(t, r.keywords) {
			return r.intent
		}
	}
	return model.IntentNone
}

// ClassifyProcedure maps raw text to a procedure tag, or ProcedureNone.
// Independent of intent classification in the same pass.
func ClassifyProcedure(text string) model.Procedure {
	t := utils.Normalize(text)
	if t == "" {
		return model.ProcedureNone
	}
	for _, r := range procedureRules {
		if utils.ContainsAny(t, r.keywords) {
			return r.procedure
		}
	}
	return model.ProcedureNone
}
