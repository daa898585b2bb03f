package service

import (
	"fmt"
	"strings"

	"frontdesk/model"
)

// Fixed reply texts. These are the contract with the UI and with tests;
// change them deliberately.
const (
	replyOpeningHours = "Our typical opening hours are:\n" +
		"Monday–Friday: 09:00–18:00\n" +
		"Saturday: 09:00–13:00\n" +
		"Sunday: Closed\n\n" +
		"Would you like to book an appointment or request a callback?"

	replyMedicalAdvice = "I can’t safely provide medical advice over chat. Antibiotics or other treatments " +
		"can only be recommended after a clinician has assessed you.\n\n" +
		"If you have fever, facial swelling, trouble swallowing or breathing, or severe pain, " +
		"please seek urgent care.\n\n" +
		"If you’d like, you can share your name and phone number and we can arrange a clinician callback."

	replyEmergency = "If this is severe pain, swelling, uncontrolled bleeding, or fever, " +
		"please treat it as urgent and contact the clinic immediately " +
		"(or emergency services if needed).\n\n" +
		"If you share your name and phone number, we can arrange an urgent callback."

	replyServices = "We offer the following services:\n" +
		"- Check-ups & consultations\n" +
		"- Professional cleaning\n" +
		"- Fillings\n" +
		"- Root canal treatment (by assessment)\n" +
		"- Crowns & bridges\n" +
		"- Implants (by assessment)\n" +
		"- Kids dentistry\n" +
		"- Emergency pain consultations\n\n" +
		"What would you like help with?"

	replyBookingDone = "Perfect — I’ve noted your details and the team will contact you shortly to confirm the appointment."

	replyHandoffDone = "Thanks — I’ll pass this on to the team and they’ll contact you shortly."

	replyGeneric = "How can I help you today?\n" +
		"You can ask about opening hours, pricing, insurance, or booking an appointment."
)

// replyLabel renders a procedure for inline reply text ("root canal").
func replyLabel(p model.Procedure) string {
	return strings.ReplaceAll(string(p), "_", " ")
}

// missingSlot returns the first unfilled contact slot in the fixed
// collection order name -> phone -> best_time, or "" when all are present.
func missingSlot(c model.Collected) string {
	switch {
	case c.Name == "":
		return "name"
	case c.Phone == "":
		return "phone"
	case c.BestTime == "":
		return "best_time"
	}
	return ""
}

// NextReply advances the dialogue one turn: it may mutate state.Step (it is
// the only place that does) and returns the reply text. Intent rules take
// precedence over the step-based fallback; any combination not covered
// lands on the generic triage prompt, never an error.
func NextReply(state *model.ConversationState) string {
	switch state.Intent {
	case model.IntentOpeningHours:
		state.Step = model.StepTriage
		return replyOpeningHours

	case model.IntentBookAppt:
		state.Step = model.StepCollectContact
		switch missingSlot(state.Collected) {
		case "name":
			return "Sure — I can help with booking an appointment.\n\nTo get started, may I have your name?"
		case "phone":
			return fmt.Sprintf("Thanks, %s. What’s the best phone number to reach you?", state.Collected.Name)
		case "best_time":
			return "When is the best time to contact you to confirm the appointment?"
		}
		state.Step = model.StepReadyToHandoff
		return replyBookingDone

	case model.IntentMedicalAdv:
		state.Step = model.StepLimitedReply
		return replyMedicalAdvice

	case model.IntentEmergency:
		state.Step = model.StepReadyToHandoff
		return replyEmergency

	case model.IntentInsurance:
		state.Step = model.StepTriage
		if state.Procedure == model.ProcedureNone {
			return "Insurance coverage depends on the type of treatment and your plan.\n\n" +
				"Which service are you asking about (for example: cleaning, filling, implant)?"
		}
		return fmt.Sprintf("Coverage can vary by plan and procedure. For **%s**, "+
			"we can confirm details after a brief assessment and checking your insurance.\n\n"+
			"If you’d like, share your name and phone number and we can arrange a callback with more details.",
			replyLabel(state.Procedure))

	case model.IntentPricing:
		if state.Procedure == model.ProcedureNone {
			state.Step = model.StepTriage
			return "Sure — which treatment are you asking about (for example: cleaning, filling, implant)?"
		}
		state.Step = model.StepCollectContact
		return fmt.Sprintf("Pricing for **%s** depends on clinical assessment and case complexity.\n\n"+
			"If you share your name, phone number, and best time to reach you, "+
			"we can arrange a callback with an estimated price range.",
			replyLabel(state.Procedure))

	case model.IntentServices:
		state.Step = model.StepTriage
		return replyServices
	}

	// No intent carried over: continue contact collection if that is where
	// the conversation was, otherwise fall back to triage.
	if state.Step == model.StepCollectContact || state.Step == model.StepReadyToHandoff {
		switch missingSlot(state.Collected) {
		case "name":
			return "To proceed, may I have your name?"
		case "phone":
			return "Thanks. What’s the best phone number to reach you?"
		case "best_time":
			return "When is the best time to call you?"
		}
		state.Step = model.StepReadyToHandoff
		return replyHandoffDone
	}

	state.Step = model.StepTriage
	return replyGeneric
}
