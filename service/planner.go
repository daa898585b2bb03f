package service

import "frontdesk/model"

// PlanActions derives the side effects for one finished turn from the
// post-turn state. The rules are additive, not mutually exclusive:
//
//   - upsert_ticket for any meaningful, non-opening-hours conversation
//   - notify_staff + handoff_if_needed for clinically urgent intents
//   - a further notify_staff once the session is ready for handoff
//
// upsert_ticket, when present, precedes every notify_staff so the executor
// can thread its ticket id into the notification results.
func PlanActions(state *model.ConversationState) []model.Action {
	var actions []model.Action

	meaningful := state.Intent != model.IntentNone ||
		state.Procedure != model.ProcedureNone ||
		(state.Topic != "" && state.Topic != topicGeneral) ||
		len(state.Details) > 0

	// Opening-hours questions are purely informational: no ticket.
	if state.Intent != model.IntentOpeningHours && (meaningful || state.Collected.AnyFilled()) {
		actions = append(actions, model.Action{Type: model.ActionUpsertTicket})
	}

	if state.Intent == model.IntentEmergency || state.Intent == model.IntentMedicalAdv {
		actions = append(actions,
			model.Action{Type: model.ActionNotifyStaff},
			model.Action{Type: model.ActionHandoff},
		)
	}

	if state.Step == model.StepReadyToHandoff {
		actions = append(actions, model.Action{Type: model.ActionNotifyStaff})
	}

	return actions
}
