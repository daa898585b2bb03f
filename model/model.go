package model

// Step is the dialogue state machine's current phase for a session.
type Step string

const (
	StepTriage         Step = "TRIAGE"
	StepCollectContact Step = "COLLECT_CONTACT"
	StepReadyToHandoff Step = "READY_TO_HANDOFF"
	StepLimitedReply   Step = "LIMITED_RESPONSE"
	StepResolved       Step = "RESOLVED"
)

// Intent is the classified purpose of an utterance. Empty means "none
// detected"; a turn without a detection never clears a prior intent.
type Intent string

const (
	IntentNone         Intent = ""
	IntentPricing      Intent = "PRICING"
	IntentInsurance    Intent = "INSURANCE"
	IntentServices     Intent = "SERVICES"
	IntentEmergency    Intent = "EMERGENCY"
	IntentMedicalAdv   Intent = "MEDICAL_ADVICE"
	IntentOpeningHours Intent = "OPENING_HOURS"
	IntentBookAppt     Intent = "BOOK_APPOINTMENT"
)

// Procedure is the treatment the user is asking about, detected
// independently of intent.
type Procedure string

const (
	ProcedureNone         Procedure = ""
	ProcedureImplant      Procedure = "implant"
	ProcedureCleaning     Procedure = "cleaning"
	ProcedureFilling      Procedure = "filling"
	ProcedureRootCanal    Procedure = "root_canal"
	ProcedureCrownBridge  Procedure = "crown_bridge"
	ProcedureConsultation Procedure = "consultation"
	ProcedureKids         Procedure = "kids_dentistry"
	ProcedureEmergency    Procedure = "emergency_consult"
)

// Collected holds the contact slots gathered during a conversation.
// A slot, once filled, is never overwritten for the rest of the session.
type Collected struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	BestTime string `json:"best_time"`
}

// AnyFilled reports whether at least one contact slot has been captured.
func (c Collected) AnyFilled() bool {
	return c.Name != "" || c.Phone != "" || c.BestTime != ""
}

// ConversationState is the full per-session record the core mutates each
// turn. Persistence of it across turns belongs to the caller's store.
type ConversationState struct {
	Step      Step      `json:"step"`
	Intent    Intent    `json:"intent"`
	Procedure Procedure `json:"procedure"`
	Topic     string    `json:"topic"`
	Details   []string  `json:"details"`
	Collected Collected `json:"collected"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// NewConversationState returns a fresh state at TRIAGE with both
// timestamps set to now.
func NewConversationState(now string) *ConversationState {
	return &ConversationState{
		Step:      StepTriage,
		Details:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// Ticket is the staff-facing summary of a conversation. At most one exists
// per session; repeated upserts keep the same TicketID and CreatedAt.
type Ticket struct {
	TicketID          string       `json:"ticket_id"`
	SessionID         string       `json:"session_id"`
	CreatedAt         string       `json:"created_at"`
	UpdatedAt         string       `json:"updated_at"`
	Intent            Intent       `json:"intent"`
	Procedure         Procedure    `json:"procedure"`
	Topic             string       `json:"topic"`
	Summary           string       `json:"summary"`
	Contact           Collected    `json:"contact"`
	ConversationFacts []string     `json:"conversation_facts"`
	Status            TicketStatus `json:"status"`
}

// ActionType tags a planned side effect.
type ActionType string

const (
	ActionUpsertTicket ActionType = "upsert_ticket"
	ActionNotifyStaff  ActionType = "notify_staff"
	ActionHandoff      ActionType = "handoff_if_needed"
)

// Action is a planned side effect, emitted by the planner and consumed by
// the executor within a single turn. Not persisted.
type Action struct {
	Type   ActionType        `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

// ActionResult is the executor's per-action audit entry, echoed to the
// caller. Not persisted.
type ActionResult struct {
	Type ActionType     `json:"type"`
	OK   bool           `json:"ok"`
	Data map[string]any `json:"data"`
}

// ChatRequest is one turn's inbound envelope.
type ChatRequest struct {
	SessionID    string             `json:"session_id" binding:"required"`
	UserMessage  string             `json:"user_message"`
	Channel      string             `json:"channel,omitempty"`
	PracticeName string             `json:"practice_name,omitempty"`
	PriorState   *ConversationState `json:"prior_state,omitempty"`
}

// ChatResponse is one turn's outbound envelope.
type ChatResponse struct {
	SessionID       string             `json:"session_id"`
	ReplyText       string             `json:"reply_text"`
	State           *ConversationState `json:"state"`
	ActionsExecuted []ActionResult     `json:"actions_executed"`
	TicketID        string             `json:"ticket_id,omitempty"`
}

// Config is the deploy configuration loaded from config/config.yaml.
type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"redis"`
	Practice struct {
		Name       string `yaml:"name"`
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"practice"`
}
