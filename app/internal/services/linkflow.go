package services

import (
	"fmt"
	"strings"

	"gift-link/app/internal/models"
	"gift-link/shared/config"
	"gift-link/shared/logger"
)

// Outcome classifies what a flow step did, so a single dispatcher can
// map it to a user-facing reply instead of each handler improvising.
type Outcome int

const (
	// OutcomeIgnored means the event is not for this flow (non-owner
	// text, or owner text with no flow in progress). Deliberate no-op.
	OutcomeIgnored Outcome = iota

	// OutcomePrompted means the flow was armed and the owner should be
	// asked for input.
	OutcomePrompted

	// OutcomeIssued means a request was stored and a link is ready.
	OutcomeIssued

	// OutcomeRejected means the input failed validation; state is kept
	// so the owner can retry without re-triggering.
	OutcomeRejected

	// OutcomeUnavailable means a non-owner pressed the trigger.
	OutcomeUnavailable

	// OutcomeFailed means a persistence operation failed.
	OutcomeFailed
)

// FlowResult is the uniform result of every link-request flow step.
type FlowResult struct {
	Outcome Outcome
	Link    string
	Request *models.Request
	Err     error
}

// LinkFlow is the conversational state machine behind the owner's
// link-request flow: trigger, await text, classify, issue, reply.
type LinkFlow struct {
	ownerID  int64
	baseURL  string
	tokens   *TokenGenerator
	users    UserStore
	states   StateStore
	requests RequestStore
	log      *logger.Logger
}

func NewLinkFlow(
	ownerID int64,
	baseURL string,
	tokens *TokenGenerator,
	users UserStore,
	states StateStore,
	requests RequestStore,
	log *logger.Logger,
) *LinkFlow {
	return &LinkFlow{
		ownerID:  ownerID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokens:   tokens,
		users:    users,
		states:   states,
		requests: requests,
		log:      log,
	}
}

// IsOwner reports whether the identity may use the link-request flow.
func (f *LinkFlow) IsOwner(userID int64) bool {
	return userID == f.ownerID
}

// ComposeLink builds the public URL for a token.
func (f *LinkFlow) ComposeLink(token string) string {
	return fmt.Sprintf("%s/%s/%s", f.baseURL, config.LinkPathSegment, token)
}

// RememberUser upserts user metadata. Failures are logged and swallowed;
// a broken user record must not block the conversation.
func (f *LinkFlow) RememberUser(user *models.User) {
	if err := f.users.Upsert(user); err != nil {
		f.log.Warn("Failed to upsert user metadata", "userID", user.ID, "error", err)
	}
}

// HandleTrigger arms the flow when the owner presses the get-link
// button. Non-owners get OutcomeUnavailable and no state change.
func (f *LinkFlow) HandleTrigger(user *models.User) FlowResult {
	f.RememberUser(user)

	if !f.IsOwner(user.ID) {
		return FlowResult{Outcome: OutcomeUnavailable}
	}

	if err := f.states.Set(user.ID, models.StateAwaitingRequest); err != nil {
		f.log.Error("Failed to persist conversation state", "userID", user.ID, "error", err)
		return FlowResult{Outcome: OutcomeFailed, Err: err}
	}
	return FlowResult{Outcome: OutcomePrompted}
}

// HandleText consumes a free-text message. It only acts for the owner
// while the flow is armed; everything else is ignored.
//
// On valid input the request is persisted before the state is cleared.
// There is no transaction tying the two writes together: a crash in
// between leaves the flow armed and a later valid message would create
// a second request. Accepted for a single-owner, low-frequency bot.
func (f *LinkFlow) HandleText(user *models.User, text string) FlowResult {
	f.RememberUser(user)

	if !f.IsOwner(user.ID) {
		return FlowResult{Outcome: OutcomeIgnored}
	}

	state, err := f.states.Get(user.ID)
	if err != nil {
		f.log.Error("Failed to read conversation state", "userID", user.ID, "error", err)
		return FlowResult{Outcome: OutcomeFailed, Err: err}
	}
	if state != models.StateAwaitingRequest {
		return FlowResult{Outcome: OutcomeIgnored}
	}

	cls, err := Classify(strings.TrimSpace(text))
	if err != nil {
		// State stays armed so the owner can just send corrected input.
		return FlowResult{Outcome: OutcomeRejected, Err: err}
	}

	token := f.tokens.Token()
	req := &models.Request{
		Token:  token,
		UserID: user.ID,
		Type:   cls.Type,
		Value:  cls.Value,
		Link:   f.ComposeLink(token),
	}

	if err := f.requests.Save(req); err != nil {
		f.log.Error("Failed to persist link request", "userID", user.ID, "token", token, "error", err)
		return FlowResult{Outcome: OutcomeFailed, Err: err}
	}
	if err := f.states.Clear(user.ID); err != nil {
		f.log.Error("Failed to clear conversation state", "userID", user.ID, "error", err)
		return FlowResult{Outcome: OutcomeFailed, Err: err}
	}

	f.log.Info("Link request issued", "userID", user.ID, "token", token, "type", string(cls.Type))
	return FlowResult{Outcome: OutcomeIssued, Link: req.Link, Request: req}
}
