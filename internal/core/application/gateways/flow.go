package gateways

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/domain/services"
	"studydesk/internal/core/ports"
	"studydesk/internal/pkg/errs"
)

// stepDone is returned by the last step of a flow.
const stepDone = "done"

// Input is one value typed, chosen or uploaded by the actor.
type Input struct {
	Text     string
	Choice   string
	Chosen   bool
	Skipped  bool
	Confirm  bool
	File     kernel.FileRef
	FileName string
	FileSize int64
}

func (in Input) HasFile() bool {
	return !in.File.IsZero()
}

// request is the handling context of one event.
type request struct {
	env     *Env
	actor   kernel.Actor
	roster  services.Roster
	session *ports.Session
}

func (r *request) reply(ctx context.Context, text string, rows ...[]chat.Button) {
	r.env.Replies.Notify(ctx, chat.Reply(r.actor.ID, text, rows...))
}

func (r *request) value(key string) string {
	return r.session.Values[key]
}

func (r *request) set(key, value string) {
	if r.session.Values == nil {
		r.session.Values = make(map[string]string)
	}
	r.session.Values[key] = value
}

func (r *request) unset(keys ...string) {
	for _, key := range keys {
		delete(r.session.Values, key)
		delete(r.session.Files, key)
	}
}

func (r *request) setFile(key string, f kernel.FileRef) {
	if r.session.Files == nil {
		r.session.Files = make(map[string]ports.SessionFile)
	}
	r.session.Files[key] = ports.SessionFile{ID: f.ID(), Kind: string(f.Kind())}
}

// file returns the stored reference or a zero FileRef.
func (r *request) file(key string) kernel.FileRef {
	stored, ok := r.session.Files[key]
	if !ok {
		return kernel.FileRef{}
	}
	f, err := kernel.NewFileRef(stored.ID, kernel.FileKind(stored.Kind))
	if err != nil {
		return kernel.FileRef{}
	}
	return f
}

// step collects one input. accept validates and stores it and names the next
// step; a validation error keeps the flow on the same step.
type step struct {
	prompt    func(r *request) (string, [][]chat.Button)
	accept    func(ctx context.Context, r *request, in Input) (string, error)
	skippable bool
	// hint is shown when accept rejects the input.
	hint string
}

// flow is a fixed pipeline of steps.
//
// order lists the forward sequence and back names the predecessor of every
// step that has one. The two are maintained by hand and must change together.
type flow struct {
	name  string
	order []string
	steps map[string]step
	back  map[string]string
	roles []kernel.Role
	// abort cleans up after an abandoned session.
	abort func(ctx context.Context, r *request) error
}

func (f *flow) first() string {
	return f.order[0]
}

func (f *flow) allows(role kernel.Role) bool {
	if len(f.roles) == 0 {
		return true
	}
	for _, allowed := range f.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// check verifies that every step is defined and the back map only names known steps.
func (f *flow) check() error {
	var problems []error
	if len(f.order) == 0 {
		problems = append(problems, fmt.Errorf("flow %s has no steps", f.name))
	}
	for _, name := range f.order {
		if _, ok := f.steps[name]; !ok {
			problems = append(problems, fmt.Errorf("flow %s: step %s is not defined", f.name, name))
		}
	}
	for from, to := range f.back {
		_, fromOK := f.steps[from]
		_, toOK := f.steps[to]
		if !fromOK || !toOK {
			problems = append(problems, fmt.Errorf("flow %s: back %s -> %s names an unknown step", f.name, from, to))
		}
	}
	return errors.Join(problems...)
}

// engine drives flows through the session store.
type engine struct {
	env   *Env
	flows map[string]*flow
}

// start opens f for the actor, abandoning any previous session.
func (e *engine) start(ctx context.Context, r *request, f *flow, orderID int64, values map[string]string) error {
	if !f.allows(r.actor.Role) {
		return fmt.Errorf("%w: %s may not start %s", order.ErrNotAuthorized, r.actor.Role, f.name)
	}

	var createdAt time.Time
	if orderID != 0 {
		var err error
		if createdAt, err = e.orderCreatedAt(ctx, r, orderID); err != nil {
			return err
		}
	}

	if err := e.abandon(ctx, r, false); err != nil {
		return err
	}

	r.session = &ports.Session{
		Flow:           f.name,
		Step:           f.first(),
		OrderID:        orderID,
		OrderCreatedAt: createdAt,
		Values:         values,
		UpdatedAt:      e.env.now(),
	}
	return e.enter(ctx, r, f, f.first())
}

func (e *engine) orderCreatedAt(ctx context.Context, r *request, id int64) (time.Time, error) {
	query, err := queries.NewGetOrderQuery(r.actor, id)
	if err != nil {
		return time.Time{}, err
	}
	view, err := e.env.Queries.GetOrder.Handle(ctx, query)
	if err != nil {
		return time.Time{}, err
	}
	return view.CreatedAt, nil
}

// orderReplaced reports whether the order the session was opened for is gone,
// hidden from the actor, or is another order under the same id.
func (e *engine) orderReplaced(ctx context.Context, r *request) (bool, error) {
	if r.session.OrderID == 0 || r.session.OrderCreatedAt.IsZero() {
		return false, nil
	}

	createdAt, err := e.orderCreatedAt(ctx, r, r.session.OrderID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, order.ErrNotAuthorized):
		return true, nil
	case err != nil:
		return false, err
	}
	return !createdAt.Equal(r.session.OrderCreatedAt), nil
}

// resume loads the actor's session. A missing session yields ok == false.
func (e *engine) resume(ctx context.Context, r *request) (*flow, bool, error) {
	session, err := e.env.Sessions.Get(ctx, r.actor.ID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	f, ok := e.flows[session.Flow]
	if !ok || f.steps[session.Step].accept == nil {
		e.env.Logger.WarnContext(ctx, "dropping session of unknown flow",
			"actor_id", r.actor.ID.String(), "flow", session.Flow, "step", session.Step)
		return nil, false, e.env.Sessions.Delete(ctx, r.actor.ID)
	}

	r.session = &session
	return f, true, nil
}

// advance feeds one input to the current step.
func (e *engine) advance(ctx context.Context, r *request, f *flow, in Input) error {
	current := r.session.Step
	st := f.steps[current]

	if in.Skipped && !st.skippable {
		r.reply(ctx, "Этот шаг нельзя пропустить.")
		return e.prompt(ctx, r, f)
	}

	next, err := st.accept(ctx, r, in)
	if err != nil {
		if retryable(err) {
			e.env.Logger.DebugContext(ctx, "input rejected",
				"actor_id", r.actor.ID.String(), "flow", f.name, "step", current, "error", err)
			r.reply(ctx, rejection(st.hint))
			return e.prompt(ctx, r, f)
		}
		// The lifecycle refused the request; the collected values are useless now.
		if delErr := e.env.Sessions.Delete(ctx, r.actor.ID); delErr != nil {
			e.env.Logger.WarnContext(ctx, "session not cleared", "actor_id", r.actor.ID.String(), "error", delErr)
		}
		return err
	}

	if next == stepDone {
		return e.env.Sessions.Delete(ctx, r.actor.ID)
	}
	return e.enter(ctx, r, f, next)
}

// back rewinds exactly one step using the flow's back map.
func (e *engine) back(ctx context.Context, r *request, f *flow) error {
	prev, ok := f.back[r.session.Step]
	if !ok {
		r.reply(ctx, "Это первый шаг.")
		return e.prompt(ctx, r, f)
	}
	return e.enter(ctx, r, f, prev)
}

// abandon ends the current session, if any, running its flow's cleanup.
func (e *engine) abandon(ctx context.Context, r *request, announce bool) error {
	f, ok, err := e.resume(ctx, r)
	if err != nil || !ok {
		if announce && err == nil {
			r.reply(ctx, "Нет активного действия.")
		}
		return err
	}

	if f.abort != nil {
		if abortErr := f.abort(ctx, r); abortErr != nil {
			e.env.Logger.WarnContext(ctx, "abort cleanup failed",
				"actor_id", r.actor.ID.String(), "flow", f.name, "error", abortErr)
		}
	}

	if err = e.env.Sessions.Delete(ctx, r.actor.ID); err != nil {
		return err
	}

	r.session = nil
	if announce {
		r.reply(ctx, "❌ Действие отменено.")
	}
	return nil
}

func (e *engine) enter(ctx context.Context, r *request, f *flow, name string) error {
	r.session.Step = name
	r.session.UpdatedAt = e.env.now()
	if err := e.env.Sessions.Save(ctx, r.actor.ID, *r.session); err != nil {
		return err
	}
	return e.prompt(ctx, r, f)
}

func (e *engine) prompt(ctx context.Context, r *request, f *flow) error {
	name := r.session.Step
	st := f.steps[name]

	text, rows := st.prompt(r)

	var nav []chat.Button
	if _, ok := f.back[name]; ok {
		nav = append(nav, chat.NewButton("⬅️ Назад", chat.ActionBack, r.session.OrderID, name))
	}
	if st.skippable {
		nav = append(nav, chat.NewButton("⏭ Пропустить", chat.ActionSkip, r.session.OrderID, name))
	}
	nav = append(nav, chat.NewButton("✖️ Отмена", chat.ActionAbort, r.session.OrderID, ""))

	r.reply(ctx, text, append(rows, nav)...)
	return nil
}

// retryable reports whether the actor should simply try the same step again.
// Lifecycle refusals are validation errors too but cannot be fixed by retyping.
func retryable(err error) bool {
	return errs.IsValidation(err) && !errors.Is(err, order.ErrTransitionNotAllowed)
}

func rejection(hint string) string {
	if hint == "" {
		return "⚠️ Некорректное значение, попробуйте ещё раз."
	}
	return "⚠️ " + hint
}

// choices renders options as one button per row. The value carries the step
// name so that buttons of an earlier prompt are recognised as stale.
func choices(r *request, options []string) [][]chat.Button {
	rows := make([][]chat.Button, 0, len(options))
	for i, option := range options {
		rows = append(rows, chat.Row(chat.NewButton(option, chat.ActionChoose, r.session.OrderID, choiceValue(r.session.Step, i))))
	}
	return rows
}

func choiceValue(step string, index int) string {
	return step + "." + strconv.Itoa(index)
}

// chosen resolves a choice button against options.
func chosen(r *request, in Input, options []string) (string, bool, error) {
	if !in.Chosen {
		return "", false, nil
	}
	prefix, raw, found := strings.Cut(in.Choice, ".")
	if !found || prefix != r.session.Step {
		return "", false, errs.NewValueIsInvalidErrorWithCause("choice", fmt.Errorf("%q belongs to another step", in.Choice))
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index >= len(options) {
		return "", false, errs.NewValueIsOutOfRangeError("choice", raw, 0, len(options)-1)
	}
	return options[index], true, nil
}

// text returns the trimmed typed value or a ValueIsRequired error.
func text(in Input, name string) (string, error) {
	value := strings.TrimSpace(in.Text)
	if in.Chosen || in.HasFile() || value == "" {
		return "", errs.NewValueIsRequiredError(name)
	}
	return value, nil
}

// upload checks an attached file against the upload policy.
func upload(r *request, in Input, name string) (kernel.FileRef, error) {
	if !in.HasFile() {
		return kernel.FileRef{}, errs.NewValueIsRequiredError(name)
	}
	if err := r.env.Uploads.Check(in.FileName, in.FileSize, in.File.Kind()); err != nil {
		return kernel.FileRef{}, err
	}
	return in.File, nil
}

func yesNo(r *request) [][]chat.Button {
	return choices(r, []string{"Да", "Нет"})
}
