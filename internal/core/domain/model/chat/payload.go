package chat

import (
	"fmt"
	"strconv"
	"strings"

	"studydesk/internal/pkg/errs"
)

// Action names what a button does.
type Action string

const (
	// navigation inside a gateway
	ActionBack   Action = "back"
	ActionAbort  Action = "abort"
	ActionSkip   Action = "skip"
	ActionChoose Action = "choose"

	// intake
	ActionConfirmDraft Action = "confirm_draft"

	// administrator
	ActionAssignPick    Action = "assign_pick"
	ActionAssignTo      Action = "assign_to"
	ActionAssignManual  Action = "assign_manual"
	ActionSelfTake      Action = "self_take"
	ActionApproveOffer  Action = "approve_offer"
	ActionChangePrice   Action = "change_price"
	ActionRejectOffer   Action = "reject_offer"
	ActionAcceptPayment Action = "accept_payment"
	ActionRejectPayment Action = "reject_payment"
	ActionApproveWork   Action = "approve_work"
	ActionAcceptCancel  Action = "accept_cancel"
	ActionDeclineCancel Action = "decline_cancel"
	ActionDeleteOrder   Action = "delete_order"
	ActionExportOrder   Action = "export_order"
	ActionViewOrder     Action = "view_order"
	ActionAddExecutor   Action = "add_executor"
	ActionRemoveExec    Action = "remove_executor"

	// executor
	ActionAcceptAssignment  Action = "accept_assignment"
	ActionDeclineAssignment Action = "decline_assignment"
	ActionSubmitWork        Action = "submit_work"
	ActionWithdraw          Action = "withdraw"

	// customer
	ActionPay             Action = "pay"
	ActionPaid            Action = "paid"
	ActionAcceptWork      Action = "accept_work"
	ActionRequestRevision Action = "request_revision"
	ActionCancelOrder     Action = "cancel_order"
)

// Payload is the data carried by a button.
type Payload struct {
	Action  Action
	OrderID int64
	Value   string
}

// Encode renders the payload as "action:order:value".
func (p Payload) Encode() string {
	return fmt.Sprintf("%s:%d:%s", p.Action, p.OrderID, p.Value)
}

// ParsePayload reverses Encode. The value may itself contain colons.
func ParsePayload(data string) (Payload, error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return Payload{}, errs.NewValueIsInvalidErrorWithCause("button payload", fmt.Errorf("%q is malformed", data))
	}

	orderID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || orderID < 0 {
		return Payload{}, errs.NewValueIsInvalidErrorWithCause("button payload", fmt.Errorf("%q has no order id", data))
	}

	return Payload{Action: Action(parts[0]), OrderID: orderID, Value: parts[2]}, nil
}
