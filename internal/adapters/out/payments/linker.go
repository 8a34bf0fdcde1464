// Package payments produces the placeholder payment references shown to
// customers. No money moves through this service.
package payments

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"studydesk/internal/pkg/errs"
)

// DefaultBase imitates the national fast payment system QR host.
const DefaultBase = "https://qr.nspk.ru"

// SBPLinker renders "{base}/FAKE-SBP-ORDER-{id}-{price}".
type SBPLinker struct {
	base string
}

func NewSBPLinker(base string) (*SBPLinker, error) {
	if base == "" {
		base = DefaultBase
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment link base", fmt.Errorf("%q is not an absolute url", base))
	}
	return &SBPLinker{base: strings.TrimRight(base, "/")}, nil
}

func (l *SBPLinker) Link(_ context.Context, orderID int64, price int) (string, error) {
	if orderID <= 0 {
		return "", errs.NewValueIsRequiredError("order id")
	}
	if price < 0 {
		return "", errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	return fmt.Sprintf("%s/FAKE-SBP-ORDER-%d-%d", l.base, orderID, price), nil
}
