package checkout

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const receiptAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TransactionIDWindow is how long transaction ids stay unique. The 8 digit
// suffix wraps after 10^8 ms (about 27.7h), so ids only identify an attempt
// within a session; receipts are looked up by receipt id.
const TransactionIDWindow = 100_000_000 * time.Millisecond

const transactionIDModulus = int64(TransactionIDWindow / time.Millisecond)

// IDGenerator issues payment reference codes. Transaction ids come from a
// millisecond reading that never repeats within the process, so two attempts
// started in the same millisecond still get different ids.
type IDGenerator struct {
	now  func() time.Time
	last atomic.Int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}

	return &IDGenerator{now: now}
}

// TransactionID returns "TXN" followed by the last 8 digits of the reading.
// Ids never repeat within TransactionIDWindow.
func (g *IDGenerator) TransactionID() string {
	for {
		last := g.last.Load()
		next := max(g.now().UnixMilli(), last+1)

		if g.last.CompareAndSwap(last, next) {
			return fmt.Sprintf("TXN%08d", next%transactionIDModulus)
		}
	}
}

// ReceiptID returns "RCP" followed by 6 random upper-case alphanumerics.
func (g *IDGenerator) ReceiptID() string {
	raw := uuid.New()

	code := make([]byte, 6)
	for i := range code {
		code[i] = receiptAlphabet[int(raw[i])%len(receiptAlphabet)]
	}

	return "RCP" + string(code)
}
