// =============================================================================
// PO Payment Dashboard - Status Classifier
// =============================================================================
//
// Derives the categorical payment status of a purchase-order line from its
// goods-receipt and invoice-receipt quantities. The classifier is a plain
// deterministic function over two numbers; it has no per-row state.
//
// =============================================================================

package classifier

import (
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// Classify maps a (GR Qty, IR Qty) pair to a payment status. Rules are
// evaluated in priority order; the first match wins:
//
//  1. GR == IR and GR > 0          -> Paid
//  2. GR == 0 and IR == 0          -> Not Started
//  3. GR < IR                      -> Pending Goods Receipt
//  4. otherwise (GR > IR)          -> Pending Supplier Invoice
//
// NaN quantities fail every comparison, so a row with an uncoercible
// quantity falls through to Pending Supplier Invoice. That fallthrough is
// intentional and pinned by tests: malformed rows surface as pending, never
// as Paid or Not Started.
func Classify(grQty, irQty float64) types.PaymentStatus {
	switch {
	case grQty == irQty && grQty > 0:
		return types.StatusPaid
	case grQty == 0 && irQty == 0:
		return types.StatusNotStarted
	case grQty < irQty:
		return types.StatusPendingGoodsReceipt
	default:
		return types.StatusPendingSupplierInvoice
	}
}
