package patch

import (
	"strconv"
	"time"

	"github.com/danielokim/quotekit/internal/domain"
)

// Apply applies the operations in order to a working copy of q and runs a
// single recomputation on the final tree. Intermediate states between
// operations need not be internally consistent; only the final result is.
// On any invalid operation the original quote is returned unchanged along
// with a *Error identifying the offending op.
func Apply(q domain.Quote, ops []Operation, now time.Time) (domain.Quote, error) {
	work := q.Clone()
	for i, op := range ops {
		if err := applyOp(&work, i, op); err != nil {
			return q, err
		}
	}
	return work.Recompute(now), nil
}

// Replay applies each recorded patch in sequence onto a base snapshot. Undo
// is implemented by replaying all but the undone patches; remove operations
// on sequences are not reliably invertible, so inversion is never attempted.
func Replay(base domain.Quote, patches [][]Operation, now time.Time) (domain.Quote, error) {
	q := base.Clone()
	for _, ops := range patches {
		next, err := Apply(q, ops, now)
		if err != nil {
			return base, err
		}
		q = next
	}
	return q.Recompute(now), nil
}

func applyOp(q *domain.Quote, idx int, op Operation) error {
	switch op.Op {
	case OpReplace, OpAdd, OpRemove:
	default:
		return opErr(idx, op, "unknown op %q", op.Op)
	}

	segs, err := op.segments()
	if err != nil {
		return opErr(idx, op, "%v", err)
	}

	switch segs[0] {
	case "title", "client", "owner", "payTerms", "deliveryTerms", "notes", "vatRate":
		if len(segs) != 1 {
			return opErr(idx, op, "field %q takes no sub-path", segs[0])
		}
		return applyScalar(q, idx, op, segs[0])
	case "model":
		return applyModel(q, idx, op, segs)
	case "items":
		return applyItems(q, idx, op, segs)
	case "installed":
		return applyOptions(&q.Installed, idx, op, segs)
	case "paid":
		return applyOptions(&q.Paid, idx, op, segs)
	case "extra":
		return applyOptions(&q.Extra, idx, op, segs)
	default:
		return opErr(idx, op, "unknown field %q", segs[0])
	}
}

func applyScalar(q *domain.Quote, idx int, op Operation, field string) error {
	if op.Op == OpRemove {
		switch field {
		case "notes":
			q.Notes = ""
			return nil
		default:
			return opErr(idx, op, "field %q cannot be removed", field)
		}
	}

	if field == "vatRate" {
		rate, ok := asFloat(op.Value)
		if !ok {
			return opErr(idx, op, "vatRate requires a number, got %T", op.Value)
		}
		if rate < 0 || rate > 1 {
			return opErr(idx, op, "vatRate %v outside [0,1]", rate)
		}
		q.VATRate = rate
		return nil
	}

	s, ok := asString(op.Value)
	if !ok {
		return opErr(idx, op, "field %q requires a string, got %T", field, op.Value)
	}
	switch field {
	case "title":
		q.Title = s
	case "client":
		q.Client = s
	case "owner":
		q.Owner = s
	case "payTerms":
		q.PayTerms = s
	case "deliveryTerms":
		q.DeliveryTerms = s
	case "notes":
		q.Notes = s
	}
	return nil
}

func applyModel(q *domain.Quote, idx int, op Operation, segs []string) error {
	if len(segs) != 2 {
		return opErr(idx, op, "model path requires exactly one field segment")
	}
	field := segs[1]

	if op.Op == OpRemove {
		switch field {
		case "deck":
			q.Model.Deck = ""
		case "battery":
			q.Model.Battery = ""
		case "seats":
			q.Model.Seats = 0
		case "seatLabel":
			q.Model.SeatLabel = ""
		case "variant":
			q.Model.Variant = ""
		default:
			return opErr(idx, op, "model field %q cannot be removed", field)
		}
		return nil
	}

	switch field {
	case "courseName", "date", "seatLabel", "variant":
		s, ok := asString(op.Value)
		if !ok {
			return opErr(idx, op, "model field %q requires a string, got %T", field, op.Value)
		}
		switch field {
		case "courseName":
			q.Model.CourseName = s
		case "date":
			q.Model.Date = s
		case "seatLabel":
			q.Model.SeatLabel = s
		case "variant":
			q.Model.Variant = s
		}
	case "seats":
		n, ok := asInt(op.Value)
		if !ok || n < 0 {
			return opErr(idx, op, "model seats requires a non-negative integer, got %v", op.Value)
		}
		q.Model.Seats = int(n)
	case "series":
		s, _ := asString(op.Value)
		if !domain.ValidSeries[domain.Series(s)] {
			return opErr(idx, op, "unknown series %q", s)
		}
		q.Model.Series = domain.Series(s)
	case "deck":
		s, _ := asString(op.Value)
		if !domain.ValidDeckTypes[domain.DeckType(s)] {
			return opErr(idx, op, "unknown deck type %q", s)
		}
		q.Model.Deck = domain.DeckType(s)
	case "battery":
		s, _ := asString(op.Value)
		if !domain.ValidBatteryTypes[domain.BatteryType(s)] {
			return opErr(idx, op, "unknown battery type %q", s)
		}
		q.Model.Battery = domain.BatteryType(s)
	default:
		return opErr(idx, op, "unknown model field %q", field)
	}
	return nil
}

func applyItems(q *domain.Quote, idx int, op Operation, segs []string) error {
	if len(segs) < 2 || len(segs) > 3 {
		return opErr(idx, op, "items path requires an index and optional field")
	}
	i, err := strconv.Atoi(segs[1])
	if err != nil || i < 0 {
		return opErr(idx, op, "invalid item index %q", segs[1])
	}

	// Whole-element target.
	if len(segs) == 2 {
		switch op.Op {
		case OpRemove:
			if i >= len(q.Items) {
				return opErr(idx, op, "item index %d out of range (len %d)", i, len(q.Items))
			}
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			return nil
		case OpAdd:
			if i > len(q.Items) {
				return opErr(idx, op, "item index %d out of range for add (len %d)", i, len(q.Items))
			}
			item, ok := asLineItem(op.Value)
			if !ok {
				return opErr(idx, op, "value is not a line item")
			}
			q.Items = append(q.Items[:i], append([]domain.LineItem{item}, q.Items[i:]...)...)
			return nil
		default: // replace
			if i >= len(q.Items) {
				return opErr(idx, op, "item index %d out of range (len %d)", i, len(q.Items))
			}
			item, ok := asLineItem(op.Value)
			if !ok {
				return opErr(idx, op, "value is not a line item")
			}
			q.Items[i] = item
			return nil
		}
	}

	// Field target.
	if i >= len(q.Items) {
		return opErr(idx, op, "item index %d out of range (len %d)", i, len(q.Items))
	}
	if op.Op == OpRemove {
		return opErr(idx, op, "item field %q cannot be removed", segs[2])
	}
	switch segs[2] {
	case "label":
		s, ok := asString(op.Value)
		if !ok {
			return opErr(idx, op, "item label requires a string, got %T", op.Value)
		}
		q.Items[i].Label = s
	case "qty":
		n, ok := asInt(op.Value)
		if !ok {
			return opErr(idx, op, "item qty requires an integer, got %v", op.Value)
		}
		q.Items[i].Qty = n
	case "unitPrice":
		n, ok := asInt(op.Value)
		if !ok {
			return opErr(idx, op, "item unitPrice requires an integer, got %v", op.Value)
		}
		q.Items[i].UnitPrice = n
	default:
		return opErr(idx, op, "unknown item field %q", segs[2])
	}
	return nil
}

func applyOptions(bucket *[]domain.OptionLine, idx int, op Operation, segs []string) error {
	if len(segs) < 2 || len(segs) > 3 {
		return opErr(idx, op, "%s path requires an index and optional field", segs[0])
	}
	i, err := strconv.Atoi(segs[1])
	if err != nil || i < 0 {
		return opErr(idx, op, "invalid option index %q", segs[1])
	}

	if len(segs) == 2 {
		switch op.Op {
		case OpRemove:
			if i >= len(*bucket) {
				return opErr(idx, op, "option index %d out of range (len %d)", i, len(*bucket))
			}
			*bucket = append((*bucket)[:i], (*bucket)[i+1:]...)
			return nil
		case OpAdd:
			if i > len(*bucket) {
				return opErr(idx, op, "option index %d out of range for add (len %d)", i, len(*bucket))
			}
			opt, ok := asOptionLine(op.Value)
			if !ok {
				return opErr(idx, op, "value is not an option line")
			}
			*bucket = append((*bucket)[:i], append([]domain.OptionLine{opt}, (*bucket)[i:]...)...)
			return nil
		default:
			if i >= len(*bucket) {
				return opErr(idx, op, "option index %d out of range (len %d)", i, len(*bucket))
			}
			opt, ok := asOptionLine(op.Value)
			if !ok {
				return opErr(idx, op, "value is not an option line")
			}
			(*bucket)[i] = opt
			return nil
		}
	}

	if i >= len(*bucket) {
		return opErr(idx, op, "option index %d out of range (len %d)", i, len(*bucket))
	}
	if op.Op == OpRemove {
		return opErr(idx, op, "option field %q cannot be removed", segs[2])
	}
	switch segs[2] {
	case "description":
		s, ok := asString(op.Value)
		if !ok {
			return opErr(idx, op, "option description requires a string, got %T", op.Value)
		}
		(*bucket)[i].Description = s
	case "price":
		n, ok := asInt(op.Value)
		if !ok {
			return opErr(idx, op, "option price requires an integer, got %v", op.Value)
		}
		(*bucket)[i].Price = n
	default:
		return opErr(idx, op, "unknown option field %q", segs[2])
	}
	return nil
}
