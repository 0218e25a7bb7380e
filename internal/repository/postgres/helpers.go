package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// Conversion helpers between pgtype values and domain types.

func pgUUID(id [16]byte) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func pgDate(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func pgDatePtr(d *domain.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgDate(*d)
}

func dateOf(t pgtype.Date) domain.Date {
	return domain.DateOf(t.Time)
}

func datePtr(t pgtype.Date) *domain.Date {
	if !t.Valid {
		return nil
	}
	d := dateOf(t)
	return &d
}

func pgNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	// decimal's string form is always a valid numeric literal
	_ = n.Scan(d.String())
	return n
}

func pgNumericPtr(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return pgNumeric(*d)
}

func decimalOf(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func decimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := decimalOf(n)
	return &d
}

func timeOf(t pgtype.Timestamptz) time.Time {
	return t.Time
}
