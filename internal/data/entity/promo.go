package entity

import (
	"time"
)

// PromoCode offsets a package price by a percentage and/or a fixed
// amount. FixedOffMinor and MinAmountMinor are minor currency units.
type PromoCode struct {
	BaseNoDelete
	Code           string     `db:"code"`
	PercentOff     int        `db:"percent_off"`
	FixedOffMinor  int64      `db:"fixed_off_minor"`
	MinAmountMinor int64      `db:"min_amount_minor"`
	IsActive       bool       `db:"is_active"`
	ExpiresAt      *time.Time `db:"expires_at"`
}

// Expired reports whether the promo is past its expiry at the given time.
func (p *PromoCode) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}
