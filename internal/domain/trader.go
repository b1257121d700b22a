package domain

// TraderID identifies a trader for its whole lifetime in a pool.
type TraderID int

// NoTrader marks an unset counterparty slot.
const NoTrader TraderID = -1

// Role is the side a trader is on.
type Role int

const (
	RoleBuyer Role = iota + 1
	RoleSeller
)

// String returns the string representation of Role
func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "BUYER"
	case RoleSeller:
		return "SELLER"
	default:
		return "UNKNOWN"
	}
}

// Trader is a single-unit buyer or seller.
// Reservation is the private valuation for a buyer and the private cost for a seller.
type Trader struct {
	ID          TraderID `json:"id"`
	Role        Role     `json:"role"`
	Reservation int64    `json:"reservation"`
}

// IsBuyer checks if the trader is on the buy side.
func (t Trader) IsBuyer() bool {
	return t.Role == RoleBuyer
}

// NewPools builds buyer and seller pools from ordered valuations and costs.
// Buyers get ids 0..len(values)-1 and sellers continue from there.
func NewPools(values, costs []int64) (buyers, sellers []Trader) {
	buyers = make([]Trader, 0, len(values))
	for i, v := range values {
		buyers = append(buyers, Trader{ID: TraderID(i), Role: RoleBuyer, Reservation: v})
	}
	sellers = make([]Trader, 0, len(costs))
	for i, c := range costs {
		sellers = append(sellers, Trader{ID: TraderID(len(values) + i), Role: RoleSeller, Reservation: c})
	}
	return buyers, sellers
}
