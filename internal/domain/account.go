package domain

// Account and dashboard records are canned fixtures; nothing here is persisted.

type MembershipStatus struct {
	Plan            string `json:"plan"`
	ValidTill       string `json:"validTill"`
	NightsRemaining int    `json:"nightsRemaining"`
}

type UserProfile struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Membership    MembershipStatus `json:"membership"`
	WalletBalance float64          `json:"walletBalance"`
	MemberSince   string           `json:"memberSince"`
	Avatar        string           `json:"avatar,omitempty"`
}

type Overview struct {
	TotalPurchases int     `json:"totalPurchases"`
	ActiveServices int     `json:"activeServices"`
	WalletBalance  float64 `json:"walletBalance"`
	UpcomingTrips  int     `json:"upcomingTrips"`
	MembershipTier string  `json:"membershipTier"`
	MemberSince    string  `json:"memberSince"`
}

type Purchase struct {
	ID     string  `json:"id"`
	Item   string  `json:"item"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type AvailedService struct {
	ID          string `json:"id"`
	Service     string `json:"service"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Nights      int    `json:"nights"`
	Status      string `json:"status"`
}

type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"` // credit|debit
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type Balance struct {
	Current      float64       `json:"current"`
	Currency     string        `json:"currency"`
	Transactions []Transaction `json:"transactions"`
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
