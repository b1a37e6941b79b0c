package app

import "worldacross/internal/domain"

// Canned account data behind the mock login and dashboard.

const PremiumEmail = "premium@worldacross.com"

func premiumUser() domain.UserProfile {
	return domain.UserProfile{
		ID:    "u_premium_001",
		Name:  "Ananya Sharma",
		Email: PremiumEmail,
		Phone: "+91 98765 43210",
		Membership: domain.MembershipStatus{
			Plan:            "Platinum",
			ValidTill:       "2034-03-31",
			NightsRemaining: 52,
		},
		WalletBalance: 45000,
		MemberSince:   "2021-04",
		Avatar:        "avatars/ananya.jpg",
	}
}

func standardUser(email string) domain.UserProfile {
	u := domain.UserProfile{
		ID:    "u_standard_001",
		Name:  "Rahul Verma",
		Email: "rahul@example.com",
		Phone: "+91 91234 56789",
		Membership: domain.MembershipStatus{
			Plan:            "Silver",
			ValidTill:       "2027-06-30",
			NightsRemaining: 9,
		},
		WalletBalance: 5000,
		MemberSince:   "2024-07",
	}
	if email != "" {
		u.Email = email
	}
	return u
}

func overviewFixture() domain.Overview {
	return domain.Overview{
		TotalPurchases: 4,
		ActiveServices: 2,
		WalletBalance:  45000,
		UpcomingTrips:  1,
		MembershipTier: "Platinum",
		MemberSince:    "2021-04",
	}
}

func purchasesFixture() []domain.Purchase {
	return []domain.Purchase{
		{ID: "P-1001", Item: "Platinum Membership (10 Years)", Date: "2021-04-12", Amount: 174999, Status: "Completed"},
		{ID: "P-1002", Item: "Goa Beach Getaway", Date: "2023-11-02", Amount: 14999, Status: "Completed"},
		{ID: "P-1003", Item: "Bali Honeymoon Special", Date: "2024-02-14", Amount: 69999, Status: "Completed"},
		{ID: "P-1004", Item: "Dubai Luxury Escape", Date: "2025-12-20", Amount: 74999, Status: "Upcoming"},
	}
}

func servicesFixture() []domain.AvailedService {
	return []domain.AvailedService{
		{ID: "S-2001", Service: "Resort Stay", Destination: "Goa", Date: "2023-11-05", Nights: 4, Status: "Completed"},
		{ID: "S-2002", Service: "Resort Stay", Destination: "Bali", Date: "2024-02-15", Nights: 6, Status: "Completed"},
		{ID: "S-2003", Service: "Airport Transfer", Destination: "Dubai", Date: "2025-12-21", Nights: 0, Status: "Booked"},
	}
}

func balanceFixture() domain.Balance {
	return domain.Balance{
		Current:  45000,
		Currency: "INR",
		Transactions: []domain.Transaction{
			{ID: "T-3001", Type: "credit", Amount: 50000, Description: "Membership bonus credit", Date: "2021-04-12"},
			{ID: "T-3002", Type: "debit", Amount: 10000, Description: "Goa Beach Getaway partial payment", Date: "2023-11-02"},
			{ID: "T-3003", Type: "credit", Amount: 5000, Description: "Referral reward", Date: "2024-08-19"},
		},
	}
}
