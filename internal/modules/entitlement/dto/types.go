package dto

type StatusOutput struct {
	UserID        string
	Tier          string
	Premium       bool
	Credits       int
	VisitSessions int
	GuestQuota    int
	Remaining     int
	PurchaseDate  string
}

type StartOutput struct {
	Decision string
	Status   StatusOutput
}

type EndOutput struct {
	Tier                string
	VisitSessions       int
	GuestQuotaExhausted bool
	CreditUsed          bool
}
