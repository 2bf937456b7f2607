package llm

import "encoding/json"

// aiSubscription is the JSON object the model is asked to return.
type aiSubscription struct {
	IsSubscription bool        `json:"is_subscription"`
	MerchantName   string      `json:"merchant_name"`
	PlanName       string      `json:"plan_name"`
	Amount         json.Number `json:"amount"`
	Currency       string      `json:"currency"`
	BillingCycle   string      `json:"billing_cycle"`
	Status         string      `json:"status"`
	TrialEndDate   string      `json:"trial_end_date"`
	Category       string      `json:"category"`
}
