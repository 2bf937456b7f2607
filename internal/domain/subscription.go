package domain

type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleAnnual    BillingCycle = "annual"
	CycleQuarterly BillingCycle = "quarterly"
	CycleWeekly    BillingCycle = "weekly"
)

func (c BillingCycle) Valid() bool {
	switch c {
	case CycleMonthly, CycleAnnual, CycleQuarterly, CycleWeekly:
		return true
	}
	return false
}

type Status string

const (
	StatusActive Status = "active"
	StatusTrial  Status = "trial"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusTrial }

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Method names the strategy that produced a ParseResult.
type Method string

const (
	MethodPattern Method = "pattern"
	MethodAI      Method = "ai" // secondary path: fallback extractor or LLM escalation
	MethodFailed  Method = "failed"
)

// Email is already-decoded plain text; MIME handling happens upstream.
type Email struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Body    string `json:"body"`
	Snippet string `json:"snippet"`
}

func (e Email) IsEmpty() bool {
	return e.Subject == "" && e.From == "" && e.Body == "" && e.Snippet == ""
}

type ParsedSubscription struct {
	MerchantName string       `json:"merchantName"`
	PlanName     string       `json:"planName,omitempty"`
	Amount       string       `json:"amount"` // always two fractional digits, e.g. "15.99"
	Currency     string       `json:"currency"`
	BillingCycle BillingCycle `json:"billingCycle"`
	Status       Status       `json:"status"`
	TrialEndDate string       `json:"trialEndDate,omitempty"` // normalized as YYYY-MM-DD
	Confidence   Confidence   `json:"confidence"`
	Category     string       `json:"category,omitempty"`
}

type ParseResult struct {
	Success bool                `json:"success"`
	Data    *ParsedSubscription `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Method  Method              `json:"method"`
}

func Succeeded(data *ParsedSubscription, method Method) ParseResult {
	return ParseResult{Success: true, Data: data, Method: method}
}

func Failed(reason string, method Method) ParseResult {
	return ParseResult{Success: false, Error: reason, Method: method}
}
