package grpc

import (
	"fmt"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

// ===== request decoding =====

func emailFromStruct(s *structpb.Struct) domain.Email {
	f := s.GetFields()
	return domain.Email{
		Subject: f["subject"].GetStringValue(),
		From:    f["from"].GetStringValue(),
		Body:    f["body"].GetStringValue(),
		Snippet: f["snippet"].GetStringValue(),
	}
}

func emailsFromStruct(s *structpb.Struct) ([]domain.Email, error) {
	list := s.GetFields()["emails"].GetListValue().GetValues()
	emails := make([]domain.Email, 0, len(list))
	for i, v := range list {
		sv := v.GetStructValue()
		if sv == nil {
			return nil, fmt.Errorf("emails[%d] is not an object", i)
		}
		emails = append(emails, emailFromStruct(sv))
	}
	return emails, nil
}

func emailToStruct(e domain.Email) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"subject": structpb.NewStringValue(e.Subject),
		"from":    structpb.NewStringValue(e.From),
		"body":    structpb.NewStringValue(e.Body),
		"snippet": structpb.NewStringValue(e.Snippet),
	}}
}

// ===== response encoding =====

func resultToStruct(r domain.ParseResult) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"success": structpb.NewBoolValue(r.Success),
		"method":  structpb.NewStringValue(string(r.Method)),
	}
	if r.Error != "" {
		fields["error"] = structpb.NewStringValue(r.Error)
	}
	if d := r.Data; d != nil {
		data := map[string]*structpb.Value{
			"merchantName": structpb.NewStringValue(d.MerchantName),
			"amount":       structpb.NewStringValue(d.Amount),
			"currency":     structpb.NewStringValue(d.Currency),
			"billingCycle": structpb.NewStringValue(string(d.BillingCycle)),
			"status":       structpb.NewStringValue(string(d.Status)),
			"confidence":   structpb.NewStringValue(string(d.Confidence)),
		}
		optional := map[string]string{
			"planName":     d.PlanName,
			"trialEndDate": d.TrialEndDate,
			"category":     d.Category,
		}
		for k, v := range optional {
			if v != "" {
				data[k] = structpb.NewStringValue(v)
			}
		}
		fields["data"] = structpb.NewStructValue(&structpb.Struct{Fields: data})
	}
	return &structpb.Struct{Fields: fields}
}

func resultFromStruct(s *structpb.Struct) domain.ParseResult {
	f := s.GetFields()
	r := domain.ParseResult{
		Success: f["success"].GetBoolValue(),
		Method:  domain.Method(f["method"].GetStringValue()),
		Error:   f["error"].GetStringValue(),
	}
	if data := f["data"].GetStructValue(); data != nil {
		d := data.GetFields()
		r.Data = &domain.ParsedSubscription{
			MerchantName: d["merchantName"].GetStringValue(),
			PlanName:     d["planName"].GetStringValue(),
			Amount:       d["amount"].GetStringValue(),
			Currency:     d["currency"].GetStringValue(),
			BillingCycle: domain.BillingCycle(d["billingCycle"].GetStringValue()),
			Status:       domain.Status(d["status"].GetStringValue()),
			TrialEndDate: d["trialEndDate"].GetStringValue(),
			Confidence:   domain.Confidence(d["confidence"].GetStringValue()),
			Category:     d["category"].GetStringValue(),
		}
	}
	return r
}

func resultsToStruct(rs []domain.ParseResult) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(rs))
	for _, r := range rs {
		values = append(values, structpb.NewStructValue(resultToStruct(r)))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"results": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

func resultsFromStruct(s *structpb.Struct) []domain.ParseResult {
	list := s.GetFields()["results"].GetListValue().GetValues()
	out := make([]domain.ParseResult, 0, len(list))
	for _, v := range list {
		out = append(out, resultFromStruct(v.GetStructValue()))
	}
	return out
}
