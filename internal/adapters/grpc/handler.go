package grpc

import (
	"context"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service is the use case the handler exposes.
type Service interface {
	ParseEmail(ctx context.Context, email domain.Email) (domain.ParseResult, error)
	ParseBatch(ctx context.Context, emails []domain.Email) ([]domain.ParseResult, error)
	InferCategory(ctx context.Context, merchantName string) string
}

// Handler adapts Service to SubscriptionParserServer.
type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) ParseEmail(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := h.svc.ParseEmail(ctx, emailFromStruct(req))
	if err != nil {
		return nil, err
	}
	return resultToStruct(res), nil
}

func (h *Handler) ParseBatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	emails, err := emailsFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := h.svc.ParseBatch(ctx, emails)
	if err != nil {
		return nil, err
	}
	return resultsToStruct(res), nil
}

func (h *Handler) InferCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name := req.GetFields()["merchant_name"].GetStringValue()
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"category": structpb.NewStringValue(h.svc.InferCategory(ctx, name)),
	}}, nil
}
