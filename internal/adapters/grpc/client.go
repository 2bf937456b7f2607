package grpc

import (
	"context"
	"fmt"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote SubscriptionParser service.
type Client struct {
	conn *grpc.ClientConn
}

func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) ParseEmail(ctx context.Context, email domain.Email) (domain.ParseResult, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ParseEmailMethod, emailToStruct(email), out); err != nil {
		return domain.ParseResult{}, err
	}
	return resultFromStruct(out), nil
}

func (c *Client) ParseBatch(ctx context.Context, emails []domain.Email) ([]domain.ParseResult, error) {
	values := make([]*structpb.Value, 0, len(emails))
	for _, e := range emails {
		values = append(values, structpb.NewStructValue(emailToStruct(e)))
	}
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"emails": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ParseBatchMethod, in, out); err != nil {
		return nil, err
	}
	return resultsFromStruct(out), nil
}

func (c *Client) InferCategory(ctx context.Context, merchantName string) (string, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"merchant_name": structpb.NewStringValue(merchantName),
	}}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, InferCategoryMethod, in, out); err != nil {
		return "", err
	}
	return out.GetFields()["category"].GetStringValue(), nil
}
