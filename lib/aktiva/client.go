// Package aktiva implements the Merit Aktiva API's request protocol: every
// endpoint is POST-only, parameters travel in a signed JSON body, and
// responses need null markers stripped before they parse.
package aktiva

import (
	"context"
	"fmt"
	"time"

	"aktiva-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/aktiva")

const DefaultBaseURL = "https://aktiva.merit.ee/api/"

var restyOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes clients created afterward dump every HTTP
// exchange to the given output.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyOutput = output
}

type Client struct {
	http *resty.Client
	auth Authenticator
}

type ClientOptions struct {
	// BaseUrl defaults to the hosted Merit Aktiva API.
	BaseUrl string
	Auth    Authenticator
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Auth == nil {
		return nil, fmt.Errorf("an authenticator is required")
	}
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(time.Second * 30)
	client.SetHeader("content-type", "application/json")

	restyutil.InstrumentClient(client, tracer, restyOutput)

	return &Client{http: client, auth: opts.Auth}, nil
}

// FetchPage issues one signed POST for a logical page and returns the
// sanitized response bytes. `params` holds the page's parameters; the
// signer folds them, along with anything in the path's query string, into
// the request body.
func (c *Client) FetchPage(ctx context.Context, path string, params map[string]any) ([]byte, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("FetchPage:%s", path))
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	signed, err := c.auth.Sign(Descriptor{
		URL:  c.http.BaseURL + path,
		Body: params,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign request")
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(signed.Body).
		Post(signed.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("%s responded with status %s", path, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad response status")
		return nil, err
	}

	return CleanResponse(res.Body()), nil
}
