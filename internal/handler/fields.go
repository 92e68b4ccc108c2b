package handler

import (
	"math"

	"github.com/spf13/cast"

	"github.com/pricenotify/pricenotify/internal/email"
	"github.com/pricenotify/pricenotify/internal/service"
)

// fields is a decoded JSON request object
type fields map[string]any

// require returns the first listed field that is absent or null
func (f fields) require(names ...string) *service.ValidationError {
	for _, name := range names {
		if v, ok := f[name]; !ok || v == nil {
			return service.MissingField(name)
		}
	}
	return nil
}

func (f fields) str(name string) (string, *service.ValidationError) {
	switch v := f[name].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, map[string]any, []any:
		return "", service.InvalidField(name)
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", service.InvalidField(name)
		}
		return s, nil
	}
}

// optionalString returns nil when name is absent or null
func (f fields) optionalString(name string) (*string, *service.ValidationError) {
	if f[name] == nil {
		return nil, nil
	}
	s, verr := f.str(name)
	if verr != nil {
		return nil, verr
	}
	return &s, nil
}

// number accepts JSON numbers and numeric strings
func (f fields) number(name string) (float64, *service.ValidationError) {
	v := f[name]
	if _, isBool := v.(bool); isBool {
		return 0, service.InvalidField(name)
	}
	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, service.InvalidField(name)
	}
	return n, nil
}

func decodePriceAlert(f fields) (email.PriceAlert, *service.ValidationError) {
	var (
		req  email.PriceAlert
		verr *service.ValidationError
	)
	if req.Email, verr = f.str("email"); verr != nil {
		return req, verr
	}
	if req.ProductName, verr = f.str("product_name"); verr != nil {
		return req, verr
	}
	if req.CurrentPrice, verr = f.number("current_price"); verr != nil {
		return req, verr
	}
	if req.PreviousPrice, verr = f.number("previous_price"); verr != nil {
		return req, verr
	}
	if req.ProductURL, verr = f.str("product_url"); verr != nil {
		return req, verr
	}
	if req.ImageURL, verr = f.str("image_url"); verr != nil {
		return req, verr
	}
	return req, nil
}

func decodeProjectInquiry(f fields) (email.ProjectInquiry, *service.ValidationError) {
	var (
		req  email.ProjectInquiry
		verr *service.ValidationError
	)
	if req.RecipientEmail, verr = f.str("recipient_email"); verr != nil {
		return req, verr
	}
	if req.SenderName, verr = f.str("sender_name"); verr != nil {
		return req, verr
	}
	if req.SenderEmail, verr = f.str("sender_email"); verr != nil {
		return req, verr
	}
	if req.Subject, verr = f.str("subject"); verr != nil {
		return req, verr
	}
	if req.Message, verr = f.str("message"); verr != nil {
		return req, verr
	}
	return req, nil
}

func decodeCustomEmail(f fields) (email.CustomEmail, *service.ValidationError) {
	var (
		req  email.CustomEmail
		verr *service.ValidationError
	)
	if req.Email, verr = f.str("email"); verr != nil {
		return req, verr
	}
	if req.Subject, verr = f.str("subject"); verr != nil {
		return req, verr
	}
	if req.HTMLContent, verr = f.str("html_content"); verr != nil {
		return req, verr
	}
	if req.TextContent, verr = f.optionalString("text_content"); verr != nil {
		return req, verr
	}
	return req, nil
}
