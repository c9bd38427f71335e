package xcclient

import (
	"net/http"

	"go.uber.org/zap"
)

type RoundTripperMiddleware struct {
	Proxied http.RoundTripper

	OnBefore func(req *http.Request)
	OnAfter  func(res *http.Response)
}

func (m RoundTripperMiddleware) RoundTrip(req *http.Request) (res *http.Response, err error) {
	m.OnBefore(req)
	res, err = m.Proxied.RoundTrip(req)
	if err == nil {
		m.OnAfter(res)
	}

	return res, err
}

func NewLoggerMiddleware(logger *zap.Logger, proxied http.RoundTripper) *RoundTripperMiddleware {
	return &RoundTripperMiddleware{
		Proxied: proxied,
		OnBefore: func(req *http.Request) {
			logger.Debug("request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
		},
		OnAfter: func(res *http.Response) {
			logger.Debug("response", zap.Int("status", res.StatusCode))
		},
	}
}
