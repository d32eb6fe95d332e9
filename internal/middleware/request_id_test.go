package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGabeD/chrysus/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func (s *RequestIDTestSuite) run(req *http.Request) (string, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var contextTraceID string
	handler := RequestID()(func(c echo.Context) error {
		contextTraceID, _ = c.Get(handlers.TraceIDContextKey).(string)
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	return contextTraceID, rec
}

func (s *RequestIDTestSuite) TestGeneratesUUIDWhenHeaderAbsent() {
	traceID, rec := s.run(httptest.NewRequest(http.MethodGet, "/", nil))

	s.Regexp(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, traceID)
	s.Equal(traceID, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestPropagatesIncomingTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "renderer-supplied-trace-id")

	traceID, rec := s.run(req)

	s.Equal("renderer-supplied-trace-id", traceID)
	s.Equal("renderer-supplied-trace-id", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestTraceIDReachesErrorResponses() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "trace-for-error")
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return handlers.SendSystemError(c, http.ErrBodyNotAllowed)
	})

	s.Require().NoError(handler(c))
	s.Contains(rec.Body.String(), `"trace_id":"trace-for-error"`)
}
