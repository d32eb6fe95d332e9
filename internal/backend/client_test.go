package backend_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MGabeD/chrysus/internal/backend"
	"github.com/MGabeD/chrysus/internal/config"
	apperrors "github.com/MGabeD/chrysus/internal/errors"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ClientTestSuite) newClient(handler http.HandlerFunc) (*backend.Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := backend.NewClient(config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	return client, server
}

func (s *ClientTestSuite) TestListHolders_DecodesAndDedupesRoster() {
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/users", r.URL.Path)
		s.Equal(http.MethodGet, r.Method)
		w.Write([]byte(`{"users": ["alice", "bob", "alice"]}`))
	})
	defer server.Close()

	holders, err := client.ListHolders(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(holders, 2)
	s.Equal("alice", holders[0].Name)
	s.Equal("bob", holders[1].Name)
}

func (s *ClientTestSuite) TestBaseInsights_HitsHolderScopedPath() {
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/user/alice/base_insights", r.URL.Path)
		w.Write([]byte(`{
			"frequent_descriptions": [],
			"tags": [{"tag": "DINING", "mean": -8, "max": -4, "min": -12, "sum": -16, "std": null, "count": 2}],
			"monthly": [],
			"weekly": []
		}`))
	})
	defer server.Close()

	insights, err := client.BaseInsights(s.ctx, "alice")

	s.Require().NoError(err)
	s.Require().Len(insights.Tags, 1)
	s.Equal("DINING", insights.Tags[0].Tag)
	s.False(insights.Tags[0].Std.Valid)
}

func (s *ClientTestSuite) TestHolderNamesArePathEscaped() {
	var requestedPath string
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.TransactionTable(s.ctx, "O'Brien Jr")

	s.Require().NoError(err)
	s.Equal("/user/O%27Brien%20Jr/transaction_table", requestedPath)
}

func (s *ClientTestSuite) TestNonSuccessStatus_ExtractsDetail() {
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "User not found"}`))
	})
	defer server.Close()

	_, err := client.Recommendation(s.ctx, "nobody")

	s.Require().Error(err)
	statusErr := &backend.StatusError{}
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusInternalServerError, statusErr.StatusCode)
	s.Equal("User not found", statusErr.Detail)
	s.Equal("User not found", backend.DisplayMessage(err))
}

func (s *ClientTestSuite) TestNonSuccessStatus_WithoutDetailBody() {
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})
	defer server.Close()

	_, err := client.BaseInsights(s.ctx, "alice")

	s.Require().Error(err)
	statusErr := &backend.StatusError{}
	s.Require().ErrorAs(err, &statusErr)
	s.Empty(statusErr.Detail)
	s.Contains(backend.DisplayMessage(err), "502")
}

func (s *ClientTestSuite) TestMalformedBody_ReturnsDecodeError() {
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"this is": not json`))
	})
	defer server.Close()

	_, err := client.TransactionTable(s.ctx, "alice")

	s.Require().Error(err)
	decodeErr := &backend.DecodeError{}
	s.ErrorAs(err, &decodeErr)
	s.Equal("The analysis backend returned an unreadable payload", backend.DisplayMessage(err))
}

func (s *ClientTestSuite) TestUnreachableBackend_ReturnsTransportError() {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := backend.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: time.Second})
	server.Close()

	_, err := client.ListHolders(s.ctx)

	s.Require().Error(err)
	transportErr := &backend.TransportError{}
	s.ErrorAs(err, &transportErr)
	s.Equal("Failed to reach the analysis backend", backend.DisplayMessage(err))
}

func (s *ClientTestSuite) TestUploadPDF_SendsMultipartFileField() {
	var (
		contentType string
		fieldName   string
		filename    string
		contents    []byte
	)
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/upload_pdf/", r.URL.Path)
		s.Equal(http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")

		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		fieldName = "file"
		filename = header.Filename
		contents, _ = io.ReadAll(file)
	})
	defer server.Close()

	err := client.UploadPDF(s.ctx, "statement.pdf", strings.NewReader("%PDF-1.4 fake"))

	s.Require().NoError(err)
	s.Contains(contentType, "multipart/form-data")
	s.Equal("file", fieldName)
	s.Equal("statement.pdf", filename)
	s.Equal("%PDF-1.4 fake", string(contents))
}

func (s *ClientTestSuite) TestUploadPDF_BackendRejectionCarriesDetail() {
	client, server := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "not a PDF"}`))
	})
	defer server.Close()

	err := client.UploadPDF(s.ctx, "notes.txt", strings.NewReader("plain text"))

	s.Require().Error(err)
	s.Equal("not a PDF", backend.DisplayMessage(err))
}

func (s *ClientTestSuite) TestDisplayMessage_UnclassifiedErrorFallsBack() {
	s.Equal("Failed to fetch data", backend.DisplayMessage(context.DeadlineExceeded))
}

func (s *ClientTestSuite) TestClassify_MapsErrorsToTaxonomyCodes() {
	tests := []struct {
		name     string
		err      error
		expected apperrors.ErrorCode
	}{
		{
			name:     "404 means no data behind the holder",
			err:      &backend.StatusError{StatusCode: http.StatusNotFound},
			expected: apperrors.HolderNoData,
		},
		{
			name:     "other statuses are generic rejections",
			err:      &backend.StatusError{StatusCode: http.StatusInternalServerError, Detail: "boom"},
			expected: apperrors.FetchBadStatus,
		},
		{
			name:     "decode failures",
			err:      &backend.DecodeError{Path: "/users", Err: context.Canceled},
			expected: apperrors.FetchMalformedBody,
		},
		{
			name:     "transport failures",
			err:      &backend.TransportError{Err: context.DeadlineExceeded},
			expected: apperrors.FetchTransportFailed,
		},
		{
			name:     "anything else is a system error",
			err:      context.DeadlineExceeded,
			expected: apperrors.SystemInternalError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, backend.Classify(tt.err))
		})
	}
}
