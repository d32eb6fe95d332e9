package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGabeD/chrysus/internal/handlers"
	"github.com/MGabeD/chrysus/internal/session"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type UploadHandlerTestSuite struct {
	suite.Suite
	e       *echo.Echo
	store   *session.Store
	backend *stubBackend
	manager *views.Manager
	handler *handlers.UploadHandler
}

func TestUploadHandlerSuite(t *testing.T) {
	suite.Run(t, new(UploadHandlerTestSuite))
}

func (s *UploadHandlerTestSuite) SetupTest() {
	s.e = echo.New()
	s.backend = newStubBackend()
	s.store, s.manager = newSessionFixture(s.backend)
	s.handler = handlers.NewUploadHandler(s.manager)
}

func (s *UploadHandlerTestSuite) TearDownTest() {
	s.manager.Close()
}

func (s *UploadHandlerTestSuite) multipartContext(fieldName, filename string) (echo.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, filename)
		s.Require().NoError(err)
		_, err = part.Write([]byte("%PDF-1.4 fake statement"))
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *UploadHandlerTestSuite) errorCode(raw []byte) string {
	var response struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(raw, &response))
	return response.Error.Code
}

func (s *UploadHandlerTestSuite) TestUpload_SuccessRefreshesRoster() {
	c, rec := s.multipartContext("file", "jane_doe.pdf")

	s.Require().NoError(s.handler.Upload(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "jane_doe.pdf has been processed successfully")
	s.Len(s.store.Roster(), 2)
}

func (s *UploadHandlerTestSuite) TestUpload_MissingFileField() {
	c, rec := s.multipartContext("", "")

	s.Require().NoError(s.handler.Upload(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("UPLOAD_002", s.errorCode(rec.Body.Bytes()))
}

func (s *UploadHandlerTestSuite) TestUpload_WrongFieldNameRejected() {
	c, rec := s.multipartContext("document", "statement.pdf")

	s.Require().NoError(s.handler.Upload(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("UPLOAD_002", s.errorCode(rec.Body.Bytes()))
}

func (s *UploadHandlerTestSuite) TestUpload_NonPDFRejected() {
	c, rec := s.multipartContext("file", "statement.txt")

	s.Require().NoError(s.handler.Upload(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("UPLOAD_003", s.errorCode(rec.Body.Bytes()))
}

func (s *UploadHandlerTestSuite) TestUpload_UppercaseExtensionAccepted() {
	c, rec := s.multipartContext("file", "STATEMENT.PDF")

	s.Require().NoError(s.handler.Upload(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *UploadHandlerTestSuite) TestUpload_BackendFailureIsBadGateway() {
	s.backend.uploadErr = errBackendDown

	c, rec := s.multipartContext("file", "statement.pdf")

	s.Require().NoError(s.handler.Upload(c))
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Equal("UPLOAD_001", s.errorCode(rec.Body.Bytes()))
}
