package sendGrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/pkg/sendGrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	service := sendGrid.NewEmailService("test-api-key", "sender@example.com", "Test Sender")

	assert.NotNil(t, service)
	assert.NotNil(t, service.GetSendGridClient())
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "receipts@afos.rw"
	fromName := "AFOS Receipts"
	ctx := t.Context()

	newServer := func(t *testing.T, payload *sendgridV3Payload, handler http.HandlerFunc) *httptest.Server {
		t.Helper()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusInternalServerError)
				return
			}
			defer r.Body.Close()

			if err := json.Unmarshal(body, payload); err != nil {
				http.Error(w, "Failed to unmarshal request body", http.StatusBadRequest)
				return
			}

			handler(w, r)
		}))
		t.Cleanup(server.Close)

		return server
	}

	tests := []struct {
		name          string
		req           *models.EmailRequest
		handler       http.HandlerFunc
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Receipt With HTML",
			req: &models.EmailRequest{
				To:          "archive@afos.rw",
				Subject:     "AFOS receipt RCPAB12CD",
				Content:     "TOTAL 40,000 Rwf",
				HTMLContent: "<p>TOTAL 40,000 Rwf</p>",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusAccepted)
			},
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "archive@afos.rw", pers.To[0]["email"])
				assert.Empty(t, pers.Cc)
				assert.Equal(t, "AFOS receipt RCPAB12CD", pers.Subject)
				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])

				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "TOTAL 40,000 Rwf", p.Content[0].Value)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Plain Text With CC",
			req: &models.EmailRequest{
				To:      "archive@afos.rw",
				CC:      []string{"audit@afos.rw"},
				BCC:     []string{"ops@afos.rw"},
				Subject: "AFOS receipt RCPZZ99YY",
				Content: "slip",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				pers := p.Personalizations[0]
				require.Len(t, pers.Cc, 1)
				assert.Equal(t, "audit@afos.rw", pers.Cc[0]["email"])
				require.Len(t, pers.Bcc, 1)
				assert.Equal(t, "ops@afos.rw", pers.Bcc[0]["email"])
				require.Len(t, p.Content, 1, "no html part when HTMLContent is empty")
			},
		},
		{
			name: "Failure - SendGrid API Error (4xx)",
			req:  &models.EmailRequest{To: "bad@example.com", Subject: "s", Content: "c"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid email"}]}`))
			},
			expectedError: "failed to send email, status code: 400",
		},
		{
			name: "Failure - SendGrid API Error (5xx)",
			req:  &models.EmailRequest{To: "archive@afos.rw", Subject: "s", Content: "c"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload sendgridV3Payload
			server := newServer(t, &payload, tc.handler)

			service := sendGrid.NewEmailService(apiKey, fromEmail, fromName)
			service.GetSendGridClient().Request.BaseURL = server.URL

			// Act
			err := service.Send(ctx, tc.req)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.NotFoundHandler())
		service := sendGrid.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		// Act
		err := service.Send(ctx, &models.EmailRequest{To: "archive@afos.rw", Subject: "s", Content: "c"})

		// Assert
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "connection refused") || strings.Contains(err.Error(), "dial tcp"))
	})
}
