package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"law_shop_app_go/models"

	"gorm.io/gorm"
)

// ContactsSyncer mirrors created clients into an external contacts system.
// Sync is best-effort: callers log failures and never block on them.
type ContactsSyncer interface {
	CreateContact(ctx context.Context, client *models.Client) (resourceName string, err error)
}

const peopleAPIEndpoint = "https://people.googleapis.com/v1/people:createContact"

// GoogleContactsClient talks to the Google People API
type GoogleContactsClient struct {
	token      string
	endpoint   string
	httpClient *http.Client
}

// NewGoogleContactsClient builds a People API client with a bearer token
func NewGoogleContactsClient(token string) *GoogleContactsClient {
	return &GoogleContactsClient{
		token:      token,
		endpoint:   peopleAPIEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type peopleContactRequest struct {
	Names          []peopleName    `json:"names"`
	EmailAddresses []peopleTyped   `json:"emailAddresses"`
	PhoneNumbers   []peopleTyped   `json:"phoneNumbers"`
	Addresses      []peopleAddress `json:"addresses,omitempty"`
	Biographies    []peopleBio     `json:"biographies"`
}

type peopleName struct {
	GivenName   string `json:"givenName"`
	FamilyName  string `json:"familyName"`
	DisplayName string `json:"displayName"`
}

type peopleTyped struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type peopleAddress struct {
	FormattedValue string `json:"formattedValue"`
	Type           string `json:"type"`
}

type peopleBio struct {
	Value       string `json:"value"`
	ContentType string `json:"contentType"`
}

type peopleContactResponse struct {
	ResourceName string `json:"resourceName"`
}

// CreateContact mirrors the client into Google Contacts and returns the
// created contact's resource name
func (g *GoogleContactsClient) CreateContact(ctx context.Context, client *models.Client) (string, error) {
	if g.token == "" {
		return "", fmt.Errorf("google contacts token not configured")
	}

	reqBody := peopleContactRequest{
		Names: []peopleName{{
			GivenName:   client.FirstName,
			FamilyName:  client.LastName,
			DisplayName: client.FullName(),
		}},
		EmailAddresses: []peopleTyped{{Value: client.Email, Type: "work"}},
		PhoneNumbers:   []peopleTyped{{Value: client.CellPhone, Type: "mobile"}},
		Biographies: []peopleBio{{
			Value:       "TLS Client ID: " + client.ID,
			ContentType: "TEXT_PLAIN",
		}},
	}
	if client.PropertyAddress != "" {
		reqBody.Addresses = []peopleAddress{{FormattedValue: client.PropertyAddress, Type: "work"}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build contact request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("contacts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("contacts API returned %d: %s", resp.StatusCode, string(body))
	}

	var result peopleContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode contacts response: %w", err)
	}

	return result.ResourceName, nil
}

// NoopContactsSyncer is used when contact sync is disabled
type NoopContactsSyncer struct{}

func (NoopContactsSyncer) CreateContact(ctx context.Context, client *models.Client) (string, error) {
	return "", nil
}

// SyncContactAsync mirrors the client into the contacts system in a
// goroutine. On success the resource name is stored back on the client
// record; any failure is logged and does not affect the intake.
func SyncContactAsync(db *gorm.DB, syncer ContactsSyncer, client *models.Client) {
	clientCopy := *client
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		resourceName, err := syncer.CreateContact(ctx, &clientCopy)
		if err != nil {
			log.Printf("[WARNING] Google Contacts sync failed for client %s: %v", clientCopy.ID, err)
			return
		}
		if resourceName == "" {
			return
		}

		if err := db.Model(&models.Client{}).Where("id = ?", clientCopy.ID).
			Update("google_contact_resource_name", resourceName).Error; err != nil {
			log.Printf("[WARNING] Failed to store contact resource name for client %s: %v", clientCopy.ID, err)
		}
	}()
}
