package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"law_shop_app_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupContactsTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Client{})
	return db
}

func TestGoogleContactsClient_CreateContact(t *testing.T) {
	var captured peopleContactRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(peopleContactResponse{ResourceName: "people/c123"})
	}))
	defer server.Close()

	g := NewGoogleContactsClient("test-token")
	g.endpoint = server.URL

	client := &models.Client{
		ID:              "client-1",
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		CellPhone:       "+15551234567",
		PropertyAddress: "123 Main St",
	}

	resourceName, err := g.CreateContact(context.Background(), client)
	assert.NoError(t, err)
	assert.Equal(t, "people/c123", resourceName)
	assert.Equal(t, "Bearer test-token", gotAuth)

	// The contact carries name, email, phone, address and the client id marker
	assert.Equal(t, "Jane", captured.Names[0].GivenName)
	assert.Equal(t, "Jane Doe", captured.Names[0].DisplayName)
	assert.Equal(t, "jane@example.com", captured.EmailAddresses[0].Value)
	assert.Equal(t, "+15551234567", captured.PhoneNumbers[0].Value)
	assert.Equal(t, "123 Main St", captured.Addresses[0].FormattedValue)
	assert.Equal(t, "TLS Client ID: client-1", captured.Biographies[0].Value)
}

func TestGoogleContactsClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	g := NewGoogleContactsClient("bad-token")
	g.endpoint = server.URL

	_, err := g.CreateContact(context.Background(), &models.Client{ID: "client-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestGoogleContactsClient_MissingToken(t *testing.T) {
	g := NewGoogleContactsClient("")
	_, err := g.CreateContact(context.Background(), &models.Client{ID: "client-1"})
	assert.Error(t, err)
}

func TestSyncContactAsync_StoresResourceName(t *testing.T) {
	db := setupContactsTestDB()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(peopleContactResponse{ResourceName: "people/c456"})
	}))
	defer server.Close()

	g := NewGoogleContactsClient("test-token")
	g.endpoint = server.URL

	client := models.Client{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		CellPhone: "+15551234567",
	}
	db.Create(&client)

	SyncContactAsync(db, g, &client)

	// Wait for the async sync to land
	time.Sleep(200 * time.Millisecond)

	var stored models.Client
	assert.NoError(t, db.First(&stored, "id = ?", client.ID).Error)
	assert.Equal(t, "people/c456", stored.GoogleContactResourceName)
}

func TestSyncContactAsync_NoopLeavesClientUntouched(t *testing.T) {
	db := setupContactsTestDB()

	client := models.Client{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		CellPhone: "+15551234567",
	}
	db.Create(&client)

	SyncContactAsync(db, NoopContactsSyncer{}, &client)
	time.Sleep(100 * time.Millisecond)

	var stored models.Client
	assert.NoError(t, db.First(&stored, "id = ?", client.ID).Error)
	assert.Empty(t, stored.GoogleContactResourceName)
}
