// Command seed fills the catalog with a demo inventory through the public
// API, the same way an admin would: register or log in, then post each
// vehicle.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type vehicleInput struct {
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Price       int      `json:"price"`
	Condition   string   `json:"condition"`
	FuelType    string   `json:"fuel_type"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
	Status      string   `json:"status"`
}

type catalogEntry struct {
	Make     string
	Models   []string
	FuelType string
}

var catalog = []catalogEntry{
	{Make: "Toyota", Models: []string{"Corolla", "Camry", "RAV4"}, FuelType: "Petrol"},
	{Make: "Honda", Models: []string{"Civic", "Accord", "CR-V"}, FuelType: "Petrol"},
	{Make: "Ford", Models: []string{"Focus", "Ranger", "Escape"}, FuelType: "Diesel"},
	{Make: "Nissan", Models: []string{"Leaf", "Ariya"}, FuelType: "Electric"},
	{Make: "Tesla", Models: []string{"Model 3", "Model Y"}, FuelType: "Electric"},
	{Make: "BMW", Models: []string{"X5", "330e"}, FuelType: "Hybrid"},
}

var statuses = []string{"available", "newly-posted", "limited-edition", "available"}

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL, email, password, username string) error {
	creds, _ := json.Marshal(map[string]string{
		"email": email, "password": password, "username": username,
	})

	resp, err := authorizedPost(apiURL+"/api/auth/login", bytes.NewBuffer(creds))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		resp, err = authorizedPost(apiURL+"/api/auth/register", bytes.NewBuffer(creds))
		if err != nil {
			return fmt.Errorf("register request failed: %w", err)
		}
		if resp.StatusCode != http.StatusCreated {
			resp.Body.Close()
			return fmt.Errorf("register failed with status: %d", resp.StatusCode)
		}
	} else if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	return nil
}

func postVehicle(apiURL string, v vehicleInput) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/api/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid vehicle ID in response")
	}
	return id, nil
}

func randomVehicle() vehicleInput {
	entry := catalog[rand.Intn(len(catalog))]
	model := entry.Models[rand.Intn(len(entry.Models))]
	year := 2015 + rand.Intn(10) // 2015-2024
	price := (8000 + rand.Intn(42000)) / 100 * 100

	condition := "Used"
	if year >= 2023 && rand.Intn(2) == 0 {
		condition = "New"
	}

	imageURL := fmt.Sprintf("https://images.albercy.example/demo/%s-%s.jpg", entry.Make, model)
	return vehicleInput{
		Make:        entry.Make,
		Model:       model,
		Year:        year,
		Price:       price,
		Condition:   condition,
		FuelType:    entry.FuelType,
		Description: fmt.Sprintf("%d %s %s in great shape, inspected by our workshop.", year, entry.Make, model),
		ImageURLs:   []string{imageURL},
		Status:      statuses[rand.Intn(len(statuses))],
	}
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@albercy.example"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "seed-me-first"
	}

	count := 12
	if raw := os.Getenv("SEED_COUNT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			count = parsed
		}
	}

	if err := login(apiURL, adminEmail, adminPassword, "seed-admin"); err != nil {
		log.WithError(err).Fatal("Failed to authenticate")
	}

	created := 0
	for i := 0; i < count; i++ {
		v := randomVehicle()
		id, err := postVehicle(apiURL, v)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"make":  v.Make,
				"model": v.Model,
			}).Error("Failed to post vehicle")
			continue
		}
		created++
		log.WithFields(log.Fields{
			"vehicle_id": id,
			"make":       v.Make,
			"model":      v.Model,
			"year":       v.Year,
			"status":     v.Status,
		}).Info("Posted vehicle")
	}

	log.WithFields(log.Fields{"requested": count, "created": created}).Info("Seeding complete")
}
