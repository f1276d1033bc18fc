package lookup

import (
	"calorie-tracker/services"
	"calorie-tracker/structs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrLookupMiss means the service answered but knew nothing about the food.
	ErrLookupMiss = errors.New("no nutrition data found for this item")
	// ErrLookupTransport means the request itself failed.
	ErrLookupTransport = errors.New("nutrition lookup failed")
)

// NutritionService resolves food names through a CalorieNinjas-compatible API.
type NutritionService struct {
	apiURL string
	apiKey string
	client *http.Client
	logger *logrus.Logger
}

type nutritionResponse struct {
	Items []nutritionItem `json:"items"`
}

type nutritionItem struct {
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein_g"`
	FatTotal      float64 `json:"fat_total_g"`
	Carbohydrates float64 `json:"carbohydrates_total_g"`
}

func NewNutritionService(apiURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *NutritionService {
	return &NutritionService{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Lookup returns an Entry named after foodName built from the first matching item.
// Fractional values are truncated.
func (n *NutritionService) Lookup(ctx context.Context, foodName string) (structs.Entry, error) {
	query := url.Values{}
	query.Set("query", strings.TrimSpace(foodName))
	header := map[string]string{"X-Api-Key": n.apiKey}

	body, status, err := services.HttpRequest(ctx, n.client, http.MethodGet, n.apiURL, header, query, nil)
	if err != nil {
		return structs.Entry{}, n.fail(foodName, fmt.Errorf("%w: %v", ErrLookupTransport, err))
	}
	if status < 200 || status > 299 {
		return structs.Entry{}, n.fail(foodName, fmt.Errorf("%w: status %d: %s", ErrLookupTransport, status, string(body)))
	}

	var response nutritionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return structs.Entry{}, n.fail(foodName, fmt.Errorf("%w: decode response: %v", ErrLookupTransport, err))
	}
	if len(response.Items) == 0 {
		return structs.Entry{}, n.fail(foodName, ErrLookupMiss)
	}

	item := response.Items[0]
	entry := structs.Entry{
		Name:     foodName,
		Calories: int(item.Calories),
		Protein:  int(item.Protein),
		Fat:      int(item.FatTotal),
		Carbs:    int(item.Carbohydrates),
	}
	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{"task": "lookup", "name": foodName, "calories": entry.Calories}).Info("nutrition found")
	}
	return entry, nil
}

func (n *NutritionService) fail(foodName string, err error) error {
	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{"task": "lookup", "name": foodName, "error_message": err.Error()}).Warn("lookup failed")
	}
	return err
}
