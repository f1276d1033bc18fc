package lookup

import (
	"calorie-tracker/structs"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestService(handler http.HandlerFunc) (*NutritionService, func()) {
	server := httptest.NewServer(handler)
	return NewNutritionService(server.URL, "test-key", 2*time.Second, nil), server.Close
}

func TestNutritionService_Lookup(t *testing.T) {
	service, closeFn := newTestService(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("X-Api-Key = %q", r.Header.Get("X-Api-Key"))
		}
		if r.URL.Query().Get("query") != "fried rice" {
			t.Errorf("query = %q", r.URL.Query().Get("query"))
		}
		w.Write([]byte(`{"items":[{"name":"fried rice","calories":174.9,"protein_g":4.1,"fat_total_g":2.9,"carbohydrates_total_g":32.6},{"name":"egg","calories":70}]}`))
	})
	defer closeFn()

	entry, err := service.Lookup(context.Background(), "fried rice")
	if err != nil {
		t.Fatalf("Lookup error = %v", err)
	}
	want := structs.Entry{Name: "fried rice", Calories: 174, Protein: 4, Fat: 2, Carbs: 32}
	if entry != want {
		t.Errorf("entry = %+v, want %+v", entry, want)
	}
}

func TestNutritionService_MissingFieldsDefaultToZero(t *testing.T) {
	service, closeFn := newTestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"name":"water","calories":0.4}]}`))
	})
	defer closeFn()

	entry, err := service.Lookup(context.Background(), "water")
	if err != nil {
		t.Fatalf("Lookup error = %v", err)
	}
	if entry != (structs.Entry{Name: "water"}) {
		t.Errorf("entry = %+v", entry)
	}
}

func TestNutritionService_Miss(t *testing.T) {
	service, closeFn := newTestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})
	defer closeFn()

	if _, err := service.Lookup(context.Background(), "unicorn"); !errors.Is(err, ErrLookupMiss) {
		t.Errorf("error = %v, want ErrLookupMiss", err)
	}
}

func TestNutritionService_TransportFailure(t *testing.T) {
	testCases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid api key", http.StatusBadRequest)
		},
		"body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		},
	}
	for name, handler := range testCases {
		service, closeFn := newTestService(handler)
		if _, err := service.Lookup(context.Background(), "rice"); !errors.Is(err, ErrLookupTransport) {
			t.Errorf("%s: error = %v, want ErrLookupTransport", name, err)
		}
		closeFn()
	}

	unreachable := NewNutritionService("http://127.0.0.1:1", "k", time.Second, nil)
	if _, err := unreachable.Lookup(context.Background(), "rice"); !errors.Is(err, ErrLookupTransport) {
		t.Errorf("unreachable: error = %v, want ErrLookupTransport", err)
	}
}
