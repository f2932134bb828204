package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/models"
)

func TestClassifyImage(t *testing.T) {
	t.Run("known label passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req classifyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://img.example/p.jpg", req.ImageURL)
			json.NewEncoder(w).Encode(classifyResponse{Label: models.HazardPothole, Confidence: 0.87})
		}))
		defer srv.Close()

		c := NewClassifier(&config.Config{ClassifierURL: srv.URL})
		label, confidence, err := c.ClassifyImage(context.Background(), "https://img.example/p.jpg")
		require.NoError(t, err)
		assert.Equal(t, models.HazardPothole, label)
		assert.InDelta(t, 0.87, confidence, 0.001)
	})

	t.Run("unknown label maps to other", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(classifyResponse{Label: "sinkhole", Confidence: 0.5})
		}))
		defer srv.Close()

		c := NewClassifier(&config.Config{ClassifierURL: srv.URL})
		label, _, err := c.ClassifyImage(context.Background(), "https://img.example/p.jpg")
		require.NoError(t, err)
		assert.Equal(t, models.HazardOther, label)
	})

	t.Run("upstream error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClassifier(&config.Config{ClassifierURL: srv.URL})
		label, _, err := c.ClassifyImage(context.Background(), "https://img.example/p.jpg")
		assert.Error(t, err)
		assert.Equal(t, models.HazardOther, label)
	})

	t.Run("unconfigured endpoint degrades silently", func(t *testing.T) {
		c := NewClassifier(&config.Config{})
		label, confidence, err := c.ClassifyImage(context.Background(), "https://img.example/p.jpg")
		require.NoError(t, err)
		assert.Equal(t, models.HazardOther, label)
		assert.Zero(t, confidence)
	})
}
